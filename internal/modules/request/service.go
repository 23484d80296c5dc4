// README: Request service validates, persists and cancels rider ride requests.
package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"carpool/internal/events"
	"carpool/internal/types"
)

var (
	ErrNotFound     = errors.New("ride request not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrForbidden    = errors.New("ride request belongs to another rider")
	ErrBadRequest   = errors.New("bad request")
)

type Repository interface {
	Create(ctx context.Context, r *RideRequest) error
	Get(ctx context.Context, id types.ID) (*RideRequest, error)
	ListPending(ctx context.Context) ([]RideRequest, error)
	ListByRider(ctx context.Context, riderID types.ID) ([]RideRequest, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
}

type Service struct {
	store     Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(store Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{store: store, publisher: publisher, now: time.Now}
}

type CreateCommand struct {
	RiderID       types.ID
	Pickup        string
	Destination   string
	SeatsRequired int
}

type CancelCommand struct {
	RequestID types.ID
	RiderID   types.ID
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*RideRequest, error) {
	if cmd.RiderID == "" {
		return nil, ErrBadRequest
	}
	r := &RideRequest{
		ID:            types.NewID(),
		RiderID:       cmd.RiderID,
		Pickup:        strings.TrimSpace(cmd.Pickup),
		Destination:   strings.TrimSpace(cmd.Destination),
		SeatsRequired: cmd.SeatsRequired,
		Status:        StatusPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := Validate(*r); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	events.PublishAfterCommit(ctx, s.publisher, events.RequestCreated, r)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*RideRequest, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, id)
}

func (s *Service) ListPending(ctx context.Context) ([]RideRequest, error) {
	return s.store.ListPending(ctx)
}

func (s *Service) ListByRider(ctx context.Context, riderID types.ID) ([]RideRequest, error) {
	if riderID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByRider(ctx, riderID)
}

// Cancel withdraws a pending request. Only the rider who created it may cancel it.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	if cmd.RequestID == "" || cmd.RiderID == "" {
		return ErrBadRequest
	}
	r, err := s.store.Get(ctx, cmd.RequestID)
	if err != nil {
		return err
	}
	if r.RiderID != cmd.RiderID {
		return ErrForbidden
	}
	if !CanTransition(r.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, StatusPending, StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		// accepted into a ride between the read and the update
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	events.PublishAfterCommit(ctx, s.publisher, events.RequestCanceled, r)
	return nil
}
