// README: Payment service records rider payments.
package payment

import (
	"context"
	"errors"
	"time"

	"carpool/internal/events"
	"carpool/internal/types"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrRideNotFound  = errors.New("ride not found")
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByRider(ctx context.Context, riderID types.ID) ([]Payment, error)
}

type Service struct {
	store     Repository
	publisher events.Publisher
	currency  string
}

func NewService(store Repository, publisher events.Publisher, currency string) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{store: store, publisher: publisher, currency: currency}
}

type CreateCommand struct {
	RiderID types.ID
	RideID  types.ID
	Amount  int64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Payment, error) {
	if cmd.RiderID == "" || cmd.RideID == "" {
		return nil, ErrBadRequest
	}
	if cmd.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	p := &Payment{
		ID:        types.NewID(),
		RiderID:   cmd.RiderID,
		RideID:    cmd.RideID,
		Amount:    types.Money{Amount: cmd.Amount, Currency: s.currency},
		Status:    StatusPaid,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	events.PublishAfterCommit(ctx, s.publisher, events.PaymentRecorded, p)
	return p, nil
}

func (s *Service) ListByRider(ctx context.Context, riderID types.ID) ([]Payment, error) {
	if riderID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByRider(ctx, riderID)
}
