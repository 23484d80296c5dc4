// README: Ride service implements group acceptance, completion and driver earnings.
package ride

import (
	"context"
	"errors"
	"time"

	"carpool/internal/events"
	"carpool/internal/modules/grouping"
	"carpool/internal/modules/request"
	"carpool/internal/types"
)

var (
	ErrNotFound     = errors.New("ride not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("ride requests changed concurrently")
	ErrForbidden    = errors.New("ride belongs to another driver")
	ErrBadRequest   = errors.New("bad request")
)

const upcomingLimit = 50

type Repository interface {
	Members(ctx context.Context, ids []types.ID) ([]Member, error)
	AcceptGroup(ctx context.Context, r *Ride) error
	Get(ctx context.Context, id types.ID) (*Ride, error)
	Complete(ctx context.Context, id, driverID types.ID, finalFare int64, at time.Time) (bool, error)
	Earnings(ctx context.Context, driverID types.ID) (int64, int, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]Ride, error)
	ListByDriver(ctx context.Context, driverID types.ID) ([]Ride, error)
}

// GroupPricer decides group membership and fills in distance and fares for a group, the same
// way the driver dashboard does.
type GroupPricer interface {
	SameGroup(a, b request.RideRequest) bool
	PriceGroup(ctx context.Context, g grouping.Group) grouping.Group
}

type Service struct {
	store     Repository
	pricer    GroupPricer
	publisher events.Publisher
	currency  string
	now       func() time.Time
}

func NewService(store Repository, pricer GroupPricer, publisher events.Publisher, currency string) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{store: store, pricer: pricer, publisher: publisher, currency: currency, now: time.Now}
}

type AcceptCommand struct {
	DriverID   types.ID
	RequestIDs []types.ID
	DepartAt   time.Time // zero means now
}

type CompleteCommand struct {
	RideID    types.ID
	DriverID  types.ID
	FinalFare int64 // zero means the estimated earnings
}

// GroupAccepted is the payload of the group.accepted event.
type GroupAccepted struct {
	RideID     types.ID   `json:"ride_id"`
	DriverID   types.ID   `json:"driver_id"`
	RequestIDs []types.ID `json:"request_ids"`
	DepartAt   time.Time  `json:"depart_at"`
}

// AcceptGroup assigns a group of pending requests to a new ride for the driver. Either every
// request ends up accepted on the ride or nothing changes.
func (s *Service) AcceptGroup(ctx context.Context, cmd AcceptCommand) (*Ride, error) {
	if cmd.DriverID == "" {
		return nil, ErrBadRequest
	}
	if err := validateRequestIDs(cmd.RequestIDs); err != nil {
		return nil, err
	}

	members, err := s.store.Members(ctx, cmd.RequestIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(cmd.RequestIDs) {
		return nil, ErrNotFound
	}
	// members come back in table order; the ride keeps the caller's order
	first := members[0]
	for _, m := range members {
		if m.ID == cmd.RequestIDs[0] {
			first = m
			break
		}
	}
	seats := 0
	for _, m := range members {
		if m.Status != "pending" {
			return nil, ErrConflict
		}
		if !s.sameGroup(first, m) {
			return nil, &ValidationError{Field: "request_ids", Reason: "requests are on different routes"}
		}
		seats += m.SeatsRequired
	}
	g := grouping.Group{
		Route:      grouping.RouteKey{Pickup: first.Pickup, Destination: first.Destination},
		RequestIDs: cmd.RequestIDs,
		TotalSeats: seats,
		RiderCount: len(cmd.RequestIDs),
	}
	if s.pricer != nil {
		g = s.pricer.PriceGroup(ctx, g)
	}
	estimated := g.TotalEarnings
	if estimated.Currency == "" {
		estimated.Currency = s.currency
	}

	now := s.now().UTC()
	departAt := cmd.DepartAt
	if departAt.IsZero() {
		departAt = now
	}
	r := &Ride{
		ID:                types.NewID(),
		DriverID:          cmd.DriverID,
		Status:            StatusOngoing,
		Pickup:            first.Pickup,
		Destination:       first.Destination,
		SeatsBooked:       seats,
		EstimatedEarnings: estimated,
		DepartAt:          departAt.UTC(),
		CreatedAt:         now,
		RequestIDs:        cmd.RequestIDs,
	}
	if err := s.store.AcceptGroup(ctx, r); err != nil {
		return nil, err
	}
	events.PublishAfterCommit(ctx, s.publisher, events.GroupAccepted, GroupAccepted{
		RideID:     r.ID,
		DriverID:   r.DriverID,
		RequestIDs: r.RequestIDs,
		DepartAt:   r.DepartAt,
	})
	return r, nil
}

func (s *Service) sameGroup(a, b Member) bool {
	if s.pricer == nil {
		return a.Pickup == b.Pickup && a.Destination == b.Destination
	}
	return s.pricer.SameGroup(a.routeRequest(), b.routeRequest())
}

func validateRequestIDs(ids []types.ID) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "request_ids", Reason: "must not be empty"}
	}
	seen := make(map[types.ID]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: "request_ids", Reason: "must not contain empty ids"}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: "request_ids", Reason: "duplicate id " + string(id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Complete finishes an ongoing ride and records the fare the driver collected.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) (*Ride, error) {
	if cmd.RideID == "" || cmd.DriverID == "" {
		return nil, ErrBadRequest
	}
	if cmd.FinalFare < 0 {
		return nil, &ValidationError{Field: "final_fare", Reason: "must not be negative"}
	}
	r, err := s.store.Get(ctx, cmd.RideID)
	if err != nil {
		return nil, err
	}
	if r.DriverID != cmd.DriverID {
		return nil, ErrForbidden
	}
	if !CanTransition(r.Status, StatusCompleted) {
		return nil, ErrInvalidState
	}

	fare := cmd.FinalFare
	if fare == 0 {
		fare = r.EstimatedEarnings.Amount
	}
	at := s.now().UTC()
	ok, err := s.store.Complete(ctx, r.ID, cmd.DriverID, fare, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	r.Status = StatusCompleted
	r.FinalFare = &types.Money{Amount: fare, Currency: r.EstimatedEarnings.Currency}
	r.CompletedAt = &at
	events.PublishAfterCommit(ctx, s.publisher, events.RideCompleted, r)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Ride, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, id)
}

// Earnings totals the final fares of the driver's completed rides.
func (s *Service) Earnings(ctx context.Context, driverID types.ID) (Earnings, error) {
	if driverID == "" {
		return Earnings{}, ErrBadRequest
	}
	total, count, err := s.store.Earnings(ctx, driverID)
	if err != nil {
		return Earnings{}, err
	}
	return Earnings{Total: types.Money{Amount: total, Currency: s.currency}, RideCount: count}, nil
}

// ListUpcoming returns ongoing rides that have not departed yet, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]Ride, error) {
	return s.store.ListUpcoming(ctx, s.now().UTC(), upcomingLimit)
}

func (s *Service) ListByDriver(ctx context.Context, driverID types.ID) ([]Ride, error) {
	if driverID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByDriver(ctx, driverID)
}
