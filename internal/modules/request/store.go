// README: Ride request store backed by PostgreSQL.
package request

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const selectColumns = `
	SELECT request_id, rider_id, pickup_location, destination, seats_required,
	       request_status, ride_id, created_at
	FROM ride_requests`

func (s *Store) Create(ctx context.Context, r *RideRequest) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ride_requests (
			request_id, rider_id, pickup_location, destination,
			seats_required, request_status, ride_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)`,
		string(r.ID),
		string(r.RiderID),
		r.Pickup,
		r.Destination,
		r.SeatsRequired,
		string(r.Status),
		r.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*RideRequest, error) {
	rows, err := s.db.Query(ctx, selectColumns+` WHERE request_id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	r, err := pgx.CollectExactlyOneRow(rows, scanRequest)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListPending returns pending requests oldest first, so grouping sees them in creation order.
func (s *Store) ListPending(ctx context.Context) ([]RideRequest, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE request_status = 'pending'
		ORDER BY created_at ASC, request_id ASC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRequest)
}

func (s *Store) ListByRider(ctx context.Context, riderID types.ID) ([]RideRequest, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE rider_id = $1
		ORDER BY created_at DESC`, string(riderID))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRequest)
}

// UpdateStatus moves a request from one status to another. It reports false when the
// request was no longer in the expected status.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE ride_requests
		SET request_status = $1
		WHERE request_id = $2 AND request_status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanRequest(row pgx.CollectableRow) (RideRequest, error) {
	var r RideRequest
	var rideID *string
	err := row.Scan(
		&r.ID, &r.RiderID, &r.Pickup, &r.Destination, &r.SeatsRequired,
		&r.Status, &rideID, &r.CreatedAt,
	)
	if err != nil {
		return RideRequest{}, err
	}
	if rideID != nil {
		id := types.ID(*rideID)
		r.RideID = &id
	}
	return r, nil
}
