// README: Ride store backed by PostgreSQL; accept-group runs in a single transaction.
package ride

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/infra"
	"carpool/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Members loads the given ride requests. Missing ids are simply absent from the result.
func (s *Store) Members(ctx context.Context, ids []types.ID) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT request_id, pickup_location, destination, seats_required, request_status
		FROM ride_requests
		WHERE request_id = ANY($1)`, idStrings(ids))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Member, error) {
		var m Member
		err := row.Scan(&m.ID, &m.Pickup, &m.Destination, &m.SeatsRequired, &m.Status)
		return m, err
	})
}

// AcceptGroup creates the ride, assigns every request to it and marks the requests accepted.
// All three writes share one transaction; if any request is no longer pending nothing is
// written and ErrConflict is returned.
func (s *Store) AcceptGroup(ctx context.Context, r *Ride) error {
	return infra.WithinTx(ctx, s.db, func(ctx context.Context) error {
		q := infra.Conn(ctx, s.db)

		_, err := q.Exec(ctx, `
			INSERT INTO rides (
				ride_id, driver_id, ride_status, pickup_location, destination,
				seats_booked, estimated_earnings, currency, depart_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			string(r.ID),
			string(r.DriverID),
			string(r.Status),
			r.Pickup,
			r.Destination,
			r.SeatsBooked,
			r.EstimatedEarnings.Amount,
			r.EstimatedEarnings.Currency,
			r.DepartAt,
			r.CreatedAt,
		)
		if err != nil {
			return err
		}

		assigned := make([][]any, len(r.RequestIDs))
		for i, id := range r.RequestIDs {
			assigned[i] = []any{string(r.ID), string(id), r.CreatedAt}
		}
		_, err = q.CopyFrom(ctx,
			pgx.Identifier{"ride_assignments"},
			[]string{"ride_id", "request_id", "assigned_at"},
			pgx.CopyFromRows(assigned),
		)
		if infra.IsUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `
			UPDATE ride_requests
			SET request_status = 'accepted', ride_id = $2
			WHERE request_id = ANY($1) AND request_status = 'pending'`,
			idStrings(r.RequestIDs), string(r.ID),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(r.RequestIDs)) {
			return ErrConflict
		}
		return nil
	})
}

const selectRide = `
	SELECT r.ride_id, r.driver_id, r.ride_status, r.pickup_location, r.destination,
	       r.seats_booked, r.estimated_earnings, r.final_fare, r.currency,
	       r.depart_at, r.created_at, r.completed_at,
	       ARRAY(
	           SELECT a.request_id FROM ride_assignments a
	           WHERE a.ride_id = r.ride_id
	           ORDER BY a.assigned_at, a.request_id
	       )
	FROM rides r`

func (s *Store) Get(ctx context.Context, id types.ID) (*Ride, error) {
	rows, err := s.db.Query(ctx, selectRide+` WHERE r.ride_id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	r, err := pgx.CollectExactlyOneRow(rows, scanRide)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Complete moves an ongoing ride owned by driverID to completed with the given fare.
// It reports false when the ride was not ongoing or belongs to someone else.
func (s *Store) Complete(ctx context.Context, id, driverID types.ID, finalFare int64, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE rides
		SET ride_status = 'completed', final_fare = $3, completed_at = $4
		WHERE ride_id = $1 AND driver_id = $2 AND ride_status = 'ongoing'`,
		string(id), string(driverID), finalFare, at,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Earnings sums final fares over the driver's completed rides.
func (s *Store) Earnings(ctx context.Context, driverID types.ID) (int64, int, error) {
	var total int64
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(final_fare), 0), COUNT(*)
		FROM rides
		WHERE driver_id = $1 AND ride_status = 'completed'`,
		string(driverID),
	).Scan(&total, &count)
	return total, count, err
}

func (s *Store) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]Ride, error) {
	rows, err := s.db.Query(ctx, selectRide+`
		WHERE r.ride_status = 'ongoing' AND r.depart_at >= $1
		ORDER BY r.depart_at ASC
		LIMIT $2`, after, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRide)
}

func (s *Store) ListByDriver(ctx context.Context, driverID types.ID) ([]Ride, error) {
	rows, err := s.db.Query(ctx, selectRide+`
		WHERE r.driver_id = $1
		ORDER BY r.created_at DESC`, string(driverID))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRide)
}

func scanRide(row pgx.CollectableRow) (Ride, error) {
	var r Ride
	var estimated int64
	var finalFare *int64
	var currency string
	var requestIDs []string
	err := row.Scan(
		&r.ID, &r.DriverID, &r.Status, &r.Pickup, &r.Destination,
		&r.SeatsBooked, &estimated, &finalFare, &currency,
		&r.DepartAt, &r.CreatedAt, &r.CompletedAt,
		&requestIDs,
	)
	if err != nil {
		return Ride{}, err
	}
	r.EstimatedEarnings = types.Money{Amount: estimated, Currency: currency}
	if finalFare != nil {
		r.FinalFare = &types.Money{Amount: *finalFare, Currency: currency}
	}
	r.RequestIDs = make([]types.ID, len(requestIDs))
	for i, id := range requestIDs {
		r.RequestIDs[i] = types.ID(id)
	}
	return r, nil
}

func idStrings(ids []types.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
