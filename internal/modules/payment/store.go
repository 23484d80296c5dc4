// README: Payment store backed by PostgreSQL.
package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Payment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO payments (payment_id, rider_id, ride_id, amount, currency, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(p.ID),
		string(p.RiderID),
		string(p.RideID),
		p.Amount.Amount,
		p.Amount.Currency,
		string(p.Status),
		p.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrRideNotFound
	}
	return err
}

func (s *Store) ListByRider(ctx context.Context, riderID types.ID) ([]Payment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT payment_id, rider_id, ride_id, amount, currency, payment_status, created_at
		FROM payments
		WHERE rider_id = $1
		ORDER BY created_at DESC`, string(riderID))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Payment, error) {
		var p Payment
		err := row.Scan(&p.ID, &p.RiderID, &p.RideID, &p.Amount.Amount, &p.Amount.Currency, &p.Status, &p.CreatedAt)
		return p, err
	})
}
