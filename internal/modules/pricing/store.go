// README: Pricing store backed by PostgreSQL (fare_rates overrides).
package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRateNotFound = errors.New("fare rate not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetRate(ctx context.Context, name string) (Rate, error) {
	var r Rate
	err := s.db.QueryRow(ctx, `
		SELECT name, base_fare, rate_per_km, rider_share, fallback_distance_km, currency
		FROM fare_rates
		WHERE name = $1`, name,
	).Scan(&r.Name, &r.BaseFare, &r.RatePerKm, &r.RiderShare, &r.FallbackDistanceKm, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, ErrRateNotFound
	}
	if err != nil {
		return Rate{}, err
	}
	return r, nil
}
