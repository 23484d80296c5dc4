// README: Account store; a user and its role rows are written in one transaction.
package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/infra"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CreateUser inserts u plus its riders or drivers/vehicles rows. driver must be non-nil
// for RoleDriver.
func (s *Store) CreateUser(ctx context.Context, u *User, driver *Driver) error {
	return infra.WithinTx(ctx, s.db, func(ctx context.Context) error {
		q := infra.Conn(ctx, s.db)

		_, err := q.Exec(ctx, `
			INSERT INTO users (user_id, email, password_hash, name, phone, role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(u.ID), u.Email, u.PasswordHash, u.Name, u.Phone, string(u.Role), u.CreatedAt,
		)
		if infra.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return err
		}

		if u.Role == RoleRider {
			_, err = q.Exec(ctx, `INSERT INTO riders (rider_id) VALUES ($1)`, string(u.ID))
			return err
		}

		if _, err := q.Exec(ctx, `
			INSERT INTO drivers (driver_id, license_number) VALUES ($1, $2)`,
			string(u.ID), driver.LicenseNumber,
		); err != nil {
			return err
		}
		v := driver.Vehicle
		_, err = q.Exec(ctx, `
			INSERT INTO vehicles (vehicle_id, driver_id, model, plate_number, seats)
			VALUES ($1, $2, $3, $4, $5)`,
			string(v.ID), string(u.ID), v.Model, v.PlateNumber, v.Seats,
		)
		if infra.IsUniqueViolation(err) {
			return ErrPlateTaken
		}
		return err
	})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx, `
		SELECT user_id, email, password_hash, name, phone, role, created_at
		FROM users
		WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
