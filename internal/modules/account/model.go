// README: Rider and driver accounts.
package account

import (
	"time"

	"carpool/internal/types"
)

type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

func (r Role) Valid() bool {
	return r == RoleRider || r == RoleDriver
}

type User struct {
	ID           types.ID  `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Vehicle struct {
	ID          types.ID `json:"id"`
	DriverID    types.ID `json:"driver_id"`
	Model       string   `json:"model"`
	PlateNumber string   `json:"plate_number"`
	Seats       int      `json:"seats"`
}

// Driver carries the driver-only registration data.
type Driver struct {
	LicenseNumber string
	Vehicle       Vehicle
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
