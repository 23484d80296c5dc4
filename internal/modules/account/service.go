// README: Account service; registration with bcrypt-hashed passwords and token login.
package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carpool/internal/types"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPlateTaken         = errors.New("vehicle already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginDisabled      = errors.New("password login is not enabled")
)

const minPasswordLen = 6

type Repository interface {
	CreateUser(ctx context.Context, u *User, driver *Driver) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenIssuer signs access tokens for logged-in users.
type TokenIssuer interface {
	Issue(userID, role string) (string, time.Time, error)
}

type Service struct {
	store    Repository
	tokens   TokenIssuer
	hashCost int
}

func NewService(store Repository, tokens TokenIssuer) *Service {
	return &Service{store: store, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

type RegisterCommand struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     Role

	// driver only
	LicenseNumber string
	VehicleModel  string
	VehiclePlate  string
	VehicleSeats  int
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Phone = strings.TrimSpace(cmd.Phone)

	driver, err := validateRegister(cmd)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), s.hashCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           types.NewID(),
		Email:        cmd.Email,
		PasswordHash: string(hash),
		Name:         cmd.Name,
		Phone:        cmd.Phone,
		Role:         cmd.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if driver != nil {
		driver.Vehicle.ID = types.NewID()
		driver.Vehicle.DriverID = u.ID
	}
	if err := s.store.CreateUser(ctx, u, driver); err != nil {
		return nil, err
	}
	return u, nil
}

func validateRegister(cmd RegisterCommand) (*Driver, error) {
	if _, err := mail.ParseAddress(cmd.Email); err != nil || cmd.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if len(cmd.Password) < minPasswordLen {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if cmd.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if cmd.Phone == "" {
		return nil, &ValidationError{Field: "phone", Reason: "must not be empty"}
	}
	if !cmd.Role.Valid() {
		return nil, &ValidationError{Field: "role", Reason: "must be rider or driver"}
	}
	if cmd.Role == RoleRider {
		return nil, nil
	}

	d := &Driver{
		LicenseNumber: strings.TrimSpace(cmd.LicenseNumber),
		Vehicle: Vehicle{
			Model:       strings.TrimSpace(cmd.VehicleModel),
			PlateNumber: strings.ToUpper(strings.TrimSpace(cmd.VehiclePlate)),
			Seats:       cmd.VehicleSeats,
		},
	}
	switch {
	case d.LicenseNumber == "":
		return nil, &ValidationError{Field: "license_number", Reason: "required for drivers"}
	case d.Vehicle.Model == "":
		return nil, &ValidationError{Field: "vehicle_model", Reason: "required for drivers"}
	case d.Vehicle.PlateNumber == "":
		return nil, &ValidationError{Field: "vehicle_plate", Reason: "required for drivers"}
	case d.Vehicle.Seats < 1:
		return nil, &ValidationError{Field: "vehicle_seats", Reason: "must be at least 1"}
	}
	return d, nil
}

// Login checks the password and returns a signed access token. Unknown emails and wrong
// passwords both report ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.tokens == nil {
		return nil, ErrLoginDisabled
	}
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.tokens.Issue(string(u.ID), string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: *u}, nil
}
