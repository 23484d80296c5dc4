package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carpool/internal/dbtest"
	"carpool/internal/infra"
)

type memRepo struct {
	users   map[string]User
	drivers map[string]Driver
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]User), drivers: make(map[string]Driver)}
}

func (m *memRepo) CreateUser(_ context.Context, u *User, d *Driver) error {
	if _, ok := m.users[u.Email]; ok {
		return ErrEmailTaken
	}
	m.users[u.Email] = *u
	if d != nil {
		m.drivers[string(u.ID)] = *d
	}
	return nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	tokens, err := infra.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	svc := NewService(repo, tokens)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func riderCmd(email string) RegisterCommand {
	return RegisterCommand{Email: email, Password: "secret123", Name: "Anu", Phone: "9800000000", Role: RoleRider}
}

func driverCmd(email string) RegisterCommand {
	return RegisterCommand{
		Email: email, Password: "secret123", Name: "Biju", Phone: "9811111111", Role: RoleDriver,
		LicenseNumber: "KL07 2020 0001234", VehicleModel: "Maruti Ertiga", VehiclePlate: "kl 07 ab 1234", VehicleSeats: 6,
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	tests := []struct {
		name  string
		mut   func(*RegisterCommand)
		field string
	}{
		{"bad email", func(c *RegisterCommand) { c.Email = "not-an-email" }, "email"},
		{"short password", func(c *RegisterCommand) { c.Password = "abc" }, "password"},
		{"no name", func(c *RegisterCommand) { c.Name = " " }, "name"},
		{"no phone", func(c *RegisterCommand) { c.Phone = "" }, "phone"},
		{"unknown role", func(c *RegisterCommand) { c.Role = "admin" }, "role"},
		{"driver without license", func(c *RegisterCommand) { *c = driverCmd(c.Email); c.LicenseNumber = "" }, "license_number"},
		{"driver without plate", func(c *RegisterCommand) { *c = driverCmd(c.Email); c.VehiclePlate = "" }, "vehicle_plate"},
		{"driver without seats", func(c *RegisterCommand) { *c = driverCmd(c.Email); c.VehicleSeats = 0 }, "vehicle_seats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := riderCmd("anu@example.com")
			tt.mut(&cmd)
			_, err := svc.Register(context.Background(), cmd)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(t, repo)

	u, err := svc.Register(ctx, driverCmd(" Biju@Example.com "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "biju@example.com" || u.Role != RoleDriver {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "secret123" {
		t.Error("password stored in clear text")
	}
	if d := repo.drivers[string(u.ID)]; d.Vehicle.PlateNumber != "KL 07 AB 1234" || d.Vehicle.DriverID != u.ID {
		t.Errorf("driver = %+v", d)
	}

	if _, err := svc.Register(ctx, riderCmd("biju@example.com")); err != ErrEmailTaken {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}

	res, err := svc.Login(ctx, "BIJU@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.User.ID != u.ID {
		t.Errorf("login = %+v", res)
	}
	tok, err := svc.tokens.(*infra.JWTManager).VerifyIDToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if tok.UID != string(u.ID) || tok.Role() != "driver" {
		t.Errorf("token = %+v", tok)
	}

	if _, err := svc.Login(ctx, "biju@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); err != ErrInvalidCredentials {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_NoIssuer(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	if _, err := svc.Login(context.Background(), "a@example.com", "secret123"); err != ErrLoginDisabled {
		t.Errorf("err = %v, want ErrLoginDisabled", err)
	}
}

func TestStore_Register(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewStore(dbtest.Open(t)))

	if _, err := svc.Register(ctx, riderCmd("anu@example.com")); err != nil {
		t.Fatalf("register rider: %v", err)
	}
	if _, err := svc.Register(ctx, riderCmd("anu@example.com")); err != ErrEmailTaken {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}
	if _, err := svc.Register(ctx, driverCmd("biju@example.com")); err != nil {
		t.Fatalf("register driver: %v", err)
	}
	// Same plate: the whole registration rolls back, so the email stays free.
	if _, err := svc.Register(ctx, driverCmd("chandra@example.com")); err != ErrPlateTaken {
		t.Fatalf("duplicate plate: err = %v, want ErrPlateTaken", err)
	}
	if _, err := svc.Login(ctx, "chandra@example.com", "secret123"); err != ErrInvalidCredentials {
		t.Errorf("rolled back user can log in: err = %v", err)
	}
	if _, err := svc.Login(ctx, "biju@example.com", "secret123"); err != nil {
		t.Errorf("login driver: %v", err)
	}
}
