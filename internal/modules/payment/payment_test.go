package payment

import (
	"context"
	"testing"

	"carpool/internal/dbtest"
	"carpool/internal/events"
	"carpool/internal/types"
)

type memRepo struct {
	rows []Payment
}

func (m *memRepo) Create(_ context.Context, p *Payment) error {
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memRepo) ListByRider(_ context.Context, riderID types.ID) ([]Payment, error) {
	var out []Payment
	for _, p := range m.rows {
		if p.RiderID == riderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	rec := &events.Recorder{}
	svc := NewService(&memRepo{}, rec, "INR")

	tests := []struct {
		name    string
		cmd     CreateCommand
		wantErr error
	}{
		{"ok", CreateCommand{RiderID: "r1", RideID: "ride1", Amount: 76}, nil},
		{"zero amount", CreateCommand{RiderID: "r1", RideID: "ride1"}, ErrInvalidAmount},
		{"negative amount", CreateCommand{RiderID: "r1", RideID: "ride1", Amount: -5}, ErrInvalidAmount},
		{"missing ride", CreateCommand{RiderID: "r1", Amount: 10}, ErrBadRequest},
		{"missing rider", CreateCommand{RideID: "ride1", Amount: 10}, ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.Create(ctx, tt.cmd)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (p.Amount.Amount != tt.cmd.Amount || p.Amount.Currency != "INR" || p.Status != StatusPaid) {
				t.Errorf("payment = %+v", p)
			}
		})
	}

	mine, _ := svc.ListByRider(ctx, "r1")
	if len(mine) != 1 {
		t.Errorf("ListByRider = %d payments, want 1", len(mine))
	}
	if keys := rec.Keys(); len(keys) != 1 || keys[0] != events.PaymentRecorded {
		t.Errorf("published %v", keys)
	}
}

func TestStore_UnknownRide(t *testing.T) {
	svc := NewService(NewStore(dbtest.Open(t)), nil, "INR")
	_, err := svc.Create(context.Background(), CreateCommand{RiderID: "r1", RideID: "no-such-ride", Amount: 50})
	if err != ErrRideNotFound {
		t.Fatalf("err = %v, want ErrRideNotFound", err)
	}
}
