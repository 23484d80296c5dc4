package pricing

import (
	"context"
	"errors"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{75.6, 76},
		{75.4, 75},
		{97.5, 98},
		{2.5, 3},
		{18, 18},
		{0, 0},
		{0.49, 0},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFareModel(t *testing.T) {
	m := DefaultFareModel()

	tests := []struct {
		name         string
		distanceKm   float64
		wantFull     float64
		wantPerRider int64
		wantSolo     int64
	}{
		{
			name:         "Fallback distance (12km)",
			distanceKm:   12,
			wantFull:     126, // 30 + 12*8
			wantPerRider: 76,  // 126*0.6 = 75.6 -> 76
			wantSolo:     126,
		},
		{
			name:         "Zero distance is base fare only",
			distanceKm:   0,
			wantFull:     30,
			wantPerRider: 18,
			wantSolo:     30,
		},
		{
			name:         "Fractional distance (7.3km)",
			distanceKm:   7.3,
			wantFull:     88.4, // 30 + 58.4
			wantPerRider: 53,   // 53.04
			wantSolo:     88,
		},
		{
			name:         "Short hop (0.25km)",
			distanceKm:   0.25,
			wantFull:     32, // 30 + 2
			wantPerRider: 19, // 19.2
			wantSolo:     32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.FullFare(tt.distanceKm); got < tt.wantFull-1e-9 || got > tt.wantFull+1e-9 {
				t.Errorf("FullFare() = %v, want %v", got, tt.wantFull)
			}
			if got := m.PerRiderFare(tt.distanceKm); got.Amount != tt.wantPerRider || got.Currency != "INR" {
				t.Errorf("PerRiderFare() = %+v, want %d INR", got, tt.wantPerRider)
			}
			if got := m.SoloFare(tt.distanceKm); got.Amount != tt.wantSolo {
				t.Errorf("SoloFare() = %d, want %d", got.Amount, tt.wantSolo)
			}
		})
	}
}

func TestDistanceOrFallback(t *testing.T) {
	m := DefaultFareModel()
	if got := m.DistanceOrFallback(8.5, true); got != 8.5 {
		t.Errorf("known distance: got %v, want 8.5", got)
	}
	if got := m.DistanceOrFallback(8.5, false); got != 12 {
		t.Errorf("unknown distance: got %v, want 12", got)
	}
	if got := m.DistanceOrFallback(0, true); got != 12 {
		t.Errorf("zero distance: got %v, want 12", got)
	}
	if got := m.DistanceOrFallback(-3, true); got != 12 {
		t.Errorf("negative distance: got %v, want 12", got)
	}
}

type stubRateStore struct {
	rate Rate
	err  error
}

func (s stubRateStore) GetRate(_ context.Context, _ string) (Rate, error) {
	return s.rate, s.err
}

func TestService_Model(t *testing.T) {
	ctx := context.Background()
	fallback := DefaultFareModel()

	t.Run("nil store uses fallback", func(t *testing.T) {
		s := NewService(nil, fallback)
		if got := s.Model(ctx); got != fallback {
			t.Errorf("Model() = %+v, want %+v", got, fallback)
		}
	})

	t.Run("persisted rate overrides", func(t *testing.T) {
		s := NewService(stubRateStore{rate: Rate{Name: "default", BaseFare: 40, RatePerKm: 10, RiderShare: 0.5, FallbackDistanceKm: 10, Currency: "INR"}}, fallback)
		got := s.Model(ctx)
		if got.BaseFare != 40 || got.RatePerKm != 10 || got.RiderShare != 0.5 {
			t.Errorf("Model() = %+v, want persisted rate", got)
		}
	})

	t.Run("missing rate uses fallback", func(t *testing.T) {
		s := NewService(stubRateStore{err: ErrRateNotFound}, fallback)
		if got := s.Model(ctx); got != fallback {
			t.Errorf("Model() = %+v, want fallback", got)
		}
	})

	t.Run("store error uses fallback", func(t *testing.T) {
		s := NewService(stubRateStore{err: errors.New("db down")}, fallback)
		if got := s.Model(ctx); got != fallback {
			t.Errorf("Model() = %+v, want fallback", got)
		}
	})
}

func TestService_Quote(t *testing.T) {
	s := NewService(nil, DefaultFareModel())
	q := s.Quote(context.Background(), 0)
	if q.DistanceKm != 12 {
		t.Errorf("DistanceKm = %v, want fallback 12", q.DistanceKm)
	}
	if q.PerRiderFare.Amount != 76 || q.SoloFare.Amount != 126 {
		t.Errorf("Quote() = %+v, want per-rider 76 and solo 126", q)
	}
}
