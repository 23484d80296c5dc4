// README: Linear fare model shared by rider quotes and driver group earnings.
package pricing

import (
	"math"

	"carpool/internal/config"
	"carpool/internal/types"
)

// FareModel is the fixed linear function mapping distance to price.
type FareModel struct {
	BaseFare           int64
	RatePerKm          int64
	RiderShare         float64 // fraction of the full fare each pooled rider pays
	FallbackDistanceKm float64 // used when no routing distance is known
	Currency           string
}

// DefaultFareModel is 30 base plus 8 per km, riders paying 60% each, 12 km when unrouted.
func DefaultFareModel() FareModel {
	return FareModel{
		BaseFare:           30,
		RatePerKm:          8,
		RiderShare:         0.6,
		FallbackDistanceKm: 12,
		Currency:           "INR",
	}
}

func FromConfig(cfg config.FareConfig) FareModel {
	return FareModel{
		BaseFare:           cfg.BaseFare,
		RatePerKm:          cfg.RatePerKm,
		RiderShare:         cfg.RiderShare,
		FallbackDistanceKm: cfg.FallbackDistanceKm,
		Currency:           cfg.Currency,
	}
}

// Rate is a persisted override of the configured fare model.
type Rate struct {
	Name               string
	BaseFare           int64
	RatePerKm          int64
	RiderShare         float64
	FallbackDistanceKm float64
	Currency           string
}

func (r Rate) Model() FareModel {
	return FareModel{
		BaseFare:           r.BaseFare,
		RatePerKm:          r.RatePerKm,
		RiderShare:         r.RiderShare,
		FallbackDistanceKm: r.FallbackDistanceKm,
		Currency:           r.Currency,
	}
}

// Quote is the fare estimate for one route.
type Quote struct {
	DistanceKm   float64     `json:"distance_km"`
	SoloFare     types.Money `json:"solo_fare"`
	PerRiderFare types.Money `json:"per_rider_fare"`
}

// RoundHalfUp rounds to the nearest whole unit, halves away from zero for positive values.
func RoundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// DistanceOrFallback returns km when it is a usable routing distance.
func (m FareModel) DistanceOrFallback(km float64, ok bool) float64 {
	if !ok || km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		return m.FallbackDistanceKm
	}
	return km
}

func (m FareModel) FullFare(distanceKm float64) float64 {
	return float64(m.BaseFare) + distanceKm*float64(m.RatePerKm)
}

func (m FareModel) PerRiderFare(distanceKm float64) types.Money {
	return m.money(RoundHalfUp(m.FullFare(distanceKm) * m.RiderShare))
}

// SoloFare is the unshared fare shown to a rider creating a request.
func (m FareModel) SoloFare(distanceKm float64) types.Money {
	return m.money(RoundHalfUp(m.FullFare(distanceKm)))
}

func (m FareModel) Quote(distanceKm float64) Quote {
	return Quote{
		DistanceKm:   distanceKm,
		SoloFare:     m.SoloFare(distanceKm),
		PerRiderFare: m.PerRiderFare(distanceKm),
	}
}

func (m FareModel) money(amount int64) types.Money {
	return types.Money{Amount: amount, Currency: m.Currency}
}
