// README: Pricing service resolves the active fare model and computes quotes.
package pricing

import (
	"context"

	"github.com/sirupsen/logrus"
)

const defaultRateName = "default"

type RateStore interface {
	GetRate(ctx context.Context, name string) (Rate, error)
}

type Service struct {
	store    RateStore
	fallback FareModel
}

// NewService returns a Service. store may be nil, in which case the fallback model is always used.
func NewService(store RateStore, fallback FareModel) *Service {
	return &Service{store: store, fallback: fallback}
}

// Model returns the persisted default rate if there is one, otherwise the configured model.
func (s *Service) Model(ctx context.Context) FareModel {
	if s.store == nil {
		return s.fallback
	}
	r, err := s.store.GetRate(ctx, defaultRateName)
	if err != nil {
		if err != ErrRateNotFound {
			logrus.WithError(err).Warn("pricing: loading fare rate, using configured model")
		}
		return s.fallback
	}
	return r.Model()
}

// Quote prices a single route. A non-positive distance falls back to the model's fixed distance.
func (s *Service) Quote(ctx context.Context, distanceKm float64) Quote {
	m := s.Model(ctx)
	return m.Quote(m.DistanceOrFallback(distanceKm, true))
}
