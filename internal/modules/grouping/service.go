// README: Grouping service loads pending requests and prices them for the driver dashboard.
package grouping

import (
	"context"

	"github.com/sirupsen/logrus"

	"carpool/internal/modules/pricing"
	"carpool/internal/modules/request"
)

// PendingSource lists requests still waiting for a driver.
type PendingSource interface {
	ListPending(ctx context.Context) ([]request.RideRequest, error)
}

// DistanceResolver returns the driving distance between two addresses in kilometres.
type DistanceResolver interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// FareModeler returns the fare model currently in force.
type FareModeler interface {
	Model(ctx context.Context) pricing.FareModel
}

type Service struct {
	source   PendingSource
	fares    FareModeler
	resolver DistanceResolver
	keyOf    Keyer
}

// NewService returns a grouping service. resolver may be nil, in which case every group is
// priced at the fallback distance. normalize enables case and whitespace folding of route keys.
func NewService(source PendingSource, fares FareModeler, resolver DistanceResolver, normalize bool) *Service {
	keyOf := Keyer(ExactKey)
	if normalize {
		keyOf = NormalizedKey
	}
	return &Service{source: source, fares: fares, resolver: resolver, keyOf: keyOf}
}

// PendingGroups returns the current pending requests grouped by route and priced.
func (s *Service) PendingGroups(ctx context.Context) ([]Group, error) {
	pending, err := s.source.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	groups := PartitionBy(pending, s.keyOf)
	return Price(groups, s.fares.Model(ctx), s.distances(ctx, groups)), nil
}

func (s *Service) distances(ctx context.Context, groups []Group) Distances {
	d := make(Distances, len(groups))
	if s.resolver == nil {
		return d
	}
	for _, g := range groups {
		km, err := s.resolver.DistanceKm(ctx, g.Route.Pickup, g.Route.Destination)
		if err != nil {
			logrus.WithError(err).WithField("route", g.Route.Key()).Warn("grouping: distance lookup failed, using fallback")
			continue
		}
		d[g.Route] = km
	}
	return d
}

// SameGroup reports whether a and b would land in the same group.
func (s *Service) SameGroup(a, b request.RideRequest) bool {
	return s.keyOf(a) == s.keyOf(b)
}

// PriceGroup prices a single group the same way PendingGroups does.
func (s *Service) PriceGroup(ctx context.Context, g Group) Group {
	groups := []Group{g}
	return Price(groups, s.fares.Model(ctx), s.distances(ctx, groups))[0]
}
