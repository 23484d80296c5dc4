// README: Google Directions client returning driving distance and route geometry.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"carpool/internal/types"
)

var ErrNoRoute = errors.New("no route found")

type Route struct {
	DistanceKm float64
	Duration   time.Duration
	Path       []types.Point
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client        *maps.Client
	region        string
	addressSuffix string
}

// NewRouteService creates a new RouteService with the given API Key. Addresses are biased to
// region, and addressSuffix (e.g. ", Kerala, India") is appended to bare place names.
func NewRouteService(apiKey, region, addressSuffix string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, region: region, addressSuffix: addressSuffix}, nil
}

// Route returns the driving route from origin to destination.
func (s *RouteService) Route(ctx context.Context, origin, destination string) (Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      s.qualify(origin),
		Destination: s.qualify(destination),
		Mode:        maps.TravelModeDriving,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Route{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Route{}, ErrNoRoute
	}

	var meters int
	var duration time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}
	out := Route{DistanceKm: float64(meters) / 1000, Duration: duration}

	latlngs, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return Route{}, fmt.Errorf("decode polyline: %w", err)
	}
	out.Path = make([]types.Point, len(latlngs))
	for i, ll := range latlngs {
		out.Path[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}
	return out, nil
}

// DistanceKm implements the grouping distance resolver.
func (s *RouteService) DistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	r, err := s.Route(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	return r.DistanceKm, nil
}

func (s *RouteService) qualify(addr string) string {
	return QualifyAddress(addr, s.addressSuffix)
}

// QualifyAddress appends suffix unless addr already ends with it.
func QualifyAddress(addr, suffix string) string {
	addr = strings.TrimSpace(addr)
	if suffix == "" || strings.HasSuffix(strings.ToLower(addr), strings.ToLower(strings.TrimSpace(suffix))) {
		return addr
	}
	return addr + suffix
}
