// README: Groups pending ride requests by route and estimates per-group fares.
package grouping

import (
	"strconv"
	"strings"

	"carpool/internal/modules/pricing"
	"carpool/internal/modules/request"
	"carpool/internal/types"
)

// RouteKey identifies a group. Two requests share a group when their keys are equal.
type RouteKey struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
}

// Key is a stable string form of the route key, used for caches and logs. Both fields are
// quoted so no pickup/destination pair can collide with another.
func (k RouteKey) Key() string {
	return strconv.Quote(k.Pickup) + "|" + strconv.Quote(k.Destination)
}

// Keyer derives the route key of a request.
type Keyer func(r request.RideRequest) RouteKey

// ExactKey groups by exact string equality of pickup and destination.
func ExactKey(r request.RideRequest) RouteKey {
	return RouteKey{Pickup: r.Pickup, Destination: r.Destination}
}

// NormalizedKey folds case and collapses runs of whitespace before comparing.
func NormalizedKey(r request.RideRequest) RouteKey {
	return RouteKey{Pickup: fold(r.Pickup), Destination: fold(r.Destination)}
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Group is the derived set of pending requests sharing a route key, with its estimated fares.
type Group struct {
	Route         RouteKey    `json:"route"`
	RequestIDs    []types.ID  `json:"request_ids"`
	TotalSeats    int         `json:"total_seats"`
	RiderCount    int         `json:"rider_count"`
	DistanceKm    float64     `json:"distance_km"`
	PerRiderFare  types.Money `json:"per_rider_fare"`
	TotalEarnings types.Money `json:"total_earnings"`
}

// Distances maps a route key to a known routing distance in kilometres.
type Distances map[RouteKey]float64

// Partition groups requests by exact route key. See PartitionBy.
func Partition(requests []request.RideRequest) []Group {
	return PartitionBy(requests, ExactKey)
}

// PartitionBy groups requests in a single pass. Groups come out in the order their route key
// was first seen and member ids keep input order. Duplicate ids are not removed. A group's
// Route is the first member's pickup and destination as written; keyOf only decides membership.
func PartitionBy(requests []request.RideRequest, keyOf Keyer) []Group {
	groups := make([]Group, 0)
	index := make(map[RouteKey]int)
	for _, r := range requests {
		k := keyOf(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Route: ExactKey(r)})
		}
		g := &groups[i]
		g.RequestIDs = append(g.RequestIDs, r.ID)
		g.TotalSeats += r.SeatsRequired
		g.RiderCount++
	}
	return groups
}

// Price fills in distance and fares for each group. Routes missing from distances use the
// model's fallback distance. groups is modified in place and returned.
func Price(groups []Group, model pricing.FareModel, distances Distances) []Group {
	for i := range groups {
		g := &groups[i]
		km, ok := distances[g.Route]
		g.DistanceKm = model.DistanceOrFallback(km, ok)
		g.PerRiderFare = model.PerRiderFare(g.DistanceKm)
		g.TotalEarnings = g.PerRiderFare.Times(g.RiderCount)
	}
	return groups
}

// Estimate partitions requests by exact route key and prices every group.
func Estimate(requests []request.RideRequest, model pricing.FareModel, distances Distances) []Group {
	return Price(Partition(requests), model, distances)
}
