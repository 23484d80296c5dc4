// README: Redis cache in front of a distance resolver.
package maps

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const distanceKeyPrefix = "routing:distance:"

type DistanceResolver interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// DistanceCache remembers resolved distances in Redis. A nil client disables caching.
// Redis failures are logged and the lookup goes to the wrapped resolver.
type DistanceCache struct {
	next DistanceResolver
	rdb  *redis.Client
	ttl  time.Duration
}

func NewDistanceCache(next DistanceResolver, rdb *redis.Client, ttl time.Duration) *DistanceCache {
	return &DistanceCache{next: next, rdb: rdb, ttl: ttl}
}

func DistanceKey(origin, destination string) string {
	return distanceKeyPrefix + strconv.Quote(origin) + "|" + strconv.Quote(destination)
}

func (c *DistanceCache) DistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	if c.rdb == nil {
		return c.next.DistanceKm(ctx, origin, destination)
	}
	key := DistanceKey(origin, destination)

	cached, err := c.rdb.Get(ctx, key).Float64()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		logrus.WithError(err).WithField("key", key).Warn("maps: distance cache read failed")
	}

	km, err := c.next.DistanceKm(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	if err := c.rdb.Set(ctx, key, km, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("maps: distance cache write failed")
	}
	return km, nil
}
