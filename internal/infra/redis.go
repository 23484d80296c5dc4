// README: Redis client initialization for the route distance cache.
package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis returns a client for addr, or nil when addr is empty. An unreachable server is
// logged but not fatal; cache reads then fall through to the routing API.
func NewRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", addr).Warn("redis: ping failed")
	}
	return client
}
