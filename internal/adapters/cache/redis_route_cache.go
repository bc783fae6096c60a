package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "waste:"

// RedisRouteCache stores driver-specific routes as JSON with a TTL.
type RedisRouteCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl, prefix: defaultKeyPrefix}
}

// NewRedisRouteCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisRouteCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisRouteCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("route cache: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("route cache: ping redis: %w", err)
	}
	return NewRedisRouteCache(rdb, ttl), nil
}

// Fetch a cached route. A missing key is a miss, not an error.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.DriverRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DriverRoute{}, false, nil
	}
	if err != nil {
		return domain.DriverRoute{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var route domain.DriverRoute
	if err := json.Unmarshal(b, &route); err != nil {
		return domain.DriverRoute{}, false, fmt.Errorf("get route cache: decode %s: %w", key, err)
	}
	return route, true, nil
}

// Store a route under key for the configured TTL.
func (c *RedisRouteCache) Put(ctx context.Context, key string, route domain.DriverRoute) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	b, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) Close() error {
	return c.rdb.Close()
}
