package cache

import (
	"context"
	"reflect"
	"testing"
	"time"
	"waste-route-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRouteCache(rdb, ttl), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "route:d1:abc"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v, want miss", ok, err)
	}

	route := domain.DriverRoute{
		DriverID:     "d1",
		DriverName:   "Asha",
		BaseLocation: domain.Coordinates{Lat: 28.61, Lng: 77.205},
		MaxCapacity:  10,
		Stops: []domain.RouteStop{
			{SequenceNumber: 1, PointID: "r1", Coordinates: domain.Coordinates{Lat: 28.62, Lng: 77.21}, Priority: domain.PriorityRed, Volume: 3},
		},
		TotalStops:                 1,
		TotalVolume:                3,
		CapacityUtilizationPercent: 30,
		PriorityBreakdown:          domain.PriorityCounts{Red: 1},
	}

	if err := c.Put(ctx, "route:d1:abc", route); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "route:d1:abc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, route) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, route)
	}
}

func TestRedisRouteCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	if err := c.Put(ctx, "k", domain.DriverRoute{DriverID: "d1", Stops: []domain.RouteStop{}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := mr.TTL(defaultKeyPrefix + "k"); ttl != 30*time.Second {
		t.Fatalf("ttl = %v, want 30s", ttl)
	}

	mr.FastForward(31 * time.Second)
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expired entry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestRedisRouteCacheReportsBackendErrors(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
