package ports

import (
	"context"
	"waste-route-service/internal/domain"
)

// Contract for caching driver-specific routes between identical snapshots.
type RouteCache interface {
	// Return the cached route and true, or false on a miss.
	Get(ctx context.Context, key string) (domain.DriverRoute, bool, error)
	Put(ctx context.Context, key string, route domain.DriverRoute) error
}
