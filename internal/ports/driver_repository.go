package ports

import (
	"context"
	"waste-route-service/internal/domain"
)

// Port: a boundary for retrieving driver profiles.
type DriverRepository interface {
	// Retrieve drivers flagged active. Records may still lack a base location.
	ListActiveDrivers(ctx context.Context) ([]domain.DriverRecord, error)
}
