package ports

import (
	"context"
	"waste-route-service/internal/domain"
)

// Port: applies an assignment back onto the originating report.
type AssignmentWriter interface {
	// Overwrite the report's assignment fields. Applying the same update twice
	// leaves the report unchanged. Unknown report ids return domain.ErrNotFound.
	ApplyAssignment(ctx context.Context, u domain.AssignmentUpdate) error
}
