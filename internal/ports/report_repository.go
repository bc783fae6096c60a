package ports

import (
	"context"
	"waste-route-service/internal/domain"
)

// Port: a boundary for retrieving citizen reports from a data source.
type ReportRepository interface {
	// Retrieve reports whose status is open, reported or pending.
	ListOpenReports(ctx context.Context) ([]domain.Report, error)
}
