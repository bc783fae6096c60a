package repositories

import (
	"context"
	"fmt"
	"sync"
	"waste-route-service/internal/domain"
)

// In-memory implementation of the report, driver and assignment ports.
// Used when no DATABASE_URL is configured and in tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	reports     []domain.Report
	drivers     []domain.DriverRecord
	assignments map[string]domain.AssignmentUpdate
}

func NewMemoryRepository(reports []domain.Report, drivers []domain.DriverRecord) *MemoryRepository {
	m := &MemoryRepository{assignments: make(map[string]domain.AssignmentUpdate)}
	m.reports = append(m.reports, reports...)
	m.drivers = append(m.drivers, drivers...)
	return m
}

func (m *MemoryRepository) ListOpenReports(ctx context.Context) ([]domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Report, 0, len(m.reports))
	for _, r := range m.reports {
		if domain.IsOpenStatus(r.Status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListActiveDrivers(ctx context.Context) ([]domain.DriverRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.DriverRecord, 0, len(m.drivers))
	for _, d := range m.drivers {
		if d.Active {
			out = append(out, d)
		}
	}
	return out, nil
}

// ApplyAssignment overwrites the report's status and stores the update.
func (m *MemoryRepository) ApplyAssignment(ctx context.Context, u domain.AssignmentUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.reports {
		if m.reports[i].ID == u.ReportID {
			m.reports[i].Status = u.Status
			m.assignments[u.ReportID] = u
			return nil
		}
	}
	return fmt.Errorf("apply assignment: report %q: %w", u.ReportID, domain.ErrNotFound)
}

// Assignment returns the last update applied to a report.
func (m *MemoryRepository) Assignment(reportID string) (domain.AssignmentUpdate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.assignments[reportID]
	return u, ok
}

// Assignments returns how many reports carry an assignment.
func (m *MemoryRepository) Assignments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assignments)
}
