package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"waste-route-service/internal/domain"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSeeds(t *testing.T) {
	reportsPath := writeFile(t, "reports.json", `[
		{"id": "r1", "coords": {"lat": 28.61, "lng": 77.2}, "status": "open", "description": "overflowing"},
		{"id": "r2", "description": "no location"}
	]`)
	driversPath := writeFile(t, "drivers.json", `[
		{"driverId": "d1", "driverName": "Asha", "baseLocation": {"lat": 28.6, "lng": 77.2}, "vehicleCapacity": 30},
		{"id": "d2", "active": false}
	]`)

	reports, err := LoadReportSeeds(reportsPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 || reports[0].Coords == nil || reports[1].Coords != nil || reports[1].Status != domain.StatusOpen {
		t.Fatalf("reports = %+v", reports)
	}

	drivers, err := LoadDriverSeeds(driversPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drivers[0].ID != "d1" || !drivers[0].Active || *drivers[0].VehicleCapacity != 30 {
		t.Fatalf("driver d1 = %+v", drivers[0])
	}
	if drivers[1].Active {
		t.Fatalf("d2 should be inactive")
	}

	if _, err := LoadReportSeeds(writeFile(t, "bad.json", `[{"status": "open"}]`)); err == nil {
		t.Fatalf("expected error for report without id")
	}
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(
		[]domain.Report{
			{ID: "r1", Status: "open"},
			{ID: "r2", Status: "collected"},
		},
		[]domain.DriverRecord{{ID: "d1", Active: true}, {ID: "d2", Active: false}},
	)

	reports, _ := repo.ListOpenReports(ctx)
	drivers, _ := repo.ListActiveDrivers(ctx)
	if len(reports) != 1 || len(drivers) != 1 {
		t.Fatalf("reports=%d drivers=%d, want 1 and 1", len(reports), len(drivers))
	}

	u := domain.AssignmentUpdate{ReportID: "r1", DriverID: "d1", Status: domain.StatusAssigned, RouteOrder: 1, TotalStops: 1}
	if err := repo.ApplyAssignment(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.ApplyAssignment(ctx, u); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if repo.Assignments() != 1 {
		t.Fatalf("assignments = %d, want 1", repo.Assignments())
	}

	err := repo.ApplyAssignment(ctx, domain.AssignmentUpdate{ReportID: "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
