package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"waste-route-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'open',
		priority TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		urgent BOOLEAN NOT NULL DEFAULT FALSE,
		driver_id TEXT,
		assigned_at TIMESTAMPTZ,
		route_order INTEGER,
		total_stops INTEGER,
		estimated_pickup_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		driver_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		driver_name TEXT NOT NULL DEFAULT '',
		base_lat DOUBLE PRECISION,
		base_lng DOUBLE PRECISION,
		max_capacity DOUBLE PRECISION,
		vehicle_capacity DOUBLE PRECISION,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reports_status
	ON reports (lower(status));
	`

	statements := []string{
		createReportsQuery,
		createDriversQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CoordinatesSeed struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ReportSeed struct {
	ID          string           `json:"id"`
	Coords      *CoordinatesSeed `json:"coords"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Description string           `json:"description"`
	Urgent      bool             `json:"urgent"`
}

type DriverSeed struct {
	ID              string           `json:"id"`
	DriverID        string           `json:"driverId"`
	Name            string           `json:"name"`
	DriverName      string           `json:"driverName"`
	BaseLocation    *CoordinatesSeed `json:"baseLocation"`
	MaxCapacity     *float64         `json:"maxCapacity"`
	VehicleCapacity *float64         `json:"vehicleCapacity"`
	Active          *bool            `json:"active"`
}

func (c *CoordinatesSeed) toDomain() *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

// Report converts a seed row to a raw report. Missing status means open.
func (s ReportSeed) Report() domain.Report {
	status := strings.TrimSpace(s.Status)
	if status == "" {
		status = domain.StatusOpen
	}
	return domain.Report{
		ID:          strings.TrimSpace(s.ID),
		Coords:      s.Coords.toDomain(),
		Status:      status,
		Priority:    s.Priority,
		Description: s.Description,
		Urgent:      s.Urgent,
	}
}

// DriverRecord converts a seed row to a raw driver. Missing active means active.
func (s DriverSeed) DriverRecord() domain.DriverRecord {
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	return domain.DriverRecord{
		ID:              strings.TrimSpace(s.ID),
		DriverID:        strings.TrimSpace(s.DriverID),
		Name:            s.Name,
		DriverName:      s.DriverName,
		BaseLocation:    s.BaseLocation.toDomain(),
		MaxCapacity:     s.MaxCapacity,
		VehicleCapacity: s.VehicleCapacity,
		Active:          active,
	}
}

// LoadReportSeeds reads raw reports from a JSON file.
func LoadReportSeeds(jsonPath string) ([]domain.Report, error) {
	var data []ReportSeed
	if err := readJSON(jsonPath, &data); err != nil {
		return nil, fmt.Errorf("load report seeds: %w", err)
	}

	out := make([]domain.Report, 0, len(data))
	for i, item := range data {
		r := item.Report()
		if r.ID == "" {
			return nil, fmt.Errorf("load report seeds: item at index %d: id cannot be empty", i+1)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadDriverSeeds reads raw driver profiles from a JSON file.
func LoadDriverSeeds(jsonPath string) ([]domain.DriverRecord, error) {
	var data []DriverSeed
	if err := readJSON(jsonPath, &data); err != nil {
		return nil, fmt.Errorf("load driver seeds: %w", err)
	}

	out := make([]domain.DriverRecord, 0, len(data))
	for i, item := range data {
		d := item.DriverRecord()
		if d.ID == "" {
			d.ID = d.DriverID
		}
		if d.ID == "" {
			return nil, fmt.Errorf("load driver seeds: item at index %d: id cannot be empty", i+1)
		}
		out = append(out, d)
	}
	return out, nil
}

func readJSON(path string, v any) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		return fmt.Errorf("parse json %q: %w", path, err)
	}
	return nil
}

// Populate the reports and drivers tables from JSON seed files.
// Existing rows with the same id are overwritten.
func SeedFromJSON(ctx context.Context, db *sql.DB, reportsPath, driversPath string) error {
	reports, err := LoadReportSeeds(reportsPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	drivers, err := LoadDriverSeeds(driversPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	reportQuery := `
	INSERT INTO reports (id, lat, lng, status, priority, description, urgent)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		status = EXCLUDED.status,
		priority = EXCLUDED.priority,
		description = EXCLUDED.description,
		urgent = EXCLUDED.urgent,
		updated_at = now();
	`
	reportStmt, err := tx.PrepareContext(ctx, reportQuery)
	if err != nil {
		return fmt.Errorf("seed reports: prepare insert: %w", err)
	}
	defer reportStmt.Close()

	for _, r := range reports {
		lat, lng := nullCoords(r.Coords)
		if _, err := reportStmt.ExecContext(ctx, r.ID, lat, lng, r.Status, r.Priority, r.Description, r.Urgent); err != nil {
			return fmt.Errorf("seed reports: insert id=%s: %w", r.ID, err)
		}
	}

	driverQuery := `
	INSERT INTO drivers (id, driver_id, name, driver_name, base_lat, base_lng, max_capacity, vehicle_capacity, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		driver_id = EXCLUDED.driver_id,
		name = EXCLUDED.name,
		driver_name = EXCLUDED.driver_name,
		base_lat = EXCLUDED.base_lat,
		base_lng = EXCLUDED.base_lng,
		max_capacity = EXCLUDED.max_capacity,
		vehicle_capacity = EXCLUDED.vehicle_capacity,
		active = EXCLUDED.active;
	`
	driverStmt, err := tx.PrepareContext(ctx, driverQuery)
	if err != nil {
		return fmt.Errorf("seed drivers: prepare insert: %w", err)
	}
	defer driverStmt.Close()

	for _, d := range drivers {
		lat, lng := nullCoords(d.BaseLocation)
		if _, err := driverStmt.ExecContext(ctx,
			d.ID, d.DriverID, d.Name, d.DriverName, lat, lng,
			nullFloat(d.MaxCapacity), nullFloat(d.VehicleCapacity), d.Active,
		); err != nil {
			return fmt.Errorf("seed drivers: insert id=%s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func nullCoords(c *domain.Coordinates) (sql.NullFloat64, sql.NullFloat64) {
	if c == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: c.Lat, Valid: true}, sql.NullFloat64{Float64: c.Lng, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func coordsFrom(lat, lng sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}

func floatFrom(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
