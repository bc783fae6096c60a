package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the DriverRepository port.
type PostgresDriverRepository struct{ DB *sql.DB }

func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

// Return all drivers flagged active.
func (p *PostgresDriverRepository) ListActiveDrivers(ctx context.Context) (_ []domain.DriverRecord, err error) {
	defer obs.Time(ctx, "drivers.ListActiveDrivers")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres driver repository: DB is nil")
	}

	query := `
	SELECT
		id,
		driver_id,
		name,
		driver_name,
		base_lat,
		base_lng,
		max_capacity,
		vehicle_capacity,
		active
	FROM drivers
	WHERE active
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.DriverRecord, 0, 16)
	for rows.Next() {
		var d domain.DriverRecord
		var lat, lng, maxCap, vehicleCap sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.DriverID, &d.Name, &d.DriverName, &lat, &lng, &maxCap, &vehicleCap, &d.Active); err != nil {
			return nil, fmt.Errorf("list active drivers: scan row: %w", err)
		}
		d.BaseLocation = coordsFrom(lat, lng)
		d.MaxCapacity = floatFrom(maxCap)
		d.VehicleCapacity = floatFrom(vehicleCap)
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active drivers: row iteration: %w", err)
	}

	return drivers, nil
}
