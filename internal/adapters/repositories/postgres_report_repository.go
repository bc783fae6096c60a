package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the ReportRepository and AssignmentWriter ports.
type PostgresReportRepository struct{ DB *sql.DB }

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

// Return all reports awaiting collection.
func (p *PostgresReportRepository) ListOpenReports(ctx context.Context) (_ []domain.Report, err error) {
	defer obs.Time(ctx, "reports.ListOpenReports")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	query := `
	SELECT
		id,
		lat,
		lng,
		status,
		priority,
		description,
		urgent
	FROM reports
	WHERE lower(status) IN ('open', 'reported', 'pending')
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open reports: query reports table: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0, 64)
	for rows.Next() {
		var r domain.Report
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&r.ID, &lat, &lng, &r.Status, &r.Priority, &r.Description, &r.Urgent); err != nil {
			return nil, fmt.Errorf("list open reports: scan row: %w", err)
		}
		r.Coords = coordsFrom(lat, lng)
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open reports: row iteration: %w", err)
	}

	return reports, nil
}

// Overwrite a report's assignment fields. Re-applying the same update is a no-op.
func (p *PostgresReportRepository) ApplyAssignment(ctx context.Context, u domain.AssignmentUpdate) (err error) {
	defer obs.Time(ctx, "reports.ApplyAssignment")(&err)

	if p.DB == nil {
		return errors.New("postgres report repository: DB is nil")
	}

	query := `
	UPDATE reports SET
		status = $2,
		driver_id = $3,
		assigned_at = $4,
		route_order = $5,
		total_stops = $6,
		estimated_pickup_at = $7,
		updated_at = now()
	WHERE id = $1;
	`
	res, err := p.DB.ExecContext(ctx, query,
		u.ReportID, u.Status, u.DriverID, u.AssignedAt, u.RouteOrder, u.TotalStops, u.EstimatedPickupAt,
	)
	if err != nil {
		return fmt.Errorf("apply assignment: update report %s: %w", u.ReportID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply assignment: rows affected for %s: %w", u.ReportID, err)
	}
	if n == 0 {
		return fmt.Errorf("apply assignment: report %q: %w", u.ReportID, domain.ErrNotFound)
	}

	return nil
}
