package domain

import (
	"strings"
	"time"
)

// Report statuses.
const (
	StatusOpen     = "open"
	StatusReported = "reported"
	StatusPending  = "pending"
	StatusAssigned = "assigned"
)

// IsOpenStatus reports whether a report in this status awaits collection.
func IsOpenStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusOpen, StatusReported, StatusPending:
		return true
	}
	return false
}

// Report is a raw citizen report as read from storage.
// Coords is nil when the report was filed without a location.
type Report struct {
	ID          string
	Coords      *Coordinates
	Status      string
	Priority    string
	Description string
	Urgent      bool
}

// DriverRecord is a raw driver profile as read from storage.
// Older profiles carry DriverID/DriverName/VehicleCapacity instead of
// ID/Name/MaxCapacity.
type DriverRecord struct {
	ID              string
	DriverID        string
	Name            string
	DriverName      string
	BaseLocation    *Coordinates
	MaxCapacity     *float64
	VehicleCapacity *float64
	Active          bool
}

// AssignmentUpdate is the write applied to one report when its point is assigned.
type AssignmentUpdate struct {
	ReportID          string
	DriverID          string
	Status            string
	AssignedAt        time.Time
	RouteOrder        int
	TotalStops        int
	EstimatedPickupAt time.Time
}
