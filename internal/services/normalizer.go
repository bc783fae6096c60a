package services

import (
	"log"
	"math"
	"strings"
	"waste-route-service/internal/domain"
)

const (
	baseVolume            = 2.0
	DefaultDriverCapacity = 50.0
	DefaultDriverName     = "Unknown Driver"
	highVolumeMultiplier  = 1.5
	lowVolumeMultiplier   = 0.75
	urgentMarker          = "urgent"
	moderateMarker        = "moderate"
)

var (
	highVolumeKeywords   = []string{"overflowing", "full", "large", "market", "commercial", "school"}
	mediumVolumeKeywords = []string{"medium", "normal", "regular", "residential"}
)

// EstimateVolume derives cubic meters of waste from a free-text description.
// High-volume keywords are checked before medium ones; no match gives the low tier.
func EstimateVolume(description string) float64 {
	d := strings.ToLower(description)
	switch {
	case containsAny(d, highVolumeKeywords):
		return baseVolume * highVolumeMultiplier
	case containsAny(d, mediumVolumeKeywords):
		return baseVolume
	default:
		return baseVolume * lowVolumeMultiplier
	}
}

// ResolvePriority uses raw verbatim when it names a tier, otherwise infers one
// from the urgent flag and the description.
func ResolvePriority(raw, description string, urgent bool) domain.Priority {
	if p, ok := domain.ParsePriority(raw); ok {
		return p
	}

	d := strings.ToLower(description)
	switch {
	case urgent || strings.Contains(d, urgentMarker):
		return domain.PriorityRed
	case strings.Contains(d, moderateMarker):
		return domain.PriorityYellow
	default:
		return domain.PriorityGreen
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Normalizer turns raw storage records into optimizer input.
// Records that cannot take part in a run are logged and skipped.
type Normalizer struct {
	DefaultCapacity float64
}

func NewNormalizer(defaultCapacity float64) *Normalizer {
	if defaultCapacity <= 0 || math.IsNaN(defaultCapacity) || math.IsInf(defaultCapacity, 0) {
		defaultCapacity = DefaultDriverCapacity
	}
	return &Normalizer{DefaultCapacity: defaultCapacity}
}

// NormalizePickupPoints converts reports using the default normalizer.
func NormalizePickupPoints(reports []domain.Report) []domain.PickupPoint {
	return NewNormalizer(DefaultDriverCapacity).PickupPoints(reports)
}

// NormalizeDrivers converts driver records using the default capacity.
func NormalizeDrivers(records []domain.DriverRecord) []domain.Driver {
	return NewNormalizer(DefaultDriverCapacity).Drivers(records)
}

// PickupPoints keeps open reports with valid coordinates, in input order.
// Later duplicates of an id are dropped.
func (n *Normalizer) PickupPoints(reports []domain.Report) []domain.PickupPoint {
	points := make([]domain.PickupPoint, 0, len(reports))
	seen := make(map[string]struct{}, len(reports))

	for _, r := range reports {
		id := strings.TrimSpace(r.ID)
		switch {
		case id == "":
			log.Printf("normalize report: skipped reason=missing_id")
			continue
		case !domain.IsOpenStatus(r.Status):
			continue
		case r.Coords == nil:
			log.Printf("normalize report: skipped id=%s reason=missing_coordinates", id)
			continue
		case !r.Coords.Valid():
			log.Printf("normalize report: skipped id=%s reason=invalid_coordinates lat=%v lng=%v", id, r.Coords.Lat, r.Coords.Lng)
			continue
		}
		if _, dup := seen[id]; dup {
			log.Printf("normalize report: skipped id=%s reason=duplicate_id", id)
			continue
		}
		seen[id] = struct{}{}

		points = append(points, domain.PickupPoint{
			ID:          id,
			Coordinates: *r.Coords,
			Priority:    ResolvePriority(r.Priority, r.Description, r.Urgent),
			Volume:      EstimateVolume(r.Description),
			Description: r.Description,
		})
	}

	return points
}

// Drivers keeps active drivers with a valid base and a positive capacity.
func (n *Normalizer) Drivers(records []domain.DriverRecord) []domain.Driver {
	drivers := make([]domain.Driver, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		id := firstNonEmpty(r.DriverID, r.ID)
		switch {
		case id == "":
			log.Printf("normalize driver: skipped reason=missing_id")
			continue
		case !r.Active:
			log.Printf("normalize driver: skipped id=%s reason=inactive", id)
			continue
		case r.BaseLocation == nil || !r.BaseLocation.Valid():
			log.Printf("normalize driver: skipped id=%s reason=invalid_base_location", id)
			continue
		}

		capacity := n.capacityOf(r)
		if capacity <= 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
			log.Printf("normalize driver: skipped id=%s reason=invalid_capacity capacity=%v", id, capacity)
			continue
		}
		if _, dup := seen[id]; dup {
			log.Printf("normalize driver: skipped id=%s reason=duplicate_id", id)
			continue
		}
		seen[id] = struct{}{}

		name := firstNonEmpty(r.Name, r.DriverName)
		if name == "" {
			name = DefaultDriverName
		}

		drivers = append(drivers, domain.Driver{
			ID:           id,
			Name:         name,
			BaseLocation: *r.BaseLocation,
			MaxCapacity:  capacity,
		})
	}

	return drivers
}

// An explicit capacity wins even when it is invalid; the caller rejects it.
func (n *Normalizer) capacityOf(r domain.DriverRecord) float64 {
	if r.MaxCapacity != nil {
		return *r.MaxCapacity
	}
	if r.VehicleCapacity != nil {
		return *r.VehicleCapacity
	}
	return n.DefaultCapacity
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
