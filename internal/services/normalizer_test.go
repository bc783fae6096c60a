package services

import (
	"reflect"
	"testing"
	"waste-route-service/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestEstimateVolume(t *testing.T) {
	tests := []struct {
		description string
		want        float64
	}{
		{"Overflowing garbage bins near market", 3.0},
		{"SCHOOL canteen waste", 3.0},
		{"medium residential waste", 2.0},
		{"regular pickup", 2.0},
		{"some bags by the road", 1.5},
		{"", 1.5},
		// high keywords win over medium ones
		{"large residential pile", 3.0},
	}

	for _, tt := range tests {
		if got := EstimateVolume(tt.description); got != tt.want {
			t.Fatalf("EstimateVolume(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		raw, description string
		urgent           bool
		want             domain.Priority
	}{
		{"yellow", "URGENT spill", false, domain.PriorityYellow},
		{"", "Urgent: broken glass", false, domain.PriorityRed},
		{"high", "", true, domain.PriorityRed},
		{"", "moderate smell", false, domain.PriorityYellow},
		{"unknown", "bags", false, domain.PriorityGreen},
		{"", "", false, domain.PriorityGreen},
	}

	for _, tt := range tests {
		if got := ResolvePriority(tt.raw, tt.description, tt.urgent); got != tt.want {
			t.Fatalf("ResolvePriority(%q, %q, %v) = %q, want %q", tt.raw, tt.description, tt.urgent, got, tt.want)
		}
	}
}

func TestNormalizePickupPointsFiltersRecords(t *testing.T) {
	reports := []domain.Report{
		{ID: "r1", Coords: &domain.Coordinates{Lat: 28.61, Lng: 77.20}, Status: "open", Description: "overflowing bin"},
		{ID: "r2", Coords: nil, Status: "open"},
		{ID: "r3", Coords: &domain.Coordinates{Lat: 91, Lng: 0}, Status: "open"},
		{ID: "r4", Coords: &domain.Coordinates{Lat: 28.62, Lng: 77.21}, Status: "collected"},
		{ID: "r5", Coords: &domain.Coordinates{Lat: 28.63, Lng: 77.22}, Status: "Pending", Priority: "red"},
		{ID: "r1", Coords: &domain.Coordinates{Lat: 28.64, Lng: 77.23}, Status: "open"},
		{ID: "r6", Coords: &domain.Coordinates{Lat: 28.65, Lng: 77.24}, Status: "reported", Urgent: true},
	}

	points := NormalizePickupPoints(reports)

	wantIDs := []string{"r1", "r5", "r6"}
	if len(points) != len(wantIDs) {
		t.Fatalf("got %d points, want %d: %+v", len(points), len(wantIDs), points)
	}
	for i, id := range wantIDs {
		if points[i].ID != id {
			t.Fatalf("points[%d].ID = %q, want %q", i, points[i].ID, id)
		}
	}

	if points[0].Volume != 3.0 || points[0].Priority != domain.PriorityGreen {
		t.Fatalf("r1 = %+v, want volume 3 green", points[0])
	}
	if points[1].Priority != domain.PriorityRed || points[1].Volume != 1.5 {
		t.Fatalf("r5 = %+v, want red volume 1.5", points[1])
	}
	if points[2].Priority != domain.PriorityRed {
		t.Fatalf("r6 urgent flag should give red, got %q", points[2].Priority)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	reports := []domain.Report{
		{ID: "r1", Coords: &domain.Coordinates{Lat: 28.61, Lng: 77.20}, Status: "open", Description: "moderate commercial waste"},
	}
	records := []domain.DriverRecord{
		{DriverID: "d1", BaseLocation: &domain.Coordinates{Lat: 28.6, Lng: 77.2}, Active: true},
	}

	if a, b := NormalizePickupPoints(reports), NormalizePickupPoints(reports); !reflect.DeepEqual(a, b) {
		t.Fatalf("points differ between runs: %+v vs %+v", a, b)
	}
	if a, b := NormalizeDrivers(records), NormalizeDrivers(records); !reflect.DeepEqual(a, b) {
		t.Fatalf("drivers differ between runs: %+v vs %+v", a, b)
	}
}

func TestNormalizeDrivers(t *testing.T) {
	base := &domain.Coordinates{Lat: 28.6, Lng: 77.2}
	records := []domain.DriverRecord{
		{ID: "doc1", DriverID: "d1", DriverName: "Asha", BaseLocation: base, VehicleCapacity: ptr(30.0), Active: true},
		{ID: "d2", Name: "Ravi", BaseLocation: base, MaxCapacity: ptr(20.0), VehicleCapacity: ptr(99.0), Active: true},
		{ID: "d3", BaseLocation: base, Active: true},
		{ID: "d4", BaseLocation: base, Active: false},
		{ID: "d5", BaseLocation: nil, Active: true},
		{ID: "d6", BaseLocation: &domain.Coordinates{Lat: 0, Lng: 200}, Active: true},
		{ID: "d7", BaseLocation: base, MaxCapacity: ptr(0.0), Active: true},
	}

	drivers := NewNormalizer(40).Drivers(records)

	want := []domain.Driver{
		{ID: "d1", Name: "Asha", BaseLocation: *base, MaxCapacity: 30},
		{ID: "d2", Name: "Ravi", BaseLocation: *base, MaxCapacity: 20},
		{ID: "d3", Name: DefaultDriverName, BaseLocation: *base, MaxCapacity: 40},
	}
	if !reflect.DeepEqual(drivers, want) {
		t.Fatalf("drivers = %+v, want %+v", drivers, want)
	}

	if got := NormalizeDrivers(records[2:3]); got[0].MaxCapacity != DefaultDriverCapacity {
		t.Fatalf("default capacity = %v, want %v", got[0].MaxCapacity, DefaultDriverCapacity)
	}
}
