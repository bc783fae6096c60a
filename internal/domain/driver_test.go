package domain

import (
	"errors"
	"testing"
)

func TestDriverLoad(t *testing.T) {
	// build test data
	base := Coordinates{Lat: 28.61, Lng: 77.205}
	p1 := PickupPoint{ID: "r1", Coordinates: Coordinates{Lat: 28.62, Lng: 77.21}, Volume: 2}
	p2 := PickupPoint{ID: "r2", Coordinates: Coordinates{Lat: 28.63, Lng: 77.22}, Volume: 3}
	p3 := PickupPoint{ID: "r3", Coordinates: Coordinates{Lat: 28.64, Lng: 77.23}, Volume: 1}

	load := NewDriverLoad(Driver{ID: "d1", BaseLocation: base, MaxCapacity: 5})
	if load.End != base {
		t.Fatalf("End = %v, want base %v", load.End, base)
	}

	// call the method under test
	for _, p := range []PickupPoint{p1, p2} {
		if err := load.Load(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// verify behavior
	if load.Volume != 5 {
		t.Fatalf("Volume = %v, want 5", load.Volume)
	}
	if load.End != p2.Coordinates {
		t.Fatalf("End = %v, want %v", load.End, p2.Coordinates)
	}
	if load.Ratio() != 1 {
		t.Fatalf("Ratio = %v, want 1", load.Ratio())
	}
	if load.Fits(p3) {
		t.Fatalf("full driver should not fit another point")
	}

	err := load.Load(p3)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Load err = %v, want ErrCapacityExceeded", err)
	}
	if load.Volume != 5 || load.End != p2.Coordinates {
		t.Fatalf("rejected point must not change the load: %+v", load)
	}
}

func TestDriverLoadFitsFractionalVolumes(t *testing.T) {
	load := NewDriverLoad(Driver{ID: "d1", MaxCapacity: 0.3})
	if err := load.Load(PickupPoint{ID: "a", Volume: 0.1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := load.Load(PickupPoint{ID: "b", Volume: 0.2}); err != nil {
		t.Fatalf("0.1+0.2 should fit capacity 0.3: %v", err)
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"origin", Coordinates{}, true},
		{"corners", Coordinates{Lat: -90, Lng: 180}, true},
		{"lat too high", Coordinates{Lat: 90.0001, Lng: 0}, false},
		{"lng too low", Coordinates{Lat: 0, Lng: -180.5}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Fatalf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWeightsResolve(t *testing.T) {
	w, err := Weights{}.Resolve()
	if err != nil || w != DefaultWeights {
		t.Fatalf("zero weights = %+v, %v; want defaults", w, err)
	}

	if _, err := (Weights{Priority: 0.5, Distance: 0.5, Balance: 0.5}).Resolve(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("sum 1.5: err = %v, want ErrInvalidWeights", err)
	}
	if _, err := (Weights{Priority: -0.1, Distance: 0.6, Balance: 0.5}).Resolve(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("negative weight: err = %v, want ErrInvalidWeights", err)
	}
	if _, err := (Weights{Priority: 0.5, Distance: 0.3, Balance: 0.205}).Resolve(); err != nil {
		t.Fatalf("sum within tolerance should pass: %v", err)
	}
}

func TestPriorityParse(t *testing.T) {
	if p, ok := ParsePriority(" RED "); !ok || p != PriorityRed {
		t.Fatalf("ParsePriority(RED) = %q, %v", p, ok)
	}
	if p, ok := ParsePriority("urgent"); ok || p != PriorityGreen {
		t.Fatalf("ParsePriority(urgent) = %q, %v; want green, false", p, ok)
	}
	if PriorityRed.Rank() >= PriorityYellow.Rank() || PriorityYellow.Rank() >= PriorityGreen.Rank() {
		t.Fatalf("rank order broken")
	}
}
