package domain

import "fmt"

// Represents a collection driver and the vehicle they operate.
type Driver struct {
	ID           string
	Name         string
	BaseLocation Coordinates
	MaxCapacity  float64
}

const capacityEpsilon = 1e-9

// DriverLoad is the mutable per-run state of one driver during assignment.
// End is where the driver's route currently ends: the base until a point is loaded.
type DriverLoad struct {
	Driver Driver
	Volume float64
	End    Coordinates
}

func NewDriverLoad(d Driver) *DriverLoad {
	return &DriverLoad{
		Driver: d,
		End:    d.BaseLocation,
	}
}

// Fits reports whether the point's volume still fits in the remaining capacity.
func (l *DriverLoad) Fits(p PickupPoint) bool {
	return l.Volume+p.Volume <= l.Driver.MaxCapacity+capacityEpsilon
}

// Load a single pickup point onto the driver's route.
func (l *DriverLoad) Load(p PickupPoint) error {
	if !l.Fits(p) {
		return fmt.Errorf(
			"load driver: driver %s cannot take point %s (load=%.2f volume=%.2f capacity=%.2f): %w",
			l.Driver.ID, p.ID, l.Volume, p.Volume, l.Driver.MaxCapacity, ErrCapacityExceeded,
		)
	}
	l.Volume += p.Volume
	l.End = p.Coordinates
	return nil
}

// Ratio returns the used share of capacity in [0, 1].
func (l *DriverLoad) Ratio() float64 {
	if l.Driver.MaxCapacity <= 0 {
		return 1
	}
	return l.Volume / l.Driver.MaxCapacity
}
