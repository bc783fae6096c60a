package domain

// Represents a single geotagged waste-collection request.
// A PickupPoint is built from an open report at optimization time and is
// never mutated by the optimizer.
type PickupPoint struct {
	ID          string
	Coordinates Coordinates
	Priority    Priority
	Volume      float64
	Description string
}
