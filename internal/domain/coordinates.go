package domain

import (
	"fmt"
	"math"
)

// Geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether both fields are finite and within
// lat ∈ [-90, 90], lng ∈ [-180, 180]. Out-of-range values are never clamped.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// String formats the pair as "lat,lng", the form external map links expect.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
