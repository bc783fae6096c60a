// Package geo holds great-circle helpers over latitude/longitude pairs.
// Every function is pure; distances ignore road topology.
package geo

import (
	"fmt"
	"math"
	"waste-route-service/internal/domain"
)

const EarthRadiusMeters = 6371000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)

	a := sLat*sLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sLon*sLon
	// Rounding can push a a hair outside [0,1] for antipodal points.
	a = math.Min(1, math.Max(0, a))
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Distance returns meters between a and b.
func Distance(a, b domain.Coordinates) float64 {
	return HaversineMeters(a.Lat, a.Lng, b.Lat, b.Lng)
}

func DistanceKm(a, b domain.Coordinates) float64 {
	return Distance(a, b) / 1000
}

// Bearing returns the initial compass bearing from point 1 to point 2 in [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRad(lat1)
	phi2 := toRad(lat2)
	dLon := toRad(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	deg := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []domain.Coordinates) (domain.Coordinates, error) {
	if len(points) == 0 {
		return domain.Coordinates{}, fmt.Errorf("centroid: %w", domain.ErrEmptyInput)
	}

	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return domain.Coordinates{Lat: lat / n, Lng: lng / n}, nil
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	North float64
	South float64
	East  float64
	West  float64
}

// BoundingBox returns the min/max extent of the points.
// ok is false, and the box all zero, for an empty list.
func BoundingBox(points []domain.Coordinates) (box Box, ok bool) {
	if len(points) == 0 {
		return Box{}, false
	}

	box = Box{North: points[0].Lat, South: points[0].Lat, East: points[0].Lng, West: points[0].Lng}
	for _, p := range points[1:] {
		box.North = math.Max(box.North, p.Lat)
		box.South = math.Min(box.South, p.Lat)
		box.East = math.Max(box.East, p.Lng)
		box.West = math.Min(box.West, p.Lng)
	}
	return box, true
}

// Contains reports whether c lies inside the box, edges included.
func (b Box) Contains(c domain.Coordinates) bool {
	return c.Lat <= b.North && c.Lat >= b.South && c.Lng <= b.East && c.Lng >= b.West
}
