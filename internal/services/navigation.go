package services

import (
	"strings"
	"waste-route-service/internal/domain"
)

const (
	mapsDirBase    = "https://www.google.com/maps/dir/"
	mapsDirSuffix  = "/data=!3m1!4b1!4m2!4m1!3e0"
	mapsStopPrefix = "https://www.google.com/maps/dir/?api=1&destination="
)

// Waypoints returns the base followed by every stop in sequence order.
func Waypoints(route domain.DriverRoute, base domain.Coordinates) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(route.Stops)+1)
	out = append(out, base)
	for _, s := range route.Stops {
		out = append(out, s.Coordinates)
	}
	return out
}

// NavigationURL builds a multi-waypoint driving link from base through every stop.
// A route without stops yields an empty string.
func NavigationURL(route domain.DriverRoute, base domain.Coordinates) string {
	if len(route.Stops) == 0 {
		return ""
	}

	parts := make([]string, 0, len(route.Stops)+1)
	for _, c := range Waypoints(route, base) {
		parts = append(parts, c.String())
	}
	return mapsDirBase + strings.Join(parts, "/") + mapsDirSuffix
}

// StopURL links to a single destination.
func StopURL(c domain.Coordinates) string {
	return mapsStopPrefix + c.String()
}
