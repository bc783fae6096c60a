package services

import (
	"math"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/geo"
)

const distanceTieMeters = 1e-6

// NearestNeighborRoute sequences a driver's assigned points with a greedy
// nearest-neighbor walk starting at the driver's base.
//
// Each step moves to the closest remaining point by Haversine distance. Equal
// distances go to the higher priority tier, then to the earlier input position,
// so the walk is deterministic even when every point shares one location.
// The route does not return to base.
func NearestNeighborRoute(driver domain.Driver, points []indexedPoint, opts OptimizeOptions) domain.DriverRoute {
	route := emptyRoute(driver)
	if len(points) == 0 {
		return route
	}

	remaining := make([]indexedPoint, len(points))
	copy(remaining, points)

	current := driver.BaseLocation
	elapsed := 0.0
	stops := make([]domain.RouteStop, 0, len(points))

	for len(remaining) > 0 {
		bestIdx := -1
		bestDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, p := range remaining {
			d := geo.Distance(current, p.Coordinates)
			if bestIdx < 0 || d < bestDist-distanceTieMeters ||
				(math.Abs(d-bestDist) <= distanceTieMeters && before(p, remaining[bestIdx])) {
				bestIdx = i
				bestDist = d
			}
		}

		next := remaining[bestIdx]
		km := bestDist / 1000
		travel := km / opts.AverageSpeedKmh * 60

		if len(stops) > 0 {
			elapsed += opts.ServiceMinutesPerStop
		}
		elapsed += travel

		stops = append(stops, domain.RouteStop{
			SequenceNumber:                len(stops) + 1,
			PointID:                       next.ID,
			Coordinates:                   next.Coordinates,
			Priority:                      next.Priority,
			Volume:                        next.Volume,
			Description:                   next.Description,
			DistanceFromPreviousKm:        km,
			TravelTimeMinutesFromPrevious: travel,
			ArrivalMinutes:                elapsed,
			NavigationURL:                 StopURL(next.Coordinates),
		})

		route.TotalDistanceKm += km
		route.TotalVolume += next.Volume
		route.PriorityBreakdown.Add(next.Priority)

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		current = next.Coordinates
	}

	route.Stops = stops
	route.TotalStops = len(stops)
	route.EstimatedTimeMinutes = elapsed + opts.ServiceMinutesPerStop
	route.CapacityUtilizationPercent = route.TotalVolume * 100 / driver.MaxCapacity
	return route
}

// before reports whether a sorts ahead of b on ties: priority tier, then input order.
func before(a, b indexedPoint) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.index < b.index
}
