package services

import (
	"fmt"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/geo"
)

// assignPoints hands each point, in the given order, to the lowest-cost driver
// that can still carry it.
//
// For a point with urgency u (1 red, 0.5 yellow, 0 green) and a driver with
// load ratio r whose route currently ends a normalized distance n away:
//
//	cost = (Wd + Wp*u)*n + Wb*(1-u)*r
//
// Urgent points therefore chase the nearest driver; routine ones lean towards
// the less-loaded driver. Equal costs go to the driver listed first. Points no
// driver can carry are returned as unassigned. An error means a load rejected a
// point it reported room for.
func assignPoints(
	loads []*domain.DriverLoad,
	ordered []indexedPoint,
	w domain.Weights,
) (assigned [][]indexedPoint, unassigned []indexedPoint, err error) {
	assigned = make([][]indexedPoint, len(loads))
	dists := make([]float64, len(loads))

	for _, p := range ordered {
		maxDist := 0.0
		eligible := false
		for i, l := range loads {
			dists[i] = -1
			if !l.Fits(p.PickupPoint) {
				continue
			}
			eligible = true
			dists[i] = geo.Distance(l.End, p.Coordinates)
			if dists[i] > maxDist {
				maxDist = dists[i]
			}
		}

		if !eligible {
			unassigned = append(unassigned, p)
			continue
		}

		u := p.Priority.Urgency()
		best := -1
		bestCost := 0.0
		for i, l := range loads {
			if dists[i] < 0 {
				continue
			}
			norm := 0.0
			if maxDist > 0 {
				norm = dists[i] / maxDist
			}
			cost := (w.Distance+w.Priority*u)*norm + w.Balance*(1-u)*l.Ratio()
			if best < 0 || cost < bestCost-costEpsilon {
				best = i
				bestCost = cost
			}
		}

		if err := loads[best].Load(p.PickupPoint); err != nil {
			return nil, nil, fmt.Errorf("assign points: %w", err)
		}
		assigned[best] = append(assigned[best], p)
	}

	return assigned, unassigned, nil
}
