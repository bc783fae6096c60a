package services

import (
	"fmt"
	"math"
	"slices"
	"waste-route-service/internal/domain"
)

const (
	DefaultAverageSpeedKmh = 25.0
	costEpsilon            = 1e-9
)

// OptimizeOptions tunes a single optimization run. Zero fields take defaults.
type OptimizeOptions struct {
	Weights               domain.Weights
	AverageSpeedKmh       float64
	ServiceMinutesPerStop float64
}

func (o OptimizeOptions) resolve() (OptimizeOptions, error) {
	w, err := o.Weights.Resolve()
	if err != nil {
		return OptimizeOptions{}, err
	}
	o.Weights = w

	if math.IsNaN(o.AverageSpeedKmh) || math.IsInf(o.AverageSpeedKmh, 0) || o.AverageSpeedKmh < 0 {
		return OptimizeOptions{}, fmt.Errorf("average speed %v: %w", o.AverageSpeedKmh, domain.ErrInvalidOptions)
	}
	if o.AverageSpeedKmh == 0 {
		o.AverageSpeedKmh = DefaultAverageSpeedKmh
	}

	if math.IsNaN(o.ServiceMinutesPerStop) || math.IsInf(o.ServiceMinutesPerStop, 0) || o.ServiceMinutesPerStop < 0 {
		return OptimizeOptions{}, fmt.Errorf("service minutes per stop %v: %w", o.ServiceMinutesPerStop, domain.ErrInvalidOptions)
	}
	return o, nil
}

// indexedPoint keeps a point's position in the caller's input for tie-breaks.
type indexedPoint struct {
	domain.PickupPoint
	index int
}

// Optimize assigns pickup points to drivers and sequences each driver's route.
//
// Points are processed red, then yellow, then green, each going to the cheapest
// driver that still has room. Each driver's points are then ordered by a
// nearest-neighbor walk from the driver's base. The call reads its inputs only
// and is safe to run concurrently with other calls.
func Optimize(points []domain.PickupPoint, drivers []domain.Driver, opts OptimizeOptions) (domain.OptimizationResult, error) {
	if len(drivers) == 0 {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w", domain.ErrNoDrivers)
	}

	opts, err := opts.resolve()
	if err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w", err)
	}
	if err := validateDrivers(drivers); err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w", err)
	}
	if err := validatePoints(points); err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w", err)
	}

	if len(points) == 0 {
		return domain.OptimizationResult{
			Routes:     map[string]domain.DriverRoute{},
			Unassigned: []string{},
			Summary:    domain.Summary{DriversAvailable: len(drivers)},
		}, nil
	}

	ordered := orderByPriority(points)

	loads := make([]*domain.DriverLoad, 0, len(drivers))
	for _, d := range drivers {
		loads = append(loads, domain.NewDriverLoad(d))
	}

	assigned, unassigned, err := assignPoints(loads, ordered, opts.Weights)
	if err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w", err)
	}

	routes := make(map[string]domain.DriverRoute, len(loads))
	for i, l := range loads {
		if len(assigned[i]) == 0 {
			continue
		}
		routes[l.Driver.ID] = NearestNeighborRoute(l.Driver, assigned[i], opts)
	}

	unassignedIDs := make([]string, 0, len(unassigned))
	for _, p := range unassigned {
		unassignedIDs = append(unassignedIDs, p.ID)
	}

	return domain.OptimizationResult{
		Routes:     routes,
		Unassigned: unassignedIDs,
		Summary:    summarize(points, drivers, routes, opts),
	}, nil
}

// OptimizeForDriver runs the full multi-driver assignment and returns only the
// target driver's route. A known driver with no stops gets an empty route.
func OptimizeForDriver(points []domain.PickupPoint, drivers []domain.Driver, targetDriverID string, opts OptimizeOptions) (domain.DriverRoute, error) {
	if len(drivers) == 0 {
		return domain.DriverRoute{}, fmt.Errorf("optimize for driver %q: %w", targetDriverID, domain.ErrNoDrivers)
	}

	idx := slices.IndexFunc(drivers, func(d domain.Driver) bool { return d.ID == targetDriverID })
	if idx < 0 {
		return domain.DriverRoute{}, fmt.Errorf("optimize for driver %q: %w", targetDriverID, domain.ErrDriverNotFound)
	}

	result, err := Optimize(points, drivers, opts)
	if err != nil {
		return domain.DriverRoute{}, fmt.Errorf("optimize for driver %q: %w", targetDriverID, err)
	}

	if route, ok := result.Routes[targetDriverID]; ok {
		return route, nil
	}
	return emptyRoute(drivers[idx]), nil
}

func emptyRoute(d domain.Driver) domain.DriverRoute {
	return domain.DriverRoute{
		DriverID:     d.ID,
		DriverName:   d.Name,
		BaseLocation: d.BaseLocation,
		MaxCapacity:  d.MaxCapacity,
		Stops:        []domain.RouteStop{},
	}
}

// orderByPriority returns red, then yellow, then green points, keeping input
// order within a tier.
func orderByPriority(points []domain.PickupPoint) []indexedPoint {
	ordered := make([]indexedPoint, len(points))
	for i, p := range points {
		ordered[i] = indexedPoint{PickupPoint: p, index: i}
	}

	slices.SortStableFunc(ordered, func(a, b indexedPoint) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return ordered
}

func validateDrivers(drivers []domain.Driver) error {
	seen := make(map[string]struct{}, len(drivers))
	for _, d := range drivers {
		if d.ID == "" {
			return fmt.Errorf("driver with empty id: %w", domain.ErrEmptyInput)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("driver %q: %w", d.ID, domain.ErrDuplicateID)
		}
		seen[d.ID] = struct{}{}

		if !d.BaseLocation.Valid() {
			return fmt.Errorf("driver %q base %v,%v: %w", d.ID, d.BaseLocation.Lat, d.BaseLocation.Lng, domain.ErrInvalidCoordinates)
		}
		if !(d.MaxCapacity > 0) || math.IsInf(d.MaxCapacity, 0) {
			return fmt.Errorf("driver %q capacity %v: %w", d.ID, d.MaxCapacity, domain.ErrInvalidCapacity)
		}
	}
	return nil
}

func validatePoints(points []domain.PickupPoint) error {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p.ID == "" {
			return fmt.Errorf("pickup point with empty id: %w", domain.ErrEmptyInput)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("pickup point %q: %w", p.ID, domain.ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}

		if !p.Priority.Valid() {
			return fmt.Errorf("pickup point %q priority %q: %w", p.ID, p.Priority, domain.ErrInvalidPriority)
		}
		if !p.Coordinates.Valid() {
			return fmt.Errorf("pickup point %q at %v,%v: %w", p.ID, p.Coordinates.Lat, p.Coordinates.Lng, domain.ErrInvalidCoordinates)
		}
		if !(p.Volume > 0) || math.IsInf(p.Volume, 0) {
			return fmt.Errorf("pickup point %q volume %v: %w", p.ID, p.Volume, domain.ErrInvalidVolume)
		}
	}
	return nil
}
