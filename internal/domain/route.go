package domain

// Represents a single stop in a driver's collection route.
// Distances and times are measured from the previous stop, or from the
// driver's base for the first stop.
type RouteStop struct {
	SequenceNumber                int
	PointID                       string
	Coordinates                   Coordinates
	Priority                      Priority
	Volume                        float64
	Description                   string
	DistanceFromPreviousKm        float64
	TravelTimeMinutesFromPrevious float64
	ArrivalMinutes                float64
	NavigationURL                 string
}

// Represents the sequenced route for a single driver.
// It is planning data and contains no side effects.
type DriverRoute struct {
	DriverID                   string
	DriverName                 string
	BaseLocation               Coordinates
	MaxCapacity                float64
	Stops                      []RouteStop
	TotalStops                 int
	TotalDistanceKm            float64
	EstimatedTimeMinutes       float64
	TotalVolume                float64
	CapacityUtilizationPercent float64
	PriorityBreakdown          PriorityCounts
}

type QualityScores struct {
	PriorityCoverage   float64
	DistanceEfficiency float64
	WorkloadBalance    float64
	Overall            float64
}

type Summary struct {
	DriversAvailable  int
	DriversUsed       int
	TotalPickupPoints int
	AssignedPoints    int
	UnassignedPoints  int
	TotalDistanceKm   float64
	TotalTimeMinutes  float64
	TotalVolume       float64
	Demand            PriorityCounts
	Coverage          PriorityCounts
	Quality           QualityScores
}

// Top-level output of one optimization run.
// Routes only holds drivers with at least one stop. Unassigned lists the
// ids left over after capacity ran out, in processing order.
type OptimizationResult struct {
	Routes     map[string]DriverRoute
	Unassigned []string
	Summary    Summary
}
