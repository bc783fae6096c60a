package dto

type PickupPointRequest struct {
	PickupID     string   `json:"pickup_id" validate:"required"`
	Lat          *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng          *float64 `json:"lng" validate:"required,min=-180,max=180"`
	PriorityFlag string   `json:"priority_flag" validate:"omitempty,oneof=red yellow green"`
	Volume       *float64 `json:"volume" validate:"omitempty,gt=0"`
	Description  string   `json:"description"`
	Urgent       bool     `json:"urgent"`
}

type DriverRequest struct {
	DriverID    string   `json:"driver_id" validate:"required"`
	Name        string   `json:"name"`
	BaseLat     *float64 `json:"base_lat" validate:"required,min=-90,max=90"`
	BaseLng     *float64 `json:"base_lng" validate:"required,min=-180,max=180"`
	MaxCapacity *float64 `json:"max_capacity" validate:"omitempty,gt=0"`
}

// OptionsRequest overrides the server's optimizer tuning field by field.
type OptionsRequest struct {
	PriorityWeight        *float64 `json:"priority_weight" validate:"omitempty,min=0,max=1"`
	DistanceWeight        *float64 `json:"distance_weight" validate:"omitempty,min=0,max=1"`
	BalanceWeight         *float64 `json:"balance_weight" validate:"omitempty,min=0,max=1"`
	AverageSpeedKmh       *float64 `json:"average_speed_kmh" validate:"omitempty,gt=0"`
	ServiceMinutesPerStop *float64 `json:"service_minutes_per_stop" validate:"omitempty,min=0"`
}

type OptimizeRequest struct {
	PickupPoints []PickupPointRequest `json:"pickup_points" validate:"dive"`
	Drivers      []DriverRequest      `json:"drivers" validate:"dive"`
	Options      OptionsRequest       `json:"options"`
}

type OptimizeDriverRequest struct {
	OptimizeRequest
	TargetDriverID string `json:"target_driver_id" validate:"required"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PriorityBreakdownResponse struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Green  int `json:"green"`
}

type RouteStopResponse struct {
	SequenceNumber          int     `json:"sequence_number"`
	PickupID                string  `json:"pickup_id"`
	Lat                     float64 `json:"lat"`
	Lng                     float64 `json:"lng"`
	PriorityFlag            string  `json:"priority_flag"`
	VolumeM3                float64 `json:"volume_m3"`
	Description             string  `json:"description"`
	DistanceFromPreviousKm  float64 `json:"distance_from_previous_km"`
	TravelTimeMinutes       float64 `json:"travel_time_minutes"`
	EstimatedArrivalMinutes float64 `json:"estimated_arrival_minutes"`
	NavigationURL           string  `json:"navigation_url"`
}

type DriverRouteResponse struct {
	DriverID                   string                    `json:"driver_id"`
	DriverName                 string                    `json:"driver_name"`
	BaseLocation               CoordinatesResponse       `json:"base_location"`
	MaxCapacity                float64                   `json:"max_capacity"`
	Stops                      []RouteStopResponse       `json:"stops"`
	TotalStops                 int                       `json:"total_stops"`
	TotalDistanceKm            float64                   `json:"total_distance_km"`
	EstimatedTimeMinutes       float64                   `json:"estimated_time_minutes"`
	TotalVolumeM3              float64                   `json:"total_volume_m3"`
	CapacityUtilizationPercent float64                   `json:"capacity_utilization_percent"`
	PriorityBreakdown          PriorityBreakdownResponse `json:"priority_breakdown"`
	NavigationURL              string                    `json:"navigation_url"`
	Waypoints                  []CoordinatesResponse     `json:"waypoints"`
}

type QualityResponse struct {
	PriorityCoverageScore   float64 `json:"priority_coverage_score"`
	DistanceEfficiencyScore float64 `json:"distance_efficiency_score"`
	WorkloadBalanceScore    float64 `json:"workload_balance_score"`
	OverallScore            float64 `json:"overall_score"`
}

type SummaryResponse struct {
	DriversAvailable  int                       `json:"drivers_available"`
	DriversUsed       int                       `json:"total_drivers_used"`
	TotalPickupPoints int                       `json:"total_pickup_points"`
	AssignedPoints    int                       `json:"assigned_points"`
	UnassignedPoints  int                       `json:"unassigned_points"`
	TotalDistanceKm   float64                   `json:"total_distance_km"`
	TotalTimeMinutes  float64                   `json:"total_time_minutes"`
	TotalVolumeM3     float64                   `json:"total_volume_m3"`
	Demand            PriorityBreakdownResponse `json:"demand"`
	Coverage          PriorityBreakdownResponse `json:"priority_coverage"`
	Quality           QualityResponse           `json:"optimization_quality"`
}

type OptimizeResponse struct {
	DriverRoutes map[string]DriverRouteResponse `json:"driver_routes"`
	Unassigned   []string                       `json:"unassigned"`
	Summary      SummaryResponse                `json:"summary"`
}
