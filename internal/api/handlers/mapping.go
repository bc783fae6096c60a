package handlers

import (
	"math"
	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func coordinatesResponse(c domain.Coordinates) dto.CoordinatesResponse {
	return dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
}

func breakdownResponse(c domain.PriorityCounts) dto.PriorityBreakdownResponse {
	return dto.PriorityBreakdownResponse{Red: c.Red, Yellow: c.Yellow, Green: c.Green}
}

func driverRouteResponse(r domain.DriverRoute) dto.DriverRouteResponse {
	stops := make([]dto.RouteStopResponse, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, dto.RouteStopResponse{
			SequenceNumber:          s.SequenceNumber,
			PickupID:                s.PointID,
			Lat:                     s.Coordinates.Lat,
			Lng:                     s.Coordinates.Lng,
			PriorityFlag:            string(s.Priority),
			VolumeM3:                s.Volume,
			Description:             s.Description,
			DistanceFromPreviousKm:  round2(s.DistanceFromPreviousKm),
			TravelTimeMinutes:       round2(s.TravelTimeMinutesFromPrevious),
			EstimatedArrivalMinutes: round2(s.ArrivalMinutes),
			NavigationURL:           s.NavigationURL,
		})
	}

	waypoints := make([]dto.CoordinatesResponse, 0, len(r.Stops)+1)
	if len(r.Stops) > 0 {
		for _, c := range services.Waypoints(r, r.BaseLocation) {
			waypoints = append(waypoints, coordinatesResponse(c))
		}
	}

	return dto.DriverRouteResponse{
		DriverID:                   r.DriverID,
		DriverName:                 r.DriverName,
		BaseLocation:               coordinatesResponse(r.BaseLocation),
		MaxCapacity:                r.MaxCapacity,
		Stops:                      stops,
		TotalStops:                 r.TotalStops,
		TotalDistanceKm:            round2(r.TotalDistanceKm),
		EstimatedTimeMinutes:       round2(r.EstimatedTimeMinutes),
		TotalVolumeM3:              r.TotalVolume,
		CapacityUtilizationPercent: round2(r.CapacityUtilizationPercent),
		PriorityBreakdown:          breakdownResponse(r.PriorityBreakdown),
		NavigationURL:              services.NavigationURL(r, r.BaseLocation),
		Waypoints:                  waypoints,
	}
}

func optimizeResponse(res domain.OptimizationResult) dto.OptimizeResponse {
	routes := make(map[string]dto.DriverRouteResponse, len(res.Routes))
	for id, r := range res.Routes {
		routes[id] = driverRouteResponse(r)
	}

	unassigned := res.Unassigned
	if unassigned == nil {
		unassigned = []string{}
	}

	s := res.Summary
	return dto.OptimizeResponse{
		DriverRoutes: routes,
		Unassigned:   unassigned,
		Summary: dto.SummaryResponse{
			DriversAvailable:  s.DriversAvailable,
			DriversUsed:       s.DriversUsed,
			TotalPickupPoints: s.TotalPickupPoints,
			AssignedPoints:    s.AssignedPoints,
			UnassignedPoints:  s.UnassignedPoints,
			TotalDistanceKm:   round2(s.TotalDistanceKm),
			TotalTimeMinutes:  round2(s.TotalTimeMinutes),
			TotalVolumeM3:     s.TotalVolume,
			Demand:            breakdownResponse(s.Demand),
			Coverage:          breakdownResponse(s.Coverage),
			Quality: dto.QualityResponse{
				PriorityCoverageScore:   round2(s.Quality.PriorityCoverage),
				DistanceEfficiencyScore: round2(s.Quality.DistanceEfficiency),
				WorkloadBalanceScore:    round2(s.Quality.WorkloadBalance),
				OverallScore:            round2(s.Quality.Overall),
			},
		},
	}
}

func pickupPointResponse(p domain.PickupPoint) dto.PickupPointResponse {
	return dto.PickupPointResponse{
		PickupID:     p.ID,
		Lat:          p.Coordinates.Lat,
		Lng:          p.Coordinates.Lng,
		PriorityFlag: string(p.Priority),
		VolumeM3:     p.Volume,
		Description:  p.Description,
	}
}

func commitResponse(c *services.CommitReport) *dto.CommitResponse {
	if c == nil {
		return nil
	}
	failed := make([]dto.CommitFailureResponse, 0, len(c.Failed))
	for _, f := range c.Failed {
		failed = append(failed, dto.CommitFailureResponse{ReportID: f.ReportID, Reason: f.Reason})
	}
	return &dto.CommitResponse{Committed: c.Committed, Failed: failed}
}

// applyOptions overlays request options onto the server defaults.
func applyOptions(base services.OptimizeOptions, o dto.OptionsRequest) services.OptimizeOptions {
	if base.Weights.IsZero() {
		base.Weights = domain.DefaultWeights
	}
	if o.PriorityWeight != nil {
		base.Weights.Priority = *o.PriorityWeight
	}
	if o.DistanceWeight != nil {
		base.Weights.Distance = *o.DistanceWeight
	}
	if o.BalanceWeight != nil {
		base.Weights.Balance = *o.BalanceWeight
	}
	if o.AverageSpeedKmh != nil {
		base.AverageSpeedKmh = *o.AverageSpeedKmh
	}
	if o.ServiceMinutesPerStop != nil {
		base.ServiceMinutesPerStop = *o.ServiceMinutesPerStop
	}
	return base
}

func pickupPointsFromRequest(in []dto.PickupPointRequest) []domain.PickupPoint {
	points := make([]domain.PickupPoint, 0, len(in))
	for _, p := range in {
		volume := services.EstimateVolume(p.Description)
		if p.Volume != nil {
			volume = *p.Volume
		}
		points = append(points, domain.PickupPoint{
			ID:          p.PickupID,
			Coordinates: domain.Coordinates{Lat: *p.Lat, Lng: *p.Lng},
			Priority:    services.ResolvePriority(p.PriorityFlag, p.Description, p.Urgent),
			Volume:      volume,
			Description: p.Description,
		})
	}
	return points
}

func driversFromRequest(in []dto.DriverRequest, defaultCapacity float64) []domain.Driver {
	drivers := make([]domain.Driver, 0, len(in))
	for _, d := range in {
		capacity := defaultCapacity
		if d.MaxCapacity != nil {
			capacity = *d.MaxCapacity
		}
		name := d.Name
		if name == "" {
			name = services.DefaultDriverName
		}
		drivers = append(drivers, domain.Driver{
			ID:           d.DriverID,
			Name:         name,
			BaseLocation: domain.Coordinates{Lat: *d.BaseLat, Lng: *d.BaseLng},
			MaxCapacity:  capacity,
		})
	}
	return drivers
}
