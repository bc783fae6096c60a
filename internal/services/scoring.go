package services

import (
	"math"
	"waste-route-service/internal/domain"
)

// Tier weights for the priority coverage score.
const (
	redCoverageWeight    = 3.0
	yellowCoverageWeight = 2.0
)

func summarize(
	points []domain.PickupPoint,
	drivers []domain.Driver,
	routes map[string]domain.DriverRoute,
	opts OptimizeOptions,
) domain.Summary {
	s := domain.Summary{
		DriversAvailable:  len(drivers),
		DriversUsed:       len(routes),
		TotalPickupPoints: len(points),
	}

	for _, p := range points {
		s.Demand.Add(p.Priority)
	}

	stopCounts := make([]float64, 0, len(drivers))
	for _, d := range drivers {
		r, ok := routes[d.ID]
		if !ok {
			stopCounts = append(stopCounts, 0)
			continue
		}
		stopCounts = append(stopCounts, float64(r.TotalStops))

		s.AssignedPoints += r.TotalStops
		s.TotalDistanceKm += r.TotalDistanceKm
		s.TotalTimeMinutes += r.EstimatedTimeMinutes
		s.TotalVolume += r.TotalVolume
		s.Coverage.Red += r.PriorityBreakdown.Red
		s.Coverage.Yellow += r.PriorityBreakdown.Yellow
		s.Coverage.Green += r.PriorityBreakdown.Green
	}
	s.UnassignedPoints = s.TotalPickupPoints - s.AssignedPoints

	if len(points) == 0 {
		return s
	}

	q := &s.Quality
	q.PriorityCoverage = priorityCoverage(s.Demand, s.Coverage)
	q.DistanceEfficiency = distanceEfficiency(s.TotalDistanceKm, s.AssignedPoints)
	q.WorkloadBalance = workloadBalance(stopCounts)
	w := opts.Weights
	q.Overall = w.Priority*q.PriorityCoverage + w.Distance*q.DistanceEfficiency + w.Balance*q.WorkloadBalance
	return s
}

// priorityCoverage is the red/yellow share assigned, weighted 3:2 towards red.
// A run with no red or yellow demand scores 1.
func priorityCoverage(demand, covered domain.PriorityCounts) float64 {
	total := redCoverageWeight*float64(demand.Red) + yellowCoverageWeight*float64(demand.Yellow)
	if total == 0 {
		return 1
	}
	got := redCoverageWeight*float64(covered.Red) + yellowCoverageWeight*float64(covered.Yellow)
	return got / total
}

// distanceEfficiency maps km per assigned point onto (0, 1]; shorter is better.
func distanceEfficiency(totalKm float64, assigned int) float64 {
	if assigned == 0 {
		return 0
	}
	return 1 / (1 + totalKm/float64(assigned))
}

// workloadBalance is 1 - stddev/mean of stop counts, clamped to [0, 1].
func workloadBalance(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}

	var sum float64
	for _, c := range counts {
		sum += c
	}
	mean := sum / float64(len(counts))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, c := range counts {
		sq += (c - mean) * (c - mean)
	}
	std := math.Sqrt(sq / float64(len(counts)))

	return math.Min(1, math.Max(0, 1-std/mean))
}
