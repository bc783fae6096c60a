package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OperationDuration is fed by Time for repository calls, runs and commits.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "outcome"},
	)

	OptimizationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimization_runs_total", Help: "Optimization runs by mode and outcome."},
		[]string{"mode", "outcome"},
	)
	PointsUnassigned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "pickup_points_unassigned_total", Help: "Pickup points left unassigned for lack of capacity."},
	)
	AssignmentCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assignment_commits_total", Help: "Assignment writes by outcome."},
		[]string{"outcome"},
	)
	RouteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_cache_lookups_total", Help: "Driver route cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the service collectors on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(OptimizationRuns)
		Registry.MustRegister(PointsUnassigned)
		Registry.MustRegister(AssignmentCommits)
		Registry.MustRegister(RouteCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
