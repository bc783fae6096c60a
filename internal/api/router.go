package api

import (
	"net/http"
	"waste-route-service/internal/api/handlers"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	Planner         *services.CollectionPlanner
	Options         services.OptimizeOptions
	DefaultCapacity float64
	// Limiter guards the CPU-bound optimization endpoints. Nil disables limiting.
	Limiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := handlers.NewOptimizeHandler(deps.Options, deps.DefaultCapacity)

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/optimize", rateLimit(deps.Limiter, optimizeHandler.Optimize))
	mux.HandleFunc("/optimize-driver", rateLimit(deps.Limiter, optimizeHandler.OptimizeDriver))

	if deps.Planner != nil {
		planHandler := handlers.NewPlanHandler(deps.Planner)
		reportHandler := &handlers.ReportHandler{Planner: deps.Planner}

		mux.HandleFunc("/plans", rateLimit(deps.Limiter, planHandler.Plan))
		mux.HandleFunc("/drivers/{id}/route", rateLimit(deps.Limiter, planHandler.DriverRoute))
		mux.HandleFunc("/reports/open", reportHandler.ListOpen)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
