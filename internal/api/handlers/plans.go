package handlers

import (
	"net/http"
	"strings"
	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/services"

	"github.com/go-playground/validator/v10"
)

// PlanHandler serves repository-backed planning over the current open reports.
type PlanHandler struct {
	Planner  *services.CollectionPlanner
	validate *validator.Validate
}

func NewPlanHandler(planner *services.CollectionPlanner) *PlanHandler {
	return &PlanHandler{Planner: planner, validate: validator.New()}
}

// Plan loads a snapshot, optimizes it and optionally commits the assignments.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}

	svcReq := services.PlanCollectionsRequest{Commit: req.Commit}
	if req.Options.PriorityWeight != nil || req.Options.DistanceWeight != nil || req.Options.BalanceWeight != nil {
		svcReq.Weights = applyOptions(services.OptimizeOptions{}, req.Options).Weights
	}

	plan, err := h.Planner.PlanCollections(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "plan collections", err)
		return
	}
	if plan.Result.Summary.TotalPickupPoints == 0 {
		writeErrorCode(w, r, http.StatusUnprocessableEntity, codeNoPickupPoints, "no open pickup points")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{
		RunID:            plan.RunID,
		CreatedAt:        plan.CreatedAt,
		Commit:           commitResponse(plan.Commit),
		OptimizeResponse: optimizeResponse(plan.Result),
	})
}

// DriverRoute serves /drivers/{id}/route. GET reads the route; POST also
// assigns that route's reports to the driver.
func (h *PlanHandler) DriverRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "driver id is required")
		return
	}

	if r.Method == http.MethodPost {
		dc, err := h.Planner.CommitDriverRoute(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, "commit driver route", err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.DriverCommitResponse{
			RunID:               dc.RunID,
			Commit:              commitResponse(&dc.Commit),
			DriverRouteResponse: driverRouteResponse(dc.Route),
		})
		return
	}

	route, err := h.Planner.DriverRoute(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "driver route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, driverRouteResponse(route))
}
