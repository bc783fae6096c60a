package handlers

import (
	"net/http"
	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/services"

	"github.com/go-playground/validator/v10"
)

// OptimizeHandler serves stateless optimization over points and drivers sent in the body.
type OptimizeHandler struct {
	Options         services.OptimizeOptions
	DefaultCapacity float64
	validate        *validator.Validate
}

func NewOptimizeHandler(opts services.OptimizeOptions, defaultCapacity float64) *OptimizeHandler {
	if defaultCapacity <= 0 {
		defaultCapacity = services.DefaultDriverCapacity
	}
	return &OptimizeHandler{Options: opts, DefaultCapacity: defaultCapacity, validate: validator.New()}
}

// checkRequest validates the body and the setup preconditions shared by both endpoints.
func (h *OptimizeHandler) checkRequest(w http.ResponseWriter, r *http.Request, req any, base dto.OptimizeRequest) bool {
	if err := h.validate.Struct(req); err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
		return false
	}
	if len(base.PickupPoints) == 0 {
		writeErrorCode(w, r, http.StatusUnprocessableEntity, codeNoPickupPoints, "no pickup points provided")
		return false
	}
	if len(base.Drivers) == 0 {
		writeErrorCode(w, r, http.StatusUnprocessableEntity, codeNoDrivers, "no drivers provided")
		return false
	}
	return true
}

// Optimize assigns and sequences every pickup point across all drivers.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.checkRequest(w, r, &req, req) {
		return
	}

	var err error
	defer obs.Time(r.Context(), "optimize")(&err)

	result, err := services.Optimize(
		pickupPointsFromRequest(req.PickupPoints),
		driversFromRequest(req.Drivers, h.DefaultCapacity),
		applyOptions(h.Options, req.Options),
	)
	obs.OptimizationRuns.WithLabelValues("stateless", outcome(err)).Inc()
	if err != nil {
		writeServiceError(w, r, "optimize", err)
		return
	}
	obs.PointsUnassigned.Add(float64(len(result.Unassigned)))

	writeJSON(w, r, http.StatusOK, optimizeResponse(result))
}

// OptimizeDriver runs the full assignment and returns only the target driver's route.
func (h *OptimizeHandler) OptimizeDriver(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeDriverRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.checkRequest(w, r, &req, req.OptimizeRequest) {
		return
	}

	var err error
	defer obs.Time(r.Context(), "optimize_driver")(&err)

	route, err := services.OptimizeForDriver(
		pickupPointsFromRequest(req.PickupPoints),
		driversFromRequest(req.Drivers, h.DefaultCapacity),
		req.TargetDriverID,
		applyOptions(h.Options, req.Options),
	)
	obs.OptimizationRuns.WithLabelValues("stateless_driver", outcome(err)).Inc()
	if err != nil {
		writeServiceError(w, r, "optimize driver", err)
		return
	}

	writeJSON(w, r, http.StatusOK, driverRouteResponse(route))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
