package handlers

import (
	"net/http"
	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/services"
)

// ReportHandler exposes read-only access to the normalized open reports.
type ReportHandler struct {
	Planner *services.CollectionPlanner
}

func (h *ReportHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	points, err := h.Planner.OpenPickupPoints(r.Context())
	if err != nil {
		writeServiceError(w, r, "list open reports", err)
		return
	}

	res := dto.ListPickupPointsResponse{
		PickupPoints: make([]dto.PickupPointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.PickupPoints = append(res.PickupPoints, pickupPointResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
