package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

// Machine-readable codes for setup problems the UI can act on.
const (
	codeNoDrivers      = "no_drivers"
	codeNoPickupPoints = "no_pickup_points"
	codeInvalidInput   = "invalid_input"
	codeNotFound       = "not_found"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg, "code": code})
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
// On failure it writes the 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func allowOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoDrivers):
		writeErrorCode(w, r, http.StatusUnprocessableEntity, codeNoDrivers, "no drivers available")
	case errors.Is(err, domain.ErrNoPickupPoints):
		writeErrorCode(w, r, http.StatusUnprocessableEntity, codeNoPickupPoints, "no open pickup points")
	case errors.Is(err, domain.ErrDriverNotFound), errors.Is(err, domain.ErrNotFound):
		writeErrorCode(w, r, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidWeights),
		errors.Is(err, domain.ErrInvalidOptions),
		errors.Is(err, domain.ErrInvalidVolume),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrEmptyInput):
		writeErrorCode(w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
