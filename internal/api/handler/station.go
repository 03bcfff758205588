package handler

import (
	"errors"
	"net/http"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
)

// StationHandler proxies station listings for the console's station picker
type StationHandler struct {
	fleet *fleetapi.Client
}

// NewStationHandler creates a new station handler
func NewStationHandler(fleet *fleetapi.Client) *StationHandler {
	return &StationHandler{fleet: fleet}
}

// HandleList forwards a paginated station listing from the fleet backend.
func (h *StationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), 20)

	stations, err := h.fleet.ListStations(r.Context(), page, limit)
	if err != nil {
		respondFleetError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stations)
}

// respondFleetError maps a raw fleet client failure on a proxy endpoint,
// which never goes through the workflow taxonomy.
func respondFleetError(w http.ResponseWriter, err error) {
	var apiErr *fleetapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
		return
	}
	http.Error(w, "fleet backend unreachable", http.StatusBadGateway)
}
