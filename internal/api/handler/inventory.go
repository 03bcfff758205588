package handler

import (
	"net/http"
	"strconv"

	"github.com/volt-ev/fleet-console/internal/models"
	"github.com/volt-ev/fleet-console/internal/service"
)

// InventoryHandler serves the advisory inventory counts the console shows
// while the operator fills the reallocation form.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// countResponse pairs the estimate with its badge so the UI renders both from
// one round trip.
type countResponse struct {
	Estimate models.LocalEstimate  `json:"estimate"`
	Badge    models.InventoryBadge `json:"badge"`
}

// HandleCount computes the advisory count for a filter tuple. Direction
// selects assignment (draft pool) or withdrawal (station inventory) rules.
func (h *InventoryHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	direction := models.Direction(q.Get("direction"))
	model := q.Get("model")
	color := q.Get("color")
	stationID := q.Get("station_id")

	var estimate models.LocalEstimate
	switch direction {
	case models.DirectionAssign:
		estimate = h.inventory.CountAssignable(r.Context(), model, color)
	case models.DirectionWithdraw:
		estimate = h.inventory.CountWithdrawable(r.Context(), stationID, model, color)
	default:
		http.Error(w, "direction must be assign or withdraw", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, countResponse{
		Estimate: estimate,
		Badge:    service.Badge(estimate),
	})
}

// parsePositiveInt reads a positive integer query param, falling back when
// absent or malformed.
func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
