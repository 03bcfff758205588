package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/middleware"
	"github.com/volt-ev/fleet-console/internal/models"
	"github.com/volt-ev/fleet-console/internal/service"
	"github.com/volt-ev/fleet-console/internal/websockets"
)

// ReallocationHandler handles fleet reallocation requests
type ReallocationHandler struct {
	realloc *service.ReallocationService
	hub     *websockets.Hub
	log     *zap.Logger
}

// NewReallocationHandler creates a new reallocation handler
func NewReallocationHandler(realloc *service.ReallocationService, hub *websockets.Hub, log *zap.Logger) *ReallocationHandler {
	return &ReallocationHandler{
		realloc: realloc,
		hub:     hub,
		log:     log,
	}
}

// HandleAssign runs the assignment workflow for one submission.
func (h *ReallocationHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req models.ReallocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.realloc.Assign(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.auditReallocation(r, models.DirectionAssign, req, result.TotalAssigned)
	h.broadcastInventoryUpdate(req, models.DirectionAssign, result.TotalAssigned)
	respondJSON(w, http.StatusOK, result)
}

// HandleWithdraw runs the withdrawal workflow for one submission.
func (h *ReallocationHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req models.ReallocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.realloc.Withdraw(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.auditReallocation(r, models.DirectionWithdraw, req, result.WithdrawnCount)
	h.broadcastInventoryUpdate(req, models.DirectionWithdraw, result.WithdrawnCount)
	respondJSON(w, http.StatusOK, result)
}

// HandlePromote retries the draft-to-available promotion for vehicles a prior
// assignment left assigned-but-draft.
func (h *ReallocationHandler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleIDs []string `json:"vehicle_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.VehicleIDs) == 0 {
		http.Error(w, "vehicle_ids is required", http.StatusBadRequest)
		return
	}

	outcome := h.realloc.Promote(r.Context(), req.VehicleIDs)

	operatorID, _ := middleware.GetOperatorID(r.Context())
	h.log.Info("promotion retried",
		zap.String("operator_id", operatorID),
		zap.Int("requested", len(req.VehicleIDs)),
		zap.Int("promoted", len(outcome.Promoted)))
	respondJSON(w, http.StatusOK, outcome)
}

// auditReallocation records who moved what; the mutation is already committed
// on the backend when this runs.
func (h *ReallocationHandler) auditReallocation(r *http.Request, dir models.Direction, req models.ReallocationRequest, count int) {
	operatorID, _ := middleware.GetOperatorID(r.Context())
	role, _ := middleware.GetOperatorRole(r.Context())
	h.log.Info("reallocation submitted",
		zap.String("operator_id", operatorID),
		zap.String("operator_role", role),
		zap.String("direction", string(dir)),
		zap.String("station_id", req.StationID),
		zap.String("model", req.Model),
		zap.String("color", req.Color),
		zap.Int("count", count))
}

// broadcastInventoryUpdate notifies the station's websocket subscribers that
// its inventory changed.
func (h *ReallocationHandler) broadcastInventoryUpdate(req models.ReallocationRequest, dir models.Direction, count int) {
	update := websockets.InventoryUpdate{
		StationID: req.StationID,
		Direction: string(dir),
		Model:     req.Model,
		Color:     req.Color,
		Count:     count,
	}
	data, err := json.Marshal(update)
	if err != nil {
		return
	}

	message, err := json.Marshal(websockets.Message{
		Type:      websockets.TypeInventoryUpdate,
		Data:      data,
		StationID: req.StationID,
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToStation(req.StationID, message)
}
