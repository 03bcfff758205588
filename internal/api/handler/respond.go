package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/volt-ev/fleet-console/internal/models"
	"github.com/volt-ev/fleet-console/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorPayload is the error envelope returned on every failed request.
type errorPayload struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code     string                    `json:"code"`
	Message  string                    `json:"message"`
	Mismatch *models.InventoryMismatch `json:"mismatch,omitempty"`
}

func respondError(w http.ResponseWriter, err error) {
	var wfErr *service.WorkflowError
	if !errors.As(err, &wfErr) {
		respondJSON(w, http.StatusInternalServerError, errorPayload{
			Error: errorDetail{Code: string(service.CodeUnknown), Message: err.Error()},
		})
		return
	}

	respondJSON(w, statusFor(wfErr.Code), errorPayload{
		Error: errorDetail{
			Code:     string(wfErr.Code),
			Message:  wfErr.Message,
			Mismatch: wfErr.Mismatch,
		},
	})
}

func statusFor(code service.WorkflowCode) int {
	switch code {
	case service.CodeValidation, service.CodeInsufficientInventory:
		return http.StatusBadRequest
	case service.CodeSessionExpired:
		return http.StatusUnauthorized
	case service.CodePermissionDenied:
		return http.StatusForbidden
	case service.CodeStationNotFound:
		return http.StatusNotFound
	case service.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
