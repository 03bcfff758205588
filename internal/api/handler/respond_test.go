package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/volt-ev/fleet-console/internal/models"
	"github.com/volt-ev/fleet-console/internal/service"
)

func TestRespondErrorMapsWorkflowCodes(t *testing.T) {
	cases := []struct {
		code   service.WorkflowCode
		status int
	}{
		{service.CodeValidation, http.StatusBadRequest},
		{service.CodeInsufficientInventory, http.StatusBadRequest},
		{service.CodeSessionExpired, http.StatusUnauthorized},
		{service.CodePermissionDenied, http.StatusForbidden},
		{service.CodeStationNotFound, http.StatusNotFound},
		{service.CodeNetwork, http.StatusBadGateway},
		{service.CodeUnknown, http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		respondError(rec, &service.WorkflowError{Code: c.code, Message: "boom"})

		if rec.Code != c.status {
			t.Fatalf("code %s: expected status %d, got %d", c.code, c.status, rec.Code)
		}

		var payload errorPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("code %s: decode body: %v", c.code, err)
		}
		if payload.Error.Code != string(c.code) || payload.Error.Message != "boom" {
			t.Fatalf("code %s: unexpected payload %+v", c.code, payload)
		}
	}
}

func TestRespondErrorIncludesMismatchDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, &service.WorkflowError{
		Code:    service.CodeValidation,
		Message: "backend disagrees with local count",
		Mismatch: &models.InventoryMismatch{
			ClientCount:    3,
			BackendMessage: "insufficient vehicles",
		},
	})

	var payload errorPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error.Mismatch == nil || payload.Error.Mismatch.ClientCount != 3 {
		t.Fatalf("expected mismatch detail, got %+v", payload.Error)
	}
}

func TestRespondErrorFallsBackToInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("plain failure"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for untyped error, got %d", rec.Code)
	}
}
