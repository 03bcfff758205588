package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/middleware"
	"github.com/volt-ev/fleet-console/internal/models"
	"github.com/volt-ev/fleet-console/internal/service"
	"github.com/volt-ev/fleet-console/internal/websockets"
)

// stubFleet serves a fixed draft pool and accepts every mutation.
type stubFleet struct {
	vehicles []models.Vehicle
}

func (s *stubFleet) ListVehicles(ctx context.Context, filter fleetapi.VehicleFilter) (*models.VehicleList, error) {
	return &models.VehicleList{
		Vehicles:   s.vehicles,
		Pagination: models.Pagination{Page: 1, Limit: filter.Limit, Total: len(s.vehicles), TotalPages: 1},
	}, nil
}

func (s *stubFleet) AssignByQuantity(ctx context.Context, req fleetapi.AssignByQuantityRequest) (*fleetapi.AssignByQuantityResponse, error) {
	return &fleetapi.AssignByQuantityResponse{AssignedVehicles: s.vehicles[:req.Quantity]}, nil
}

func (s *stubFleet) UpdateVehicleStatus(ctx context.Context, vehicleID string, status models.VehicleStatus) (*models.Vehicle, error) {
	return &models.Vehicle{ID: vehicleID, Status: status}, nil
}

func (s *stubFleet) Withdraw(ctx context.Context, req fleetapi.WithdrawRequest) (*fleetapi.WithdrawResponse, error) {
	return &fleetapi.WithdrawResponse{WithdrawnCount: req.Quantity}, nil
}

func (s *stubFleet) ListStations(ctx context.Context, page, limit int) (*models.StationList, error) {
	return &models.StationList{}, nil
}

func TestHandleAssignLogsOperatorIdentity(t *testing.T) {
	fleet := &stubFleet{vehicles: []models.Vehicle{
		{ID: "v-1", Model: "Klara S", Color: "Đỏ", LicensePlate: "51A-123.45", Status: models.VehicleStatusDraft},
	}}
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	inventory := service.NewInventoryService(fleet, nil, logger)
	realloc := service.NewReallocationService(fleet, inventory, logger)
	h := NewReallocationHandler(realloc, websockets.NewHub(logger), logger)

	body, _ := json.Marshal(models.ReallocationRequest{
		StationID: "st-1", Model: "Klara S", Color: "Đỏ", Quantity: 1,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/reallocations/assign", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.OperatorIDKey, "op-7")
	ctx = context.WithValue(ctx, middleware.OperatorRoleKey, "fleet_admin")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.HandleAssign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result models.AssignmentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.TotalAssigned != 1 {
		t.Fatalf("expected total 1, got %d", result.TotalAssigned)
	}

	entries := logs.FilterMessage("reallocation submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operator_id"] != "op-7" || fields["operator_role"] != "fleet_admin" {
		t.Fatalf("expected operator identity in audit entry, got %v", fields)
	}
}
