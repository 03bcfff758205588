package fleetapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 0, zap.NewNop()), server
}

func TestListVehiclesSendsFilterAndToken(t *testing.T) {
	var gotAuth, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/vehicles" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.VehicleList{
			Vehicles:   []models.Vehicle{{ID: "v-1", Status: models.VehicleStatusDraft}},
			Pagination: models.Pagination{Page: 1, Limit: 1000, Total: 1, TotalPages: 1},
		})
	})

	ctx := WithToken(context.Background(), "operator-token")
	list, err := client.ListVehicles(ctx, VehicleFilter{
		Status: models.VehicleStatusDraft,
		Model:  "Klara S",
		Color:  "Đỏ",
		Limit:  1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Vehicles) != 1 || list.Vehicles[0].ID != "v-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if gotAuth != "Bearer operator-token" {
		t.Fatalf("expected bearer token forwarded, got %q", gotAuth)
	}
	q, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("status") != "draft" || q.Get("limit") != "1000" || q.Get("model") != "Klara S" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}

func TestAssignByQuantityPostsPayload(t *testing.T) {
	var got AssignByQuantityRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/vehicles/assign-by-quantity" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		total := 2
		json.NewEncoder(w).Encode(AssignByQuantityResponse{Message: "ok", TotalAssigned: &total})
	})

	resp, err := client.AssignByQuantity(context.Background(), AssignByQuantityRequest{
		Color:     "Đỏ",
		Model:     "Klara S",
		Status:    models.VehicleStatusDraft,
		Quantity:  2,
		StationID: "st-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalAssigned == nil || *resp.TotalAssigned != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Status != models.VehicleStatusDraft || got.StationID != "st-1" || got.Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestUpdateVehicleStatusPatchesPerVehicle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/vehicles/v-9/status" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Status models.VehicleStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Status != models.VehicleStatusAvailable {
			t.Fatalf("expected available, got %s", body.Status)
		}
		json.NewEncoder(w).Encode(models.Vehicle{ID: "v-9", Status: body.Status})
	})

	v, err := client.UpdateVehicleStatus(context.Background(), "v-9", models.VehicleStatusAvailable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID != "v-9" || v.Status != models.VehicleStatusAvailable {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindPermission},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
	}

	for _, c := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
		})

		_, err := client.ListStations(context.Background(), 1, 10)
		if !IsKind(err, c.kind) {
			t.Fatalf("status %d: expected kind %s, got %v", c.status, c.kind, err)
		}
	}
}

func TestNetworkFailureIsDistinctFromHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, 0, zap.NewNop())
	server.Close()

	_, err := client.ListStations(context.Background(), 1, 10)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network kind for transport failure, got %v", err)
	}
}
