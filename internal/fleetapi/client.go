package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/models"
)

// DefaultTimeout applies to every backend request unless overridden.
const DefaultTimeout = 30 * time.Second

// Client is a typed HTTP client for the remote fleet backend. The backend is
// the sole source of truth for vehicles and stations; the console only reads
// and mutates through it.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a fleet backend client. timeout <= 0 falls back to
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// VehicleFilter selects vehicles on the backend's list endpoint. The backend
// filter is not trusted for model/color matching; callers re-filter locally.
type VehicleFilter struct {
	Status    models.VehicleStatus
	Model     string
	Color     string
	StationID string
	Type      string
	Page      int
	Limit     int
}

func (f VehicleFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Model != "" {
		q.Set("model", f.Model)
	}
	if f.Color != "" {
		q.Set("color", f.Color)
	}
	if f.StationID != "" {
		q.Set("station_id", f.StationID)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// AssignByQuantityRequest is the assign-by-quantity mutation payload. Status
// is always draft: only unassigned draft vehicles are moved.
type AssignByQuantityRequest struct {
	Color     string               `json:"color"`
	Model     string               `json:"model"`
	Status    models.VehicleStatus `json:"status"`
	Quantity  int                  `json:"quantity"`
	StationID string               `json:"station_id"`
}

// AssignByQuantityResponse is the backend's loosely-shaped reply. Any of the
// three fields may carry the assigned total; normalization happens in the
// workflow layer, not here.
type AssignByQuantityResponse struct {
	Message          string           `json:"message"`
	AssignedVehicles []models.Vehicle `json:"assignedVehicles,omitempty"`
	TotalAssigned    *int             `json:"totalAssigned,omitempty"`
}

// WithdrawRequest is the withdraw mutation payload.
type WithdrawRequest struct {
	StationID string `json:"station_id"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// WithdrawResponse is the backend's withdraw reply. The backend performs the
// full transition (status flip + station decrement) atomically, so vehicles
// here are terminal state.
type WithdrawResponse struct {
	Message        string                  `json:"message"`
	WithdrawnCount int                     `json:"withdrawn_count"`
	Station        models.StationRemainder `json:"station"`
	Vehicles       []models.Vehicle        `json:"vehicles"`
}

// ListVehicles fetches a filtered vehicle page.
func (c *Client) ListVehicles(ctx context.Context, filter VehicleFilter) (*models.VehicleList, error) {
	var out models.VehicleList
	if err := c.do(ctx, http.MethodGet, "/api/vehicles", filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignByQuantity moves quantity draft vehicles matching model/color to the
// station. It does NOT promote their status; that is the workflow's job.
func (c *Client) AssignByQuantity(ctx context.Context, req AssignByQuantityRequest) (*AssignByQuantityResponse, error) {
	var out AssignByQuantityResponse
	if err := c.do(ctx, http.MethodPost, "/api/vehicles/assign-by-quantity", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVehicleStatus patches a single vehicle's status.
func (c *Client) UpdateVehicleStatus(ctx context.Context, vehicleID string, status models.VehicleStatus) (*models.Vehicle, error) {
	body := struct {
		Status models.VehicleStatus `json:"status"`
	}{Status: status}

	var out models.Vehicle
	path := "/api/vehicles/" + url.PathEscape(vehicleID) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Withdraw pulls quantity available vehicles matching model/color from the
// station back to the unassigned draft pool, in one atomic backend call.
func (c *Client) Withdraw(ctx context.Context, req WithdrawRequest) (*WithdrawResponse, error) {
	var out WithdrawResponse
	if err := c.do(ctx, http.MethodPost, "/api/vehicles/withdraw", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStations fetches a station page.
func (c *Client) ListStations(ctx context.Context, page, limit int) (*models.StationList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out models.StationList
	if err := c.do(ctx, http.MethodGet, "/api/stations", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorBody is the backend's error envelope; either field may carry the text.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// No HTTP response at all: connectivity, not a business rejection.
		return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = resp.Status
		}
		c.log.Warn("fleet api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{Kind: classifyStatus(resp.StatusCode), StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
