package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/models"
)

const stationPageLimit = 100

// FleetAPI is the full backend surface the reallocation workflows consume.
// *fleetapi.Client satisfies it; tests use a recording fake.
type FleetAPI interface {
	ListVehicles(ctx context.Context, filter fleetapi.VehicleFilter) (*models.VehicleList, error)
	AssignByQuantity(ctx context.Context, req fleetapi.AssignByQuantityRequest) (*fleetapi.AssignByQuantityResponse, error)
	UpdateVehicleStatus(ctx context.Context, vehicleID string, status models.VehicleStatus) (*models.Vehicle, error)
	Withdraw(ctx context.Context, req fleetapi.WithdrawRequest) (*fleetapi.WithdrawResponse, error)
	ListStations(ctx context.Context, page, limit int) (*models.StationList, error)
}

// ReallocationService runs the two fleet reallocation workflows: assigning
// draft vehicles into a station and withdrawing available vehicles back to
// the draft pool. Each submission is independent; there is no deduplication
// and no idempotence across submissions.
type ReallocationService struct {
	fleet     FleetAPI
	inventory *InventoryService
	log       *zap.Logger
}

func NewReallocationService(fleet FleetAPI, inventory *InventoryService, log *zap.Logger) *ReallocationService {
	return &ReallocationService{fleet: fleet, inventory: inventory, log: log}
}

// Assign moves req.Quantity draft vehicles matching model/color into the
// station, then promotes them to available. The promotion step is a
// best-effort saga: the assignment mutation must succeed first, and per-
// vehicle promotion failures are collected into the result rather than
// rolling anything back. A vehicle whose promotion failed stays assigned to
// the station in draft status until promotion is retried.
func (s *ReallocationService) Assign(ctx context.Context, req models.ReallocationRequest) (*models.AssignmentResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Advisory gate: a known zero is a hard reject, a known shortfall gets a
	// corrective message. The quantity is never silently clamped. Unknown
	// counts pass through; the backend is authoritative either way.
	estimate := s.inventory.CountAssignable(ctx, req.Model, req.Color)
	if estimate.Known && estimate.Count == 0 {
		return nil, validationErr("no eligible draft vehicles for %s / %s", req.Model, req.Color)
	}
	if estimate.Known && req.Quantity > estimate.Count {
		return nil, validationErr("requested %d vehicles but only %d are eligible, lower the quantity", req.Quantity, estimate.Count)
	}

	// Station lookup feeds the capacity advisory; failure here never blocks
	// the submission.
	station := s.findStation(ctx, req.StationID)
	warning := CheckCapacity(station, req.Quantity)

	resp, err := s.fleet.AssignByQuantity(ctx, fleetapi.AssignByQuantityRequest{
		Color:     req.Color,
		Model:     req.Model,
		Status:    models.VehicleStatusDraft,
		Quantity:  req.Quantity,
		StationID: req.StationID,
	})
	if err != nil {
		return nil, mapMutationError(err, estimate)
	}

	total, vehicles, err := normalizeAssignResponse(resp)
	if err != nil {
		return nil, &WorkflowError{Code: CodeUnknown, Message: "backend reply did not state how many vehicles were assigned", Err: err}
	}

	// The mutation only reassigns; status stays draft until promoted here.
	var requeryErr error
	if len(vehicles) == 0 && total > 0 {
		vehicles, requeryErr = s.requeryAssigned(ctx, req, total)
	}
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	promotion := s.Promote(ctx, ids)

	// Any assigned vehicle whose ID could not be recovered got no promotion
	// attempt; surface that instead of reporting a clean batch.
	if shortfall := total - len(vehicles); shortfall > 0 {
		reason := "could not identify all assigned vehicles"
		if requeryErr != nil {
			reason = "assigned-vehicle lookup failed: " + requeryErr.Error()
		}
		promotion.Unresolved = shortfall
		promotion.UnresolvedReason = reason
		s.log.Warn("assigned vehicles left in draft status",
			zap.String("station_id", req.StationID),
			zap.Int("unresolved", shortfall),
			zap.String("reason", reason))
	}

	s.inventory.Invalidate(ctx, req.StationID, req.Model, req.Color)

	result := &models.AssignmentResult{
		RequestID:       uuid.New(),
		StationID:       req.StationID,
		Model:           req.Model,
		Color:           req.Color,
		Quantity:        req.Quantity,
		TotalAssigned:   total,
		Vehicles:        vehicles,
		Promotion:       promotion,
		CapacityWarning: warning,
	}
	s.log.Info("assignment completed",
		zap.String("request_id", result.RequestID.String()),
		zap.String("station_id", req.StationID),
		zap.Int("total_assigned", total),
		zap.Int("promotion_failures", len(promotion.Failed)))
	return result, nil
}

// Withdraw pulls req.Quantity available vehicles matching model/color from
// the station back to the unassigned draft pool. The backend performs the
// whole transition in one call; the reported vehicles are terminal state and
// no follow-up patching happens.
func (s *ReallocationService) Withdraw(ctx context.Context, req models.ReallocationRequest) (*models.WithdrawalResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	estimate := s.inventory.CountWithdrawable(ctx, req.StationID, req.Model, req.Color)
	if estimate.Known && estimate.Count == 0 {
		return nil, validationErr("no available %s / %s vehicles at this station", req.Model, req.Color)
	}
	if estimate.Known && req.Quantity > estimate.Count {
		return nil, validationErr("requested %d vehicles but the station only has %d available, lower the quantity", req.Quantity, estimate.Count)
	}

	resp, err := s.fleet.Withdraw(ctx, fleetapi.WithdrawRequest{
		StationID: req.StationID,
		Model:     req.Model,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, mapMutationError(err, estimate)
	}

	s.inventory.Invalidate(ctx, req.StationID, req.Model, req.Color)

	result := &models.WithdrawalResult{
		RequestID:      uuid.New(),
		StationID:      req.StationID,
		Model:          req.Model,
		Color:          req.Color,
		Quantity:       req.Quantity,
		WithdrawnCount: resp.WithdrawnCount,
		Vehicles:       resp.Vehicles,
		Station:        resp.Station,
	}
	s.log.Info("withdrawal completed",
		zap.String("request_id", result.RequestID.String()),
		zap.String("station_id", req.StationID),
		zap.Int("withdrawn_count", resp.WithdrawnCount))
	return result, nil
}

// Promote patches each vehicle to available. Patches run concurrently with no
// ordering guarantee; failures are collected, logged, and left for a retry,
// never escalated into a workflow error. Also serves the operator-facing
// promotion retry endpoint.
func (s *ReallocationService) Promote(ctx context.Context, vehicleIDs []string) models.PromotionOutcome {
	failures := make([]error, len(vehicleIDs))
	var wg sync.WaitGroup
	for i, id := range vehicleIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, err := s.fleet.UpdateVehicleStatus(ctx, id, models.VehicleStatusAvailable)
			failures[i] = err
		}(i, id)
	}
	wg.Wait()

	var outcome models.PromotionOutcome
	for i, id := range vehicleIDs {
		if failures[i] != nil {
			s.log.Warn("vehicle promotion failed", zap.String("vehicle_id", id), zap.Error(failures[i]))
			outcome.Failed = append(outcome.Failed, models.PromotionFailure{VehicleID: id, Reason: failures[i].Error()})
			continue
		}
		outcome.Promoted = append(outcome.Promoted, id)
	}
	return outcome
}

// requeryAssigned recovers the affected vehicle IDs when the mutation reply
// omitted the list: the first total draft vehicles now sitting at the station
// under this model/color are the batch that was just moved.
func (s *ReallocationService) requeryAssigned(ctx context.Context, req models.ReallocationRequest, total int) ([]models.Vehicle, error) {
	list, err := s.fleet.ListVehicles(ctx, fleetapi.VehicleFilter{
		Status:    models.VehicleStatusDraft,
		Model:     req.Model,
		Color:     req.Color,
		StationID: req.StationID,
		Limit:     countPageLimit,
	})
	if err != nil {
		return nil, err
	}

	matched := make([]models.Vehicle, 0, total)
	for _, v := range list.Vehicles {
		if v.Status == models.VehicleStatusDraft &&
			v.Station() == req.StationID &&
			SameAttribute(v.Model, req.Model) &&
			SameAttribute(v.Color, req.Color) {
			matched = append(matched, v)
			if len(matched) == total {
				break
			}
		}
	}
	return matched, nil
}

func (s *ReallocationService) findStation(ctx context.Context, stationID string) *models.Station {
	page := 1
	for {
		list, err := s.fleet.ListStations(ctx, page, stationPageLimit)
		if err != nil {
			s.log.Warn("station lookup failed", zap.String("station_id", stationID), zap.Error(err))
			return nil
		}
		for i := range list.Stations {
			if list.Stations[i].ID == stationID {
				return &list.Stations[i]
			}
		}
		if len(list.Stations) == 0 || page >= list.Pagination.TotalPages {
			return nil
		}
		page++
	}
}

// validateRequest enforces the submit-gate preconditions; each rejection is
// distinct and happens before any mutation call.
func validateRequest(req models.ReallocationRequest) error {
	switch {
	case req.StationID == "":
		return validationErr("select a station")
	case req.Color == "":
		return validationErr("select a color")
	case req.Model == "":
		return validationErr("select a model")
	case req.Quantity <= 0:
		return validationErr("quantity must be greater than zero")
	}
	return nil
}
