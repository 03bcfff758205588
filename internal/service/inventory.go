package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/models"
)

const (
	// Effectively "all": the count fetch asks for one oversized page rather
	// than walking pagination.
	countPageLimit = 1000

	countCacheTTL    = 15 * time.Second
	countCachePrefix = "inventory:count:"
)

// VehicleLister is the slice of the fleet client the counter needs.
type VehicleLister interface {
	ListVehicles(ctx context.Context, filter fleetapi.VehicleFilter) (*models.VehicleList, error)
}

// InventoryService computes the console's advisory eligible-vehicle counts.
// Counts are advisory local estimates, never authoritative; a backend
// failure yields "unknown" rather than an error.
type InventoryService struct {
	fleet VehicleLister
	cache *redis.Client
	log   *zap.Logger
}

func NewInventoryService(fleet VehicleLister, cache *redis.Client, log *zap.Logger) *InventoryService {
	return &InventoryService{fleet: fleet, cache: cache, log: log}
}

// CountAssignable counts draft-pool vehicles eligible for assignment under
// the model/color filter. Empty model or color short-circuits to unknown
// without a network call.
func (s *InventoryService) CountAssignable(ctx context.Context, model, color string) models.LocalEstimate {
	if model == "" || color == "" {
		return models.UnknownEstimate()
	}

	key := s.cacheKey(models.DirectionAssign, "", model, color)
	if est, ok := s.cachedCount(ctx, key); ok {
		return est
	}

	list, err := s.fleet.ListVehicles(ctx, fleetapi.VehicleFilter{
		Status: models.VehicleStatusDraft,
		Model:  model,
		Color:  color,
		Limit:  countPageLimit,
	})
	if err != nil {
		s.log.Warn("assignable count unavailable", zap.String("model", model), zap.String("color", color), zap.Error(err))
		return models.UnknownEstimate()
	}

	count := 0
	for _, v := range list.Vehicles {
		if EligibleForAssignment(v, model, color) {
			count++
		}
	}
	s.storeCount(ctx, key, count)
	return models.KnownEstimate(count, time.Now())
}

// CountWithdrawable counts available vehicles at the station eligible for
// withdrawal under the model/color filter.
func (s *InventoryService) CountWithdrawable(ctx context.Context, stationID, model, color string) models.LocalEstimate {
	if stationID == "" || model == "" || color == "" {
		return models.UnknownEstimate()
	}

	key := s.cacheKey(models.DirectionWithdraw, stationID, model, color)
	if est, ok := s.cachedCount(ctx, key); ok {
		return est
	}

	list, err := s.fleet.ListVehicles(ctx, fleetapi.VehicleFilter{
		Status:    models.VehicleStatusAvailable,
		Model:     model,
		Color:     color,
		StationID: stationID,
		Limit:     countPageLimit,
	})
	if err != nil {
		s.log.Warn("withdrawable count unavailable", zap.String("station", stationID), zap.Error(err))
		return models.UnknownEstimate()
	}

	count := 0
	for _, v := range list.Vehicles {
		if EligibleForWithdrawal(v, stationID, model, color) {
			count++
		}
	}
	s.storeCount(ctx, key, count)
	return models.KnownEstimate(count, time.Now())
}

// Invalidate drops cached counts touched by a completed reallocation so the
// next advisory read recomputes.
func (s *InventoryService) Invalidate(ctx context.Context, stationID, model, color string) {
	if s.cache == nil {
		return
	}
	keys := []string{
		s.cacheKey(models.DirectionAssign, "", model, color),
		s.cacheKey(models.DirectionWithdraw, stationID, model, color),
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("count cache invalidation failed", zap.Error(err))
	}
}

// Keys are folded so "Klara S"/"klara s" share an entry.
func (s *InventoryService) cacheKey(dir models.Direction, stationID, model, color string) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", countCachePrefix, dir, Fold(stationID), Fold(model), Fold(color))
}

func (s *InventoryService) cachedCount(ctx context.Context, key string) (models.LocalEstimate, bool) {
	if s.cache == nil {
		return models.LocalEstimate{}, false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return models.LocalEstimate{}, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return models.LocalEstimate{}, false
	}
	return models.KnownEstimate(count, time.Now()), true
}

func (s *InventoryService) storeCount(ctx context.Context, key string, count int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, count, countCacheTTL).Err(); err != nil {
		s.log.Warn("count cache store failed", zap.Error(err))
	}
}
