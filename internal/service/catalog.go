package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/models"
)

const (
	catalogCacheTTL   = 5 * time.Minute
	modelsCacheKey    = "catalog:models"
	brandsCacheKey    = "catalog:brands"
	catalogFetchLimit = 1000
)

// CatalogService derives the distinct model and brand pick-lists. The backend
// has no dedicated endpoint for these, so they are computed from a full
// vehicle fetch, deduplicated accent/case-insensitively, and cached.
type CatalogService struct {
	fleet VehicleLister
	cache *redis.Client
	log   *zap.Logger
}

func NewCatalogService(fleet VehicleLister, cache *redis.Client, log *zap.Logger) *CatalogService {
	return &CatalogService{fleet: fleet, cache: cache, log: log}
}

// Models returns the sorted distinct vehicle models.
func (s *CatalogService) Models(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, modelsCacheKey, func(v models.Vehicle) string { return v.Model })
}

// Brands returns the sorted distinct vehicle brands.
func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, brandsCacheKey, func(v models.Vehicle) string { return v.Brand })
}

func (s *CatalogService) distinct(ctx context.Context, cacheKey string, attr func(models.Vehicle) string) ([]string, error) {
	if cached, ok := s.cachedList(ctx, cacheKey); ok {
		return cached, nil
	}

	list, err := s.fleet.ListVehicles(ctx, fleetapi.VehicleFilter{Limit: catalogFetchLimit})
	if err != nil {
		return nil, err
	}

	// First spelling seen wins; later variants that fold to the same key are
	// duplicates, not new entries.
	seen := make(map[string]string)
	for _, v := range list.Vehicles {
		value := attr(v)
		if value == "" {
			continue
		}
		key := Fold(value)
		if _, ok := seen[key]; !ok {
			seen[key] = value
		}
	}

	values := make([]string, 0, len(seen))
	for _, v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	s.storeList(ctx, cacheKey, values)
	return values, nil
}

func (s *CatalogService) cachedList(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	return values, true
}

func (s *CatalogService) storeList(ctx context.Context, key string, values []string) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, catalogCacheTTL).Err(); err != nil {
		s.log.Warn("catalog cache store failed", zap.Error(err))
	}
}
