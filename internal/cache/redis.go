package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/volt-ev/fleet-console/internal/config"
)

// NewRedis connects the advisory cache. The cache only ever holds stale-safe
// data (count snapshots, catalog lists), so a missing Redis is a degraded
// mode, not a fatal one; callers decide whether to proceed without it.
func NewRedis(cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
