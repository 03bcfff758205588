package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/cache"
	"github.com/volt-ev/fleet-console/internal/config"
	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/logging"
	"github.com/volt-ev/fleet-console/internal/router"
	"github.com/volt-ev/fleet-console/internal/service"
	"github.com/volt-ev/fleet-console/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// The advisory cache is optional: without Redis every count is a fresh
	// backend fetch, which is slower but still correct.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, advisory caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Fleet backend client
	fleet := fleetapi.NewClient(cfg.FleetAPI.BaseURL, cfg.FleetAPI.Timeout(), logger)

	// Service layer
	inventory := service.NewInventoryService(fleet, redisClient, logger)
	realloc := service.NewReallocationService(fleet, inventory, logger)
	catalog := service.NewCatalogService(fleet, redisClient, logger)

	// Initialize WebSocket hub
	hub := websockets.NewHub(logger)
	go hub.Run()

	// Initialize router
	r := router.New(cfg, router.Services{
		Fleet:     fleet,
		Inventory: inventory,
		Realloc:   realloc,
		Catalog:   catalog,
	}, hub, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited properly")
}
