package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/volt-ev/fleet-console/internal/api/handler"
	"github.com/volt-ev/fleet-console/internal/config"
	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/middleware"
	"github.com/volt-ev/fleet-console/internal/service"
	"github.com/volt-ev/fleet-console/internal/websockets"
)

// Router handles HTTP routing
type Router struct {
	mux *mux.Router
	hub *websockets.Hub
	log *zap.Logger
}

// Services bundles the wired service layer for route construction.
type Services struct {
	Fleet     *fleetapi.Client
	Inventory *service.InventoryService
	Realloc   *service.ReallocationService
	Catalog   *service.CatalogService
}

// New creates a new router
func New(cfg *config.Config, svcs Services, hub *websockets.Hub, log *zap.Logger) *Router {
	r := &Router{
		mux: mux.NewRouter(),
		hub: hub,
		log: log,
	}
	r.setupRoutes(cfg, svcs)
	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes(cfg *config.Config, svcs Services) {
	reallocHandler := handler.NewReallocationHandler(svcs.Realloc, r.hub, r.log)
	inventoryHandler := handler.NewInventoryHandler(svcs.Inventory)
	stationHandler := handler.NewStationHandler(svcs.Fleet)
	catalogHandler := handler.NewCatalogHandler(svcs.Catalog)

	// Public routes
	r.mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.mux.HandleFunc("/ws", r.handleWebSocket)

	// Protected routes
	api := r.mux.PathPrefix("/api").Subrouter()
	api.Use(
		middleware.Logger(r.log),
		middleware.RateLimit(cfg.Server.RateLimit, r.log),
		middleware.Auth(cfg.JWT),
	)

	api.HandleFunc("/inventory/count", inventoryHandler.HandleCount).Methods(http.MethodGet)
	api.HandleFunc("/reallocations/assign", reallocHandler.HandleAssign).Methods(http.MethodPost)
	api.HandleFunc("/reallocations/withdraw", reallocHandler.HandleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/reallocations/promote", reallocHandler.HandlePromote).Methods(http.MethodPost)
	api.HandleFunc("/stations", stationHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/catalog/models", catalogHandler.HandleModels).Methods(http.MethodGet)
	api.HandleFunc("/catalog/brands", catalogHandler.HandleBrands).Methods(http.MethodGet)
}

// handleWebSocket upgrades console clients onto the push channel
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	operatorID := req.URL.Query().Get("operator_id")
	if operatorID == "" {
		http.Error(w, "operator_id is required", http.StatusBadRequest)
		return
	}

	clientTypeStr := req.URL.Query().Get("client_type")
	if clientTypeStr == "" {
		http.Error(w, "client_type is required", http.StatusBadRequest)
		return
	}

	clientType := websockets.ClientType(clientTypeStr)
	switch clientType {
	case websockets.ClientTypeAdmin, websockets.ClientTypeOperator, websockets.ClientTypeDashboard:
		// Valid client type
	default:
		http.Error(w, "invalid client_type", http.StatusBadRequest)
		return
	}

	conn, err := websockets.Upgrader.Upgrade(w, req, nil)
	if err != nil {
		// The upgrader already wrote the error to the response.
		return
	}

	websockets.ServeWs(r.hub, conn, operatorID, clientType)
}
