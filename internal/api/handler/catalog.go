package handler

import (
	"net/http"

	"github.com/volt-ev/fleet-console/internal/service"
)

// CatalogHandler serves the derived model/brand pick-lists
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleModels lists the distinct vehicle models.
func (h *CatalogHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	values, err := h.catalog.Models(r.Context())
	if err != nil {
		respondFleetError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"models": values})
}

// HandleBrands lists the distinct vehicle brands.
func (h *CatalogHandler) HandleBrands(w http.ResponseWriter, r *http.Request) {
	values, err := h.catalog.Brands(r.Context())
	if err != nil {
		respondFleetError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"brands": values})
}
