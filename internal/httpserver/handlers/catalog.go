package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/httpserver/deps"
)

type catalogResponse struct {
	Items      []domain.PointOfInterest `json:"items"`
	Count      int                      `json:"count"`
	LastReload string                   `json:"last_reload,omitempty"`
}

// Catalog returns every point of interest, sorted by name.
func Catalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalogResp(d, d.Catalog.All()))
	}
}

// CatalogByKind returns the points of interest of one kind
// (attraction, show, restaurant, shop, service).
func CatalogByKind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := domain.POIType(chi.URLParam(r, "kind"))
		if !domain.ValidPOIType(kind) {
			writeError(w, http.StatusBadRequest, "unknown catalog kind")
			return
		}
		writeJSON(w, http.StatusOK, catalogResp(d, d.Catalog.ByType(kind)))
	}
}

func catalogResp(d deps.Deps, items []domain.PointOfInterest) catalogResponse {
	resp := catalogResponse{Items: items, Count: len(items)}
	if last := d.Catalog.LastReload(); !last.IsZero() {
		resp.LastReload = last.Format(time.RFC3339)
	}
	return resp
}
