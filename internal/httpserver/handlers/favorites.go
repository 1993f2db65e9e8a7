package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/logger"
)

type favoritesResponse struct {
	Items []domain.FavoriteItem `json:"items"`
	Count int                   `json:"count"`
}

type favoriteAddRequest struct {
	POIID string `json:"poi_id"`
}

type favoriteStatusResponse struct {
	Favorite bool `json:"favorite"`
}

// FavoritesList returns the saved favorites. Storage trouble degrades to
// an empty list rather than failing the request.
func FavoritesList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := d.Store.GetFavorites(r.Context())
		if err != nil {
			d.Logger.Warn("favorites read failed", logger.Error(err))
			items = []domain.FavoriteItem{}
		}
		writeJSON(w, http.StatusOK, favoritesResponse{Items: items, Count: len(items)})
	}
}

// FavoriteAdd saves a catalog point of interest as a favorite.
// Adding an existing favorite is a no-op and still returns the list.
func FavoriteAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req favoriteAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.POIID == "" {
			writeError(w, http.StatusBadRequest, "poi_id is required")
			return
		}

		poi, ok := d.Catalog.Get(req.POIID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown point of interest")
			return
		}

		items, err := d.Store.AddFavorite(r.Context(), &poi, d.Now())
		if err != nil {
			d.Logger.Error("favorite add failed", logger.String("poi_id", req.POIID), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save favorite")
			return
		}
		writeJSON(w, http.StatusCreated, favoritesResponse{Items: items, Count: len(items)})
	}
}

// FavoriteRemove removes one favorite by id. Removing an id that is not
// saved is not an error.
func FavoriteRemove(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing favorite id")
			return
		}

		items, err := d.Store.RemoveFavorite(r.Context(), id)
		if err != nil {
			d.Logger.Error("favorite remove failed", logger.String("id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not remove favorite")
			return
		}
		writeJSON(w, http.StatusOK, favoritesResponse{Items: items, Count: len(items)})
	}
}

// FavoriteStatus reports whether the given id is saved as a favorite.
func FavoriteStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		saved, err := d.Store.IsFavorite(r.Context(), id)
		if err != nil {
			d.Logger.Warn("favorite status read failed", logger.String("id", id), logger.Error(err))
		}
		writeJSON(w, http.StatusOK, favoriteStatusResponse{Favorite: saved})
	}
}
