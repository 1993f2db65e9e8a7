package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", handlers.FavoritesList(d))
		r.Post("/", handlers.FavoriteAdd(d))
		r.Get("/{id}/status", handlers.FavoriteStatus(d))
		r.Delete("/{id}", handlers.FavoriteRemove(d))
	})
}
