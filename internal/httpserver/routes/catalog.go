package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Get("/api/catalog", handlers.Catalog(d))
	r.Get("/api/catalog/{kind}", handlers.CatalogByKind(d))
}
