package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Post("/api/session", handlers.SessionSet(d))
	r.Delete("/api/session", handlers.SessionClear(d))
	r.Post("/api/bookings/shows", handlers.BookShow(d))
}
