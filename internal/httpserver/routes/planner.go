package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
)

func init() { Register(registerPlanner) }

func registerPlanner(r chi.Router, d deps.Deps) {
	r.Route("/api/planner", func(r chi.Router) {
		r.Get("/", handlers.PlannerList(d))
		r.Post("/", handlers.PlannerAdd(d))
		r.Post("/refresh", handlers.PlannerRefresh(d))
		r.Delete("/{id}", handlers.PlannerRemove(d))
	})
}
