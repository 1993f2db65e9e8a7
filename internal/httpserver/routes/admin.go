package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
	"github.com/enjoypark/companion/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
			mw.RequireAdminToken(d.AdminToken, d.Logger),
		)

		r.Get("/infra", handlers.Infra(d))
		r.Post("/reload", handlers.Reload(d))

		r.Post("/gate/sign", handlers.GateSign(d))
		r.Get("/gate/qr", handlers.GateQR(d))
		r.Post("/gate/verify", handlers.GateVerify(d))
	})
}
