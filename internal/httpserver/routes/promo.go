package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/httpserver/handlers"
	"github.com/enjoypark/companion/internal/httpserver/mw"
)

func init() { Register(registerPromo) }

// Promo validation is brute-forceable, so it carries a per-IP rate limit.
func registerPromo(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             10,
		RefillPerIPPerMin: 30,
		MaxEntries:        10000,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Post("/api/promo/validate", handlers.PromoValidate(d))
	limited.Post("/api/promo/redeem", handlers.PromoRedeem(d))
}
