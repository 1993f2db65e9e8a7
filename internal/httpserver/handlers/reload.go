package handlers

import (
	"net/http"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/logger"
)

// Reload triggers a manual reload of the park catalog and promo codes
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Trigger immediate reload for the catalog
		catalogTriggered := false
		select {
		case d.CatalogReloadTrigger <- struct{}{}:
			catalogTriggered = true
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
		}

		// Trigger immediate reload for promos (if enabled)
		promosTriggered := false
		if d.PromoReloadTrigger != nil {
			select {
			case d.PromoReloadTrigger <- struct{}{}:
				promosTriggered = true
				d.Logger.Info("manual promo reload triggered via endpoint",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("promo reload already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		// Determine response based on what was triggered
		if catalogTriggered || promosTriggered {
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		} else {
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
