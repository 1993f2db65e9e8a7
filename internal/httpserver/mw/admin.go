package mw

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/enjoypark/companion/internal/logger"
)

// RequireAdminToken gates admin routes behind a static bearer token.
// With no token configured every request is rejected, the admin surface
// stays dark instead of open.
func RequireAdminToken(token string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				log.Debug("RequireAdminToken: no token configured, admin routes disabled")
				w.WriteHeader(http.StatusNotFound)
				return
			}

			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("RequireAdminToken: rejected request",
					logger.String("remote_ip", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
