package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/logger"
)

type sessionRequest struct {
	Token string `json:"token"`
}

// SessionSet stores the visitor's park account token. Planner refresh
// and history stay no-ops until a token is set.
func SessionSet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			writeError(w, http.StatusBadRequest, "token is required")
			return
		}

		if err := d.Credentials.Set(r.Context(), req.Token); err != nil {
			d.Logger.Error("session save failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save session")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SessionClear drops the stored token.
func SessionClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Credentials.Clear(r.Context()); err != nil {
			d.Logger.Error("session clear failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not clear session")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
