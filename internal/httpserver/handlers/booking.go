package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/logger"
	"github.com/enjoypark/companion/internal/parkapi"
)

// BookShow forwards a show booking to the park backend on behalf of the
// signed-in visitor.
func BookShow(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req parkapi.BookShowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.ShowID == "" || req.Date == "" {
			writeError(w, http.StatusBadRequest, "show_id and date are required")
			return
		}

		resp, err := d.Park.BookShow(r.Context(), req)
		if err != nil {
			if errors.Is(err, parkapi.ErrNoCredential) {
				writeError(w, http.StatusUnauthorized, "sign in to book shows")
				return
			}
			d.Logger.Error("show booking failed",
				logger.String("show_id", req.ShowID), logger.Error(err))
			writeError(w, http.StatusBadGateway, "booking failed")
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}
