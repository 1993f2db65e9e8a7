package handlers

import (
	"net/http"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/httpserver/deps"
)

type historyResponse struct {
	Items []domain.HistoryItem `json:"items"`
	Count int                  `json:"count"`
}

// History returns the combined tickets and orders feed, newest first.
// Backend trouble yields an empty feed, never an error response.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := d.History.GetHistory(r.Context())
		writeJSON(w, http.StatusOK, historyResponse{Items: items, Count: len(items)})
	}
}
