package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/enjoypark/companion/internal/httpserver/deps"
)

type promoRequest struct {
	Code string `json:"code"`
}

// PromoValidate checks a promo code without consuming a use.
// The decision is always 200; rejection reasons travel in the body.
func PromoValidate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
			writeError(w, http.StatusBadRequest, "code is required")
			return
		}
		writeJSON(w, http.StatusOK, d.Promo.Validate(r.Context(), req.Code))
	}
}

// PromoRedeem validates a promo code and consumes one use on success.
func PromoRedeem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
			writeError(w, http.StatusBadRequest, "code is required")
			return
		}
		writeJSON(w, http.StatusOK, d.Promo.Redeem(r.Context(), req.Code))
	}
}
