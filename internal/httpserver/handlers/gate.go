package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/enjoypark/companion/internal/gate"
	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/logger"
)

type gateSignRequest struct {
	TicketID  string `json:"ticket_id"`
	VisitDate string `json:"visit_date"`
	Code      string `json:"code"`
}

type gateSignResponse struct {
	Payload string `json:"payload"`
}

type gateVerifyRequest struct {
	Payload string `json:"payload"`
}

type gateVerifyResponse struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	TicketID  string `json:"ticket_id,omitempty"`
	VisitDate string `json:"visit_date,omitempty"`
	Code      string `json:"code,omitempty"`
}

// GateSign issues a signed gate payload for a ticket.
func GateSign(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Gate == nil {
			writeError(w, http.StatusServiceUnavailable, "gate signing not configured")
			return
		}

		var req gateSignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.TicketID == "" || req.VisitDate == "" || req.Code == "" {
			writeError(w, http.StatusBadRequest, "ticket_id, visit_date and code are required")
			return
		}

		payload, err := d.Gate.Sign(req.TicketID, req.VisitDate, req.Code)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, gateSignResponse{Payload: payload})
	}
}

// GateQR renders the signed payload from ?payload= as a QR code PNG.
func GateQR(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Gate == nil {
			writeError(w, http.StatusServiceUnavailable, "gate signing not configured")
			return
		}

		payload := r.URL.Query().Get("payload")
		if _, err := d.Gate.Verify(payload); err != nil {
			writeError(w, http.StatusBadRequest, "payload is not a valid gate payload")
			return
		}

		png, err := d.Gate.PNG(payload, 0)
		if err != nil {
			d.Logger.Error("gate qr render failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not render qr code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(png)
	}
}

// GateVerify checks a scanned payload. The decision is always 200 so
// gate devices get a fast structured answer either way.
func GateVerify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Gate == nil {
			writeError(w, http.StatusServiceUnavailable, "gate verification not configured")
			return
		}

		var req gateVerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		v, err := d.Gate.Verify(req.Payload)
		if err != nil {
			writeJSON(w, http.StatusOK, gateVerifyResponse{Valid: false, Reason: verifyReason(err)})
			return
		}
		writeJSON(w, http.StatusOK, gateVerifyResponse{
			Valid:     true,
			TicketID:  v.TicketID,
			VisitDate: v.VisitDate,
			Code:      v.Code,
		})
	}
}

func verifyReason(err error) string {
	switch {
	case errors.Is(err, gate.ErrStale):
		return "stale"
	case errors.Is(err, gate.ErrBadSig):
		return "bad_signature"
	case errors.Is(err, gate.ErrBadFormat):
		return "bad_format"
	default:
		return "invalid"
	}
}
