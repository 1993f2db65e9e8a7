// Package gate signs and verifies the QR payloads shown at the park
// entrance. Gate staff scan the visitor's code and post the payload here
// for verification before waving them through.
package gate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// AllowedDrift is how far a payload timestamp may deviate from the
// validator's clock. Codes are regenerated by the app, so a short window
// is enough and limits replay.
const AllowedDrift = 5 * time.Minute

var (
	ErrBadFormat  = errors.New("gate: invalid QR format")
	ErrStale      = errors.New("gate: code expired or from the future")
	ErrBadSig     = errors.New("gate: invalid signature")
	ErrNoSecret   = errors.New("gate: signing secret not configured")
	ErrBadSegment = errors.New("gate: payload segment contains separator")
)

// Validation is the verified content of a gate payload.
type Validation struct {
	TicketID  string `json:"ticket_id"`
	VisitDate string `json:"visit_date"`
	Code      string `json:"code"`
}

// Validator signs and verifies payloads of the form
// ticketID|visitDate|code|timestamp|signature.
type Validator struct {
	secret []byte
	now    func() time.Time
}

// NewValidator creates a validator with the shared gate secret.
func NewValidator(secret string) *Validator {
	return &Validator{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Sign builds a payload for the given ticket, stamped with the current
// time.
func (v *Validator) Sign(ticketID, visitDate, code string) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrNoSecret
	}
	for _, seg := range []string{ticketID, visitDate, code} {
		if strings.Contains(seg, "|") {
			return "", ErrBadSegment
		}
	}

	ts := strconv.FormatInt(v.now().Unix(), 10)
	data := fmt.Sprintf("%s|%s|%s|%s", ticketID, visitDate, code, ts)
	return data + "|" + v.signature(data), nil
}

// Verify checks format, timestamp drift, and signature, in that order.
func (v *Validator) Verify(payload string) (*Validation, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 5 {
		return nil, ErrBadFormat
	}
	ticketID, visitDate, code, tsStr, sig := parts[0], parts[1], parts[2], parts[3], parts[4]

	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return nil, ErrBadFormat
	}
	drift := v.now().Unix() - ts
	if drift < 0 {
		drift = -drift
	}
	if drift > int64(AllowedDrift.Seconds()) {
		return nil, ErrStale
	}

	data := fmt.Sprintf("%s|%s|%s|%s", ticketID, visitDate, code, tsStr)
	if !hmac.Equal([]byte(sig), []byte(v.signature(data))) {
		return nil, ErrBadSig
	}

	return &Validation{
		TicketID:  ticketID,
		VisitDate: visitDate,
		Code:      code,
	}, nil
}

// PNG renders a signed payload as a QR image for display in the app.
func (v *Validator) PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("gate: encode qr: %w", err)
	}
	return png, nil
}

func (v *Validator) signature(data string) string {
	h := hmac.New(sha256.New, v.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
