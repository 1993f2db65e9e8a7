package domain

import "time"

// PromoDecision is the outcome of evaluating a promo code.
type PromoDecision string

const (
	PromoOK        PromoDecision = "ok"
	PromoUnknown   PromoDecision = "unknown"
	PromoDisabled  PromoDecision = "disabled"
	PromoNotYet    PromoDecision = "not_yet_valid"
	PromoExpired   PromoDecision = "expired"
	PromoExhausted PromoDecision = "exhausted"
)

// PromoCode is a discount code as authored by the promo file and tracked
// in the store. Code is the canonical identifier (upper-cased).
type PromoCode struct {
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent int       `json:"discount_percent"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	MaxUses         int       `json:"max_uses"` // 0 = unlimited
	Uses            int       `json:"uses"`
	Disabled        bool      `json:"disabled"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Evaluate decides whether the code is redeemable at the given instant.
func (p *PromoCode) Evaluate(now time.Time) PromoDecision {
	switch {
	case p.Disabled:
		return PromoDisabled
	case !p.ValidFrom.IsZero() && now.Before(p.ValidFrom):
		return PromoNotYet
	case !p.ValidUntil.IsZero() && now.After(p.ValidUntil):
		return PromoExpired
	case p.MaxUses > 0 && p.Uses >= p.MaxUses:
		return PromoExhausted
	}
	return PromoOK
}
