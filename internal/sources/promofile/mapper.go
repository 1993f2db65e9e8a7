package promofile

import (
	"strings"
	"time"

	"github.com/enjoypark/companion/internal/domain"
)

// Mapper converts authored promo entries to domain.PromoCode values.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPromos converts a parsed promo file into domain promo codes.
// Invalid entries (blank code, out-of-range discount, unparsable dates,
// inverted validity window) are skipped rather than failing the reload.
func (m *Mapper) MapPromos(config *Config) []*domain.PromoCode {
	if config == nil {
		return nil
	}

	now := time.Now()
	promos := make([]*domain.PromoCode, 0, len(config.Promos))
	seen := make(map[string]bool, len(config.Promos))

	for _, entry := range config.Promos {
		code := strings.ToUpper(strings.TrimSpace(entry.Code))
		if code == "" || seen[code] {
			continue
		}
		if entry.DiscountPercent < 1 || entry.DiscountPercent > 100 {
			continue
		}

		from, ok := parseDate(entry.ValidFrom)
		if !ok {
			continue
		}
		until, ok := parseDate(entry.ValidUntil)
		if !ok {
			continue
		}
		if !from.IsZero() && !until.IsZero() && until.Before(from) {
			continue
		}

		seen[code] = true
		promos = append(promos, &domain.PromoCode{
			Code:            code,
			Description:     entry.Description,
			DiscountPercent: entry.DiscountPercent,
			ValidFrom:       from,
			ValidUntil:      until,
			MaxUses:         entry.MaxUses,
			Disabled:        entry.Disabled,
			UpdatedAt:       now,
		})
	}

	return promos
}

// parseDate accepts bare dates and RFC 3339 timestamps; empty means open.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
