// Package promo validates and redeems the discount codes authored in the
// promo file.
package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/logger"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

// Result is the outcome of a promo lookup.
type Result struct {
	Code            string               `json:"code"`
	Decision        domain.PromoDecision `json:"decision"`
	DiscountPercent int                  `json:"discount_percent,omitempty"`
	Description     string               `json:"description,omitempty"`
}

// Service evaluates promo codes against the store.
type Service struct {
	store  *redisstore.Store
	logger logger.Logger
	now    func() time.Time
}

// NewService creates a promo service.
func NewService(store *redisstore.Store, log logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// Validate evaluates a code without consuming a use. Storage failures
// degrade to an unknown-code result; they are logged, not surfaced.
func (s *Service) Validate(ctx context.Context, code string) Result {
	code = strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.store.GetPromo(ctx, code)
	if err != nil {
		s.logger.Warn("promo lookup failed", logger.String("code", code), logger.Error(err))
		return Result{Code: code, Decision: domain.PromoUnknown}
	}
	if promo == nil {
		return Result{Code: code, Decision: domain.PromoUnknown}
	}

	decision := promo.Evaluate(s.now())
	res := Result{Code: code, Decision: decision}
	if decision == domain.PromoOK {
		res.DiscountPercent = promo.DiscountPercent
		res.Description = promo.Description
	}
	return res
}

// Redeem validates a code and, when redeemable, consumes one use.
func (s *Service) Redeem(ctx context.Context, code string) Result {
	res := s.Validate(ctx, code)
	if res.Decision != domain.PromoOK {
		return res
	}

	if _, err := s.store.IncrementPromoUse(ctx, res.Code); err != nil {
		if errors.Is(err, redisstore.ErrPromoExhausted) {
			s.logger.Info("promo exhausted during redemption", logger.String("code", res.Code))
			return Result{Code: res.Code, Decision: domain.PromoExhausted}
		}
		s.logger.Warn("promo redemption failed", logger.String("code", res.Code), logger.Error(err))
		return Result{Code: res.Code, Decision: domain.PromoUnknown}
	}

	s.logger.Info("promo redeemed", logger.String("code", res.Code))
	return res
}
