package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enjoypark/companion/internal/domain"
)

// SavePromo stores a promo code.
func (s *Store) SavePromo(ctx context.Context, promo *domain.PromoCode) error {
	data, err := json.Marshal(promo)
	if err != nil {
		return fmt.Errorf("failed to marshal promo: %w", err)
	}

	if err := s.client.Set(ctx, PromoKey(promo.Code), data, DefaultPromoTTL).Err(); err != nil {
		return fmt.Errorf("failed to save promo: %w", err)
	}
	if err := s.client.SAdd(ctx, KeyAllPromos, promo.Code).Err(); err != nil {
		return fmt.Errorf("failed to add promo to set: %w", err)
	}
	return nil
}

// GetPromo retrieves a promo code. Unknown codes return (nil, nil).
func (s *Store) GetPromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	data, err := s.client.Get(ctx, PromoKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get promo: %w", err)
	}

	var promo domain.PromoCode
	if err := json.Unmarshal(data, &promo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal promo: %w", err)
	}
	return &promo, nil
}

// GetAllPromos retrieves every known promo code. The blobs are fetched
// in one pipeline; entries that cannot be read individually are skipped.
func (s *Store) GetAllPromos(ctx context.Context) ([]*domain.PromoCode, error) {
	codes, err := s.client.SMembers(ctx, KeyAllPromos).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get promo codes: %w", err)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.StringCmd, len(codes))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, code := range codes {
			cmds[i] = pipe.Get(ctx, PromoKey(code))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get promos: %w", err)
	}

	promos := make([]*domain.PromoCode, 0, len(codes))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var promo domain.PromoCode
		if err := json.Unmarshal(data, &promo); err != nil {
			continue
		}
		promos = append(promos, &promo)
	}
	return promos, nil
}

// DeletePromo removes a promo code.
func (s *Store) DeletePromo(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, PromoKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete promo: %w", err)
	}
	if err := s.client.SRem(ctx, KeyAllPromos, code).Err(); err != nil {
		return fmt.Errorf("failed to remove promo from set: %w", err)
	}
	return nil
}

// SavePromosMany stores multiple promo codes in one pipeline.
func (s *Store) SavePromosMany(ctx context.Context, promos []*domain.PromoCode) error {
	pipe := s.client.Pipeline()

	for _, promo := range promos {
		data, err := json.Marshal(promo)
		if err != nil {
			return fmt.Errorf("failed to marshal promo %s: %w", promo.Code, err)
		}
		pipe.Set(ctx, PromoKey(promo.Code), string(data), DefaultPromoTTL)
		pipe.SAdd(ctx, KeyAllPromos, promo.Code)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save promos: %w", err)
	}
	return nil
}

// Sentinel errors returned by IncrementPromoUse so callers can map
// them to a decision instead of a generic failure.
var (
	ErrPromoNotFound  = errors.New("promo not found")
	ErrPromoExhausted = errors.New("promo exhausted")
)

// incrementRetries bounds the optimistic-lock loop on redemption.
const incrementRetries = 5

// IncrementPromoUse consumes one use of a code. The counter check and
// the bump run under WATCH, so two concurrent redemptions of the last
// remaining use cannot both succeed: the loser re-reads the committed
// counter and gets ErrPromoExhausted.
func (s *Store) IncrementPromoUse(ctx context.Context, code string) (*domain.PromoCode, error) {
	key := PromoKey(code)
	var updated *domain.PromoCode

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrPromoNotFound
			}
			return fmt.Errorf("failed to get promo: %w", err)
		}

		var promo domain.PromoCode
		if err := json.Unmarshal(data, &promo); err != nil {
			return fmt.Errorf("failed to unmarshal promo: %w", err)
		}
		if promo.MaxUses > 0 && promo.Uses >= promo.MaxUses {
			return ErrPromoExhausted
		}

		promo.Uses++
		promo.UpdatedAt = time.Now()

		buf, err := json.Marshal(&promo)
		if err != nil {
			return fmt.Errorf("failed to marshal promo: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(buf), DefaultPromoTTL)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &promo
		return nil
	}

	for attempt := 0; attempt < incrementRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to redeem promo %s: too much contention", code)
}
