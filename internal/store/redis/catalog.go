package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/enjoypark/companion/internal/domain"
)

// The catalog mirror lets the browse screens keep working across restarts
// while the backend is unreachable. The in-memory index stays the primary
// source; everything here is best effort.

// SavePOIsMany mirrors catalog entries in one pipeline.
func (s *Store) SavePOIsMany(ctx context.Context, pois []domain.PointOfInterest) error {
	pipe := s.client.Pipeline()

	for i := range pois {
		data, err := json.Marshal(&pois[i])
		if err != nil {
			return fmt.Errorf("failed to marshal poi %s: %w", pois[i].ID, err)
		}
		pipe.Set(ctx, POIKey(pois[i].ID), data, DefaultCatalogTTL)
		pipe.SAdd(ctx, KeyAllPOIs, pois[i].ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// GetPOI retrieves one mirrored catalog entry.
func (s *Store) GetPOI(ctx context.Context, id string) (*domain.PointOfInterest, error) {
	data, err := s.client.Get(ctx, POIKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("poi not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}

	var poi domain.PointOfInterest
	if err := json.Unmarshal(data, &poi); err != nil {
		return nil, fmt.Errorf("failed to unmarshal poi: %w", err)
	}
	return &poi, nil
}

// GetAllPOIs retrieves the full mirrored catalog. The blobs are fetched
// in one pipeline; entries that cannot be read individually are skipped.
func (s *Store) GetAllPOIs(ctx context.Context) ([]domain.PointOfInterest, error) {
	ids, err := s.client.SMembers(ctx, KeyAllPOIs).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get poi ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.StringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.Get(ctx, POIKey(id))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	pois := make([]domain.PointOfInterest, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var poi domain.PointOfInterest
		if err := json.Unmarshal(data, &poi); err != nil {
			continue
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// DeletePOI removes a mirrored catalog entry.
func (s *Store) DeletePOI(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, POIKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	if err := s.client.SRem(ctx, KeyAllPOIs, id).Err(); err != nil {
		return fmt.Errorf("failed to remove poi from set: %w", err)
	}
	return nil
}
