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

// The favorites collection is one JSON blob under a fixed key, read and
// rewritten in full on every mutation. There is no field-level patching;
// the only writer is the visitor's own session, so last write wins.

// GetFavorites reads the full favorites collection. A missing blob is an
// empty collection, not an error.
func (s *Store) GetFavorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	data, err := s.client.Get(ctx, KeyFavorites).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.FavoriteItem{}, nil
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	var favorites []domain.FavoriteItem
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal favorites: %w", err)
	}
	return favorites, nil
}

// AddFavorite snapshots the entity into the collection and persists it.
// Adding an id that is already present is a no-op returning the unchanged
// collection.
func (s *Store) AddFavorite(ctx context.Context, poi *domain.PointOfInterest, now time.Time) ([]domain.FavoriteItem, error) {
	favorites, err := s.GetFavorites(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range favorites {
		if f.ID == poi.ID {
			return favorites, nil
		}
	}

	favorites = append(favorites, domain.NewFavorite(poi, now))
	if err := s.saveFavorites(ctx, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// RemoveFavorite removes the entry with the given id if present and
// persists the result. Removing an absent id is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, id string) ([]domain.FavoriteItem, error) {
	favorites, err := s.GetFavorites(ctx)
	if err != nil {
		return nil, err
	}

	kept := favorites[:0]
	for _, f := range favorites {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favorites) {
		return favorites, nil
	}

	if err := s.saveFavorites(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// IsFavorite reports whether the id is in the collection.
func (s *Store) IsFavorite(ctx context.Context, id string) (bool, error) {
	favorites, err := s.GetFavorites(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) saveFavorites(ctx context.Context, favorites []domain.FavoriteItem) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := s.client.Set(ctx, KeyFavorites, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
