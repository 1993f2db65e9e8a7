package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SaveCredential stores the bearer token under the fixed credential key.
func (s *Store) SaveCredential(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, KeyCredential, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// GetCredential reads the stored bearer token. An absent credential is
// returned as the empty string, not an error; callers short-circuit on it.
func (s *Store) GetCredential(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, KeyCredential).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get credential: %w", err)
	}
	return token, nil
}

// ClearCredential removes the stored bearer token (sign-out).
func (s *Store) ClearCredential(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyCredential).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
