package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCatalogTTL bounds how long a mirrored catalog entry survives
	// without being refreshed by the reloader.
	DefaultCatalogTTL = 48 * time.Hour
	// DefaultPromoTTL bounds how long a promo code survives without being
	// re-confirmed by the promo file reload.
	DefaultPromoTTL = 30 * 24 * time.Hour
)

// Store handles all Redis persistence for the companion service: the
// favorites blob, the stored credential, the promo codes, and the catalog
// mirror.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
