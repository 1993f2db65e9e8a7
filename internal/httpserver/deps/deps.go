package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enjoypark/companion/internal/credentials"
	"github.com/enjoypark/companion/internal/gate"
	"github.com/enjoypark/companion/internal/history"
	"github.com/enjoypark/companion/internal/index"
	"github.com/enjoypark/companion/internal/logger"
	"github.com/enjoypark/companion/internal/parkapi"
	"github.com/enjoypark/companion/internal/planner"
	"github.com/enjoypark/companion/internal/promo"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access operational endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	AdminToken   string   // bearer token for /admin routes (empty = admin disabled)

	RedisClient *redis.Client         // Redis client connection
	Store       *redisstore.Store     // Persisted favorites / credential / promo blobs
	Catalog     *index.MemoryIndex    // In-memory park catalog
	Planner     *planner.Store        // Day planner state
	History     *history.Aggregator   // Tickets + orders feed
	Credentials *credentials.Provider // Visitor session token
	Promo       *promo.Service        // Promo code validation
	Gate        *gate.Validator       // QR gate payloads (nil if no secret configured)
	Park        *parkapi.Client       // Park backend client

	CatalogReloadTrigger chan struct{} // Channel to trigger manual catalog reload
	PromoReloadTrigger   chan struct{} // Channel to trigger manual promo reload (nil if promos disabled)
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
