package scheduler

import (
	"context"
	"time"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/index"
	"github.com/enjoypark/companion/internal/logger"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

// CatalogSource fetches the full point-of-interest catalog.
// *parkapi.Client satisfies it.
type CatalogSource interface {
	All(ctx context.Context) ([]domain.PointOfInterest, error)
}

// CatalogReloader keeps the in-memory catalog index fresh from the park
// backend and mirrors it to Redis so browse screens survive restarts
// while the backend is unreachable.
type CatalogReloader struct {
	source        CatalogSource
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a catalog reloader.
func NewCatalogReloader(
	source CatalogSource,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		source:        source,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once and begins the periodic refresh. A failed
// initial load falls back to the Redis mirror rather than aborting; the
// service can come up while the park backend is down.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Warn("initial catalog load failed, trying redis mirror",
			logger.Error(err))
		cr.syncFromMirror(ctx)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload fetches the catalog and updates index + mirror.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	pois, err := cr.source.All(ctx)
	if err != nil {
		return err
	}

	cr.index.UpdateAll(pois)
	cr.logger.Info("catalog reloaded", logger.Int("pois", len(pois)))

	// Mirror to Redis, best effort; the memory index stays primary.
	if cr.store != nil {
		if err := cr.store.SavePOIsMany(ctx, pois); err != nil {
			cr.logger.Warn("failed to mirror catalog to redis", logger.Error(err))
		}
	}

	return nil
}

// syncFromMirror seeds the index from the Redis mirror on startup.
func (cr *CatalogReloader) syncFromMirror(ctx context.Context) {
	if cr.store == nil {
		return
	}

	pois, err := cr.store.GetAllPOIs(ctx)
	if err != nil {
		cr.logger.Warn("failed to read catalog mirror", logger.Error(err))
		return
	}
	if len(pois) == 0 {
		cr.logger.Warn("catalog mirror is empty, browse screens degraded until backend returns")
		return
	}

	cr.index.UpdateAll(pois)
	cr.logger.Info("catalog seeded from redis mirror", logger.Int("pois", len(pois)))
}
