package scheduler

import (
	"context"
	"time"

	"github.com/enjoypark/companion/internal/logger"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

// DefaultGCThreshold is how long a promo stays around after it was
// disabled or its validity window closed before it is deleted.
const DefaultGCThreshold = 30 * 24 * time.Hour

// GarbageCollector deletes promo codes that have been disabled or expired
// for longer than the retention threshold.
type GarbageCollector struct {
	store     *redisstore.Store
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewGarbageCollector creates a garbage collector.
func NewGarbageCollector(
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start runs a collection immediately, then on the interval.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector.
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect deletes promos whose disabled/expired state has outlived the
// retention threshold.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	promos, err := gc.store.GetAllPromos(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	deleted := 0

	for _, p := range promos {
		var staleSince time.Time
		switch {
		case p.Disabled:
			staleSince = p.UpdatedAt
		case !p.ValidUntil.IsZero() && now.After(p.ValidUntil):
			staleSince = p.ValidUntil
		default:
			continue
		}

		if staleSince.IsZero() || now.Sub(staleSince) < gc.threshold {
			continue
		}

		if err := gc.store.DeletePromo(ctx, p.Code); err != nil {
			gc.logger.Warn("failed to delete promo",
				logger.String("code", p.Code),
				logger.Error(err))
			continue
		}

		gc.logger.Info("garbage collected promo",
			logger.String("code", p.Code),
			logger.String("stale_for", now.Sub(staleSince).String()))
		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed", logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no promos to garbage collect")
	}
	return nil
}
