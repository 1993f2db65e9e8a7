package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/logger"
	"github.com/enjoypark/companion/internal/sources/promofile"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

// PromoReloader periodically re-reads the promos.yaml file and reconciles
// the promo store with it.
type PromoReloader struct {
	loader        *promofile.Loader
	mapper        *promofile.Mapper
	store         *redisstore.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPromoReloader creates a promo reloader.
func NewPromoReloader(
	promoFile string,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PromoReloader {
	return &PromoReloader{
		loader:        promofile.NewLoader(promoFile),
		mapper:        promofile.NewMapper(),
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the promo file immediately, then on an interval and on
// manual trigger.
func (pr *PromoReloader) Start(ctx context.Context) error {
	if err := pr.Reload(ctx); err != nil {
		return fmt.Errorf("initial promo reload failed: %w", err)
	}

	ticker := time.NewTicker(pr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload promos", logger.Error(err))
				}
			case <-pr.manualTrigger:
				pr.logger.Info("manual promo reload triggered")
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload promos", logger.Error(err))
				}
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (pr *PromoReloader) Stop() {
	close(pr.stopCh)
}

// Reload parses the promo file and reconciles the store: authored codes
// are upserted with their redemption counters preserved, codes that left
// the file are soft-disabled for the garbage collector.
func (pr *PromoReloader) Reload(ctx context.Context) error {
	config, err := pr.loader.Load()
	if err != nil {
		return err
	}

	authored := pr.mapper.MapPromos(config)
	pr.logger.Info("loaded promo file", logger.Int("codes", len(authored)))

	existing, err := pr.store.GetAllPromos(ctx)
	if err != nil {
		return fmt.Errorf("failed to read existing promos: %w", err)
	}
	existingByCode := make(map[string]*domain.PromoCode, len(existing))
	for _, p := range existing {
		existingByCode[p.Code] = p
	}

	authoredCodes := make(map[string]bool, len(authored))
	for _, p := range authored {
		authoredCodes[p.Code] = true
		if prev, ok := existingByCode[p.Code]; ok {
			p.Uses = prev.Uses
		}
	}

	// Codes removed from the file are disabled, not deleted; the GC
	// purges them after the retention window.
	var disabled []*domain.PromoCode
	for _, prev := range existingByCode {
		if authoredCodes[prev.Code] || prev.Disabled {
			continue
		}
		prev.Disabled = true
		prev.UpdatedAt = time.Now()
		disabled = append(disabled, prev)
	}
	if len(disabled) > 0 {
		pr.logger.Info("disabling promos removed from file", logger.Int("count", len(disabled)))
	}

	if err := pr.store.SavePromosMany(ctx, append(authored, disabled...)); err != nil {
		return fmt.Errorf("failed to save promos: %w", err)
	}
	return nil
}
