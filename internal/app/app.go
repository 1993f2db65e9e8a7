package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/enjoypark/companion/internal/config"
	"github.com/enjoypark/companion/internal/credentials"
	"github.com/enjoypark/companion/internal/gate"
	"github.com/enjoypark/companion/internal/history"
	"github.com/enjoypark/companion/internal/httpserver"
	"github.com/enjoypark/companion/internal/httpserver/deps"
	"github.com/enjoypark/companion/internal/index"
	"github.com/enjoypark/companion/internal/logger"
	"github.com/enjoypark/companion/internal/parkapi"
	"github.com/enjoypark/companion/internal/planner"
	"github.com/enjoypark/companion/internal/promo"
	"github.com/enjoypark/companion/internal/redis"
	"github.com/enjoypark/companion/internal/scheduler"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
	"github.com/enjoypark/companion/internal/version"
)

type App struct {
	cfg             *config.Config
	logger          logger.Logger
	server          *httpserver.Server
	redisClient     *goredis.Client
	catalog         *index.MemoryIndex
	catalogReloader *scheduler.CatalogReloader
	promoReloader   *scheduler.PromoReloader
	gc              *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Persisted state (favorites, session, promos, catalog mirror)
	store := redisstore.NewStore(redisClient)

	// Visitor session token, used by the park client for authed calls
	creds := credentials.NewProvider(store, loggerClient)
	park := parkapi.NewClient(cfg.ParkAPIBaseURL, creds, cfg.ParkAPITimeout)

	// Planner and history are built on top of the park client
	plannerStore := planner.NewStore(park, loggerClient)
	historyAgg := history.NewAggregator(park, loggerClient)

	// In-memory park catalog, kept fresh by the catalog reloader
	catalog := index.NewMemoryIndex()
	catalogReloadTrigger := make(chan struct{}, 1)
	catalogReloader := scheduler.NewCatalogReloader(
		park,
		store,
		catalog,
		loggerClient,
		cfg.CatalogReloadInterval,
		catalogReloadTrigger,
	)

	// Promo codes come from an authored yaml file (if configured)
	var promoReloader *scheduler.PromoReloader
	var promoReloadTrigger chan struct{}
	if cfg.PromoFile != "" {
		loggerClient.Info("promo file configured, initializing promo reloader",
			logger.String("file", cfg.PromoFile))
		promoReloadTrigger = make(chan struct{}, 1)
		promoReloader = scheduler.NewPromoReloader(
			cfg.PromoFile,
			store,
			loggerClient,
			cfg.PromoReloadInterval,
			promoReloadTrigger,
		)
	} else {
		loggerClient.Info("promo file not configured, promo codes disabled")
	}
	promoService := promo.NewService(store, loggerClient)

	// Garbage collector purges dead promo codes
	gc := scheduler.NewGarbageCollector(
		store,
		loggerClient,
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	// Gate QR signing/verification (if a secret is configured)
	var gateValidator *gate.Validator
	if cfg.GateSecret != "" {
		gateValidator = gate.NewValidator(cfg.GateSecret)
	} else {
		loggerClient.Info("gate secret not configured, gate endpoints disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Version:              version.Version,
		Commit:               version.Commit,
		BuildDate:            version.BuildDate,
		GoVersion:            version.GoVersion,
		TimeNow:              time.Now,
		AllowedHosts:         cfg.AllowedHosts,
		AllowedCIDRS:         cfg.AllowedCIDRS,
		TrustProxy:           cfg.TrustProxy,
		AdminToken:           cfg.AdminToken,
		RedisClient:          redisClient,
		Store:                store,
		Catalog:              catalog,
		Planner:              plannerStore,
		History:              historyAgg,
		Credentials:          creds,
		Promo:                promoService,
		Gate:                 gateValidator,
		Park:                 park,
		CatalogReloadTrigger: catalogReloadTrigger,
		PromoReloadTrigger:   promoReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:             cfg,
		logger:          loggerClient,
		server:          server,
		redisClient:     redisClient,
		catalog:         catalog,
		catalogReloader: catalogReloader,
		promoReloader:   promoReloader,
		gc:              gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting EnjoyPark companion v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("companion %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads the park catalog and starts periodic refresh)
	if err := a.catalogReloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.CatalogReloadInterval))

	// Start promo reloader (if enabled)
	if a.promoReloader != nil {
		if err := a.promoReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start promo reloader: %w", err)
		}
		a.logger.Info("promo reloader started",
			logger.Duration("interval", a.cfg.PromoReloadInterval))
	}

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop schedulers
	a.catalogReloader.Stop()
	if a.promoReloader != nil {
		a.promoReloader.Stop()
	}
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ companion stopped cleanly")
	return nil
}
