// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/adapter/cache"
	"github.com/onyxdragun/yardsalefndr/internal/adapter/messaging"
	"github.com/onyxdragun/yardsalefndr/internal/adapter/storage"
	"github.com/onyxdragun/yardsalefndr/internal/config"
	"github.com/onyxdragun/yardsalefndr/internal/platform/logger"
	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
	"github.com/onyxdragun/yardsalefndr/internal/server"
	"github.com/onyxdragun/yardsalefndr/internal/server/handlers"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
	accountService "github.com/onyxdragun/yardsalefndr/internal/service/account"
	categoryService "github.com/onyxdragun/yardsalefndr/internal/service/category"
	favoriteService "github.com/onyxdragun/yardsalefndr/internal/service/favorite"
	geoService "github.com/onyxdragun/yardsalefndr/internal/service/geo"
	listingService "github.com/onyxdragun/yardsalefndr/internal/service/listing"
	searchService "github.com/onyxdragun/yardsalefndr/internal/service/search"
)

// keyValueStore is the cache surface shared by redis and the in-memory fallback
type keyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
}

func main() {
	// A missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	defer zl.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	location, err := cfg.Search.Location()
	if err != nil {
		zl.Fatal("invalid timezone", zap.Error(err))
	}

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	kv, stopKV, err := initCache(ctx, cfg.Redis, zl)
	if err != nil {
		zl.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer stopKV()

	var (
		publisher  listingService.Publisher = messaging.NopPublisher{}
		subscriber handlers.Subscriber      = messaging.NopSubscriber{}
	)
	if cfg.NATS.URL != "" {
		natsConn, err := initNATS(cfg.NATS, zl)
		if err != nil {
			zl.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer natsConn.Close()
		publisher = messaging.NewPublisher(natsConn)
		subscriber = messaging.NewSubscriber(natsConn)
	} else {
		zl.Info("NATS_URL not set; garage sale events are not published")
	}

	m := metrics.New("yardsalefndr")

	// Initialize storage adapters
	listingStore := storage.NewListingStore(db)
	categoryStore := storage.NewCategoryStore(db)
	favoriteStore := storage.NewFavoriteStore(db, listingStore)
	accountStore := storage.NewAccountStore(db)

	// Initialize services
	searchCfg := searchService.Config{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		Location:        location,
	}
	search := searchService.NewService(listingStore, searchCfg, zl.Named("search"))
	accounts := accountService.NewService(accountStore, zl.Named("account"))
	categories := categoryService.NewService(categoryStore, kv, cfg.Listing.CategoryCacheTTL, zl.Named("category"))
	favorites := favoriteService.NewService(favoriteStore, listingStore, searchCfg, zl.Named("favorite"))
	listings := listingService.NewService(
		listingStore,
		categoryStore,
		accounts,
		publisher,
		kv,
		m,
		listingService.Config{
			ViewDedupTTL: cfg.Listing.ViewDedupTTL,
			Location:     location,
		},
		zl.Named("listing"),
	)
	geocoder := geoService.NewGoogleGeocoder(geoService.GoogleConfig{
		APIKey:  cfg.Geocoder.APIKey,
		BaseURL: cfg.Geocoder.BaseURL,
		Timeout: cfg.Geocoder.Timeout,
	}, zl.Named("geocoder"))

	// Start the expiry sweeper
	sweeper := listingService.NewSweeper(listings, cfg.Cron.SweepInterval, zl.Named("sweeper"))
	sweeper.Start()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go cleanupLimiter(ctx, limiter)

	if cfg.Cron.Secret == "" {
		zl.Warn("CRON_SECRET not set; admin endpoints are disabled")
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Logger:      zl.Named("http"),
		Metrics:     m,
		Auth:        middleware.NewAuthenticator(cfg.Auth.JWTSecret),
		RateLimiter: limiter,
		CronSecret:  cfg.Cron.Secret,

		Search:     handlers.NewSearchHandler(search, favorites, m, zl),
		Listings:   handlers.NewListingHandler(listings, zl),
		Favorites:  handlers.NewFavoriteHandler(favorites, zl),
		Categories: handlers.NewCategoryHandler(categories, zl),
		Usage:      handlers.NewUsageHandler(accounts, zl),
		Geo:        handlers.NewGeoHandler(geocoder, zl),
		Health: handlers.NewHealthHandler(cfg.Environment, zl,
			handlers.HealthCheck{Name: "database", Pinger: db},
			handlers.HealthCheck{Name: "cache", Pinger: kv},
		),
		Admin: handlers.NewAdminHandler(listings, search, zl),
		Feed:  handlers.NewFeedHandler(subscriber, handlers.DefaultWebSocketConfig(), zl),
	})

	// Start HTTP server
	go func() {
		zl.Info("starting HTTP server", zap.String("host", cfg.Server.Host), zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	zl.Info("shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Stop sweeper
	if err := sweeper.Stop(shutdownCtx); err != nil {
		zl.Error("sweeper shutdown error", zap.Error(err))
	}

	zl.Info("shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize redis, or the in-memory store when no URL is configured
func initCache(ctx context.Context, cfg config.RedisConfig, zl *zap.Logger) (keyValueStore, func(), error) {
	if cfg.URL == "" {
		zl.Info("REDIS_URL not set; using in-memory cache")
		mem := cache.NewMemoryStore()
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					mem.Sweep()
				}
			}
		}()
		return mem, func() {}, nil
	}

	client, err := cache.NewRedisClient(cfg.URL, zl)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisStore(client, zl), func() { _ = client.Close() }, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, zl *zap.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("yardsalefndr-api"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			zl.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zl.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			zl.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}

// cleanupLimiter drops idle rate limiter entries until ctx is cancelled
func cleanupLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup()
		}
	}
}
