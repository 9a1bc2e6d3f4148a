package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/company"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/graph"
	"storefront-be/internal/idempotency"
	"storefront-be/internal/inventory"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/transport"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		logger.L().Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idem := newIdempotencyStore(ctx, cfg)
	defer idem.Close()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newHandler(database, idem, limiter, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}

	logger.L().Info("server stopped", zap.Any("counters", metrics.Snapshot()))
}

// newIdempotencyStore prefers Redis so duplicate checkouts are caught across
// replicas, and falls back to process memory when Redis is not configured or
// unreachable.
func newIdempotencyStore(ctx context.Context, cfg *config.Config) idempotency.Store {
	if cfg.RedisAddr == "" {
		logger.L().Info("REDIS_ADDR not set, using in-memory idempotency store")
		return idempotency.NewMemoryStore()
	}

	store, err := idempotency.NewRedisStore(ctx, idempotency.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.L().Warn("redis unavailable, using in-memory idempotency store",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		return idempotency.NewMemoryStore()
	}
	return store
}

func newHandler(database *sql.DB, idem idempotency.Store, limiter *middleware.RateLimiter, cfg *config.Config) http.Handler {
	orderSvc := order.NewService(
		order.NewRepository(database),
		product.NewRepository(database),
		inventory.NewLedger(database),
		cart.NewRepository(database),
		idem,
		order.Options{
			DefaultCurrency:        cfg.DefaultCurrency,
			IdempotencyTTL:         cfg.IdempotencyTTL,
			CompensationMaxRetries: cfg.CompensationMaxRetries,
		},
	)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, review.NewVerifier(reviewRepo), cfg.RequireVerifiedReviews)

	resolver := &graph.Resolver{
		OrderSvc:    orderSvc,
		ReviewSvc:   reviewSvc,
		CompanyRepo: company.NewRepository(database),
	}

	return transport.NewRouter(transport.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		RateLimiter: limiter,
		GraphQL:     graph.NewHandler(resolver, limiter),
		Payments:    transport.NewPaymentHandler(orderSvc),
		Playground:  cfg.AppEnv != "production",
	})
}
