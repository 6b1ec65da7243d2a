package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phone-kart/internal/config"
	"phone-kart/internal/database"
	"phone-kart/internal/handler"
	"phone-kart/internal/idempotency"
	"phone-kart/internal/payment"
	"phone-kart/internal/promotion"
	"phone-kart/internal/repository"
	"phone-kart/internal/router"
	"phone-kart/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting phone-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize repositories
	phoneRepo := repository.NewPhoneRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize campaign source with S3 and local fallback
	campaigns, err := loadCampaigns(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Initialize payment processor
	processor := payment.NewStripeClient(cfg.Stripe.BaseURL, cfg.Stripe.SecretKey, cfg.Stripe.Timeout, logger)

	// Initialize idempotency store (optional)
	var idemStore idempotency.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		idemStore = idempotency.NewRedisStore(rdb, cfg.Redis.TTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store enabled")
	} else {
		logger.Info().Msg("idempotency store disabled (no Redis address configured)")
	}

	// Initialize services
	phoneService := service.NewPhoneService(phoneRepo, campaigns, logger)
	checkoutService := service.NewCheckoutService(orderRepo, phoneRepo, processor, idemStore, cfg.Stripe.Currency, logger)

	// Initialize HTTP handlers
	phoneHandler := handler.NewPhoneHandler(phoneService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, logger)

	// Initialize router
	mux := router.New(phoneHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCampaigns builds the campaign source from S3 when enabled, falling
// back to local campaign files. With neither configured the source is
// empty and every campaign lookup misses.
func loadCampaigns(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*promotion.Source, error) {
	if cfg.Promotions.S3Enabled {
		s3Loader, err := promotion.NewS3Loader(ctx, cfg.Promotions.S3Bucket, cfg.Promotions.S3Region, logger)
		if err == nil {
			return promotion.NewSource(ctx, s3Loader, cfg.Promotions.S3Keys, logger)
		}
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
	}

	if len(cfg.Promotions.FilePaths) > 0 {
		return promotion.NewSource(ctx, promotion.NewFileLoader(logger), cfg.Promotions.FilePaths, logger)
	}

	logger.Info().Msg("no campaign files configured")
	return promotion.NewEmptySource(logger), nil
}
