package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/api"
	"github.com/Muppalavinisree/vibecommerce/internal/api/handlers"
	"github.com/Muppalavinisree/vibecommerce/internal/api/middleware"
	"github.com/Muppalavinisree/vibecommerce/internal/cache"
	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/Muppalavinisree/vibecommerce/internal/health"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	service "github.com/Muppalavinisree/vibecommerce/internal/services"
	"github.com/Muppalavinisree/vibecommerce/internal/storage"
	"github.com/Muppalavinisree/vibecommerce/internal/tracing"
	"github.com/Muppalavinisree/vibecommerce/pkg/sendgrid"
	"github.com/joho/godotenv"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("⚠️ Could not read .env file", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := stores.Close(closeCtx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup, optional
	productCache := cache.NewNoopCache()
	var limiter middleware.FailureLimiter

	if cfg.RedisConnect.Enabled() {
		redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()

		productCache = cache.NewRedisCache(redisClient, &cfg.Cache)
		limiter = repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
	} else {
		slog.Info("Redis not configured, product cache and admin rate limit disabled")
	}

	// Image storage
	images, uploadsHandler, err := newImageStore(ctx, &cfg.Uploads)
	if err != nil {
		slog.Error("❌ Error setting up image storage", slog.String("driver", cfg.Uploads.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Receipt e-mails, optional
	var notifier service.ReceiptNotifier
	if cfg.SendGrid.APIKey != "" {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		notifier = sendgrid.NewReceiptMailer(emailService)
	}

	var authorizer middleware.Authorizer = middleware.NewSharedSecretAuthorizer(cfg.Admin.Pass)
	if cfg.Admin.PassHash != "" {
		authorizer = middleware.NewBcryptAuthorizer(cfg.Admin.PassHash)
	}

	if cfg.Admin.Pass == "" && cfg.Admin.PassHash == "" {
		slog.Warn("⚠️ No admin secret configured, product management is locked")
	}

	productService := service.NewProductService(stores.Products, images, productCache, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(stores.Cart, stores.Products)
	checkoutService := service.NewCheckoutService(stores.Cart, notifier)

	healthHandler, err := health.NewHealthHandler(health.Checks(cfg)...)
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := &api.Router{
		Products:       handlers.NewProductHandler(productService, cfg.Uploads.MaxSizeBytes),
		Cart:           handlers.NewCartHandler(cartService),
		Checkout:       handlers.NewCheckoutHandler(checkoutService),
		Admin:          middleware.NewAdminMiddleware(authorizer, limiter),
		Health:         healthHandler.Handler(),
		Uploads:        uploadsHandler,
		UploadsPrefix:  cfg.Uploads.PublicPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", stores.Driver), slog.String("version", "1.0.0"))

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// newImageStore returns the configured store and, for local storage, the
// handler that serves the stored files.
func newImageStore(ctx context.Context, cfg *config.Uploads) (storage.ImageStore, http.Handler, error) {
	switch cfg.Driver {
	case config.UploadsDriverGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCSCredentials)
		if err != nil {
			return nil, nil, err
		}

		return storage.NewGCSStore(client, cfg.GCSBucket, cfg.GCSPublicBaseURL), nil, nil

	default:
		store, err := storage.NewLocalStore(cfg.Dir, cfg.PublicPrefix)
		if err != nil {
			return nil, nil, err
		}

		return store, storage.NewFileServer(cfg.Dir), nil
	}
}
