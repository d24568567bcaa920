package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/database"
	"ecommerce-platform/internal/handlers"
	"ecommerce-platform/internal/logging"
	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/repositories"
	"ecommerce-platform/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	logger.Info("database connection established")

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	addressRepo := repositories.NewAddressRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	sizeRepo := repositories.NewSizeRepository(db.DB)
	returnReasonRepo := repositories.NewReturnReasonRepository(db.DB)
	productRepo := repositories.NewProductRepository(db.DB)
	reviewRepo := repositories.NewReviewRepository(db.DB)
	couponRepo := repositories.NewCouponRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	outboxRepo := repositories.NewOutboxRepository(db.DB)

	// Services
	imageService, err := services.NewStorageFactory(cfg, logger).CreateImageService(ctx)
	if err != nil {
		return err
	}
	gateway, err := services.NewPaymentGateway(cfg.Razorpay, logger)
	if err != nil {
		return fmt.Errorf("failed to create payment gateway: %w", err)
	}
	emailService := services.NewEmailService(cfg.Resend, logger)
	tokenService := services.NewTokenService(cfg.Session.JWTSecret, cfg.Session.TokenExpiration)

	authService := services.NewAuthService(userRepo, emailService, tokenService, logger)
	userService := services.NewUserService(userRepo, imageService, logger)
	addressService := services.NewAddressService(addressRepo)
	catalogService := services.NewCatalogService(categoryRepo, sizeRepo, returnReasonRepo)
	productService := services.NewProductService(productRepo, imageService, logger)
	reviewService := services.NewReviewService(reviewRepo)
	couponService := services.NewCouponService(couponRepo)
	cartService := services.NewCartService(productRepo, couponRepo)
	orderService := services.NewOrderService(orderRepo, addressRepo, userRepo, cartService, gateway, cfg.Razorpay.Currency, logger)

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	if len(cfg.Kafka.Brokers) > 0 {
		poller := services.NewOutboxPoller(outboxRepo, services.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic), logger)
		go poller.Run(ctx)
		logger.Info("order events publishing to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events stay in the outbox")
	}

	sessions := middleware.NewSessionManager(cfg.Session, tokenService, logger)

	api := &handlers.Router{
		Auth:      handlers.NewAuthHandler(authService, sessions, logger),
		Users:     handlers.NewUserHandler(userService, sessions, logger),
		Address:   handlers.NewAddressHandler(addressService, logger),
		Catalog:   handlers.NewCatalogHandler(catalogService, logger),
		Products:  handlers.NewProductHandler(productService, logger),
		Reviews:   handlers.NewReviewHandler(reviewService, logger),
		Coupons:   handlers.NewCouponHandler(couponService, logger),
		Orders:    handlers.NewOrderHandler(orderService, cartService, logger),
		Health:    handlers.NewHealthHandler(db, logger),
		Sessions:  sessions,
		RateLimit: middleware.RateLimit(limiter, logger),
		DemoUsers: cfg.Demo.UserEmails,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.ClientOrigins))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir))))
	api.Mount(r)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLimiter uses Redis when REDIS_URL is set so attempts are counted across instances
func newLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (middleware.Limiter, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Warn("REDIS_URL not set, rate limiting per process")
		return middleware.NewMemoryLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return middleware.NewRedisLimiter(client, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window), closeClient, nil
}
