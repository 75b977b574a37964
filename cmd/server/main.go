package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bluezonesai/fake-bank-turso/internal/adapter/http"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/handler"
	postgresRepo "github.com/bluezonesai/fake-bank-turso/internal/adapter/repository/postgres"
	redisRepo "github.com/bluezonesai/fake-bank-turso/internal/adapter/repository/redis"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/auth"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/config"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/logger"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/metrics"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/postgres"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/redis"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	numberGen := postgresRepo.NewRandomAccountNumberGenerator()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	projectionCache := redisRepo.NewProjectionCache(redisClient)

	// Initialize use cases
	verifier := usecase.NewPINVerifier(userRepo)
	directory := usecase.NewAccountDirectory(accountRepo, userRepo, txnRepo)
	ledger := usecase.NewLedger(txManager, accountRepo, txnRepo, idGen, retrier)
	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, idGen, numberGen, verifier, cfg.BcryptCost)
	transferUC := usecase.NewTransferUseCase(directory, ledger)
	chargeUC := usecase.NewChargeUseCase(directory, ledger, verifier)
	searcher := usecase.NewCachedAccountSearch(directory, projectionCache)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	m := metrics.New()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager, m)
	accountHandler := handler.NewAccountHandler(directory, searcher)
	transferHandler := handler.NewTransferHandler(transferUC, m)
	chargeHandler := handler.NewChargeHandler(chargeUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		AccountHandler:   accountHandler,
		TransferHandler:  transferHandler,
		ChargeHandler:    chargeHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Logger:           log.Logger,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
