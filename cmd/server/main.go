package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/yieldledger/internal/adapter/http"
	"github.com/iho/yieldledger/internal/adapter/http/handler"
	"github.com/iho/yieldledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/yieldledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/yieldledger/internal/adapter/repository/redis"
	"github.com/iho/yieldledger/internal/infrastructure/auth"
	"github.com/iho/yieldledger/internal/infrastructure/config"
	"github.com/iho/yieldledger/internal/infrastructure/eventpublisher"
	"github.com/iho/yieldledger/internal/infrastructure/logger"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
	"github.com/iho/yieldledger/internal/infrastructure/payoutjob"
	"github.com/iho/yieldledger/internal/infrastructure/postgres"
	"github.com/iho/yieldledger/internal/infrastructure/redis"
	"github.com/iho/yieldledger/internal/usecase"
)

const rateLimiterCleanupInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	var redisClient *goredis.Client
	if cfg.RedisEnabled {
		redisClient, err = redis.NewClientWithConfig(connectCtx, redis.ClientConfig{
			URL:      cfg.RedisURL,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("redis disabled: no idempotency keys and no cross-instance payout batch lock")
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	payoutRepo := postgresRepo.NewPayoutRepository(pool)
	withdrawalRepo := postgresRepo.NewWithdrawalRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(transactionRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, ledgerUC, outboxRepo, idGen, m)
	depositUC := usecase.NewDepositUseCase(txManager, depositRepo, accountRepo, accountUC, outboxRepo, idGen, m)

	payoutCfg := usecase.PayoutUseCaseConfig{
		TxManager:   txManager,
		DepositRepo: depositRepo,
		PayoutRepo:  payoutRepo,
		AccountRepo: accountRepo,
		Accounts:    accountUC,
		OutboxRepo:  outboxRepo,
		IDGen:       idGen,
		Metrics:     m,
		Retrier:     postgresRepo.NewRetrier(log),
		LockTTL:     cfg.PayoutBatchLockTTL,
		BatchSize:   cfg.PayoutBatchSize,
	}
	if redisClient != nil {
		payoutCfg.Lock = redisRepo.NewBatchLock(redisClient)
	}
	payoutUC := usecase.NewPayoutUseCase(payoutCfg)

	withdrawalUC := usecase.NewWithdrawalUseCase(usecase.WithdrawalUseCaseConfig{
		TxManager:      txManager,
		WithdrawalRepo: withdrawalRepo,
		AccountRepo:    accountRepo,
		DepositRepo:    depositRepo,
		Accounts:       accountUC,
		OutboxRepo:     outboxRepo,
		IDGen:          idGen,
		Metrics:        m,
		Policy:         cfg.AllocationPolicy(),
	})
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, accountRepo, transactionRepo, m)

	// HTTP
	rateLimiter := newRateLimiter(cfg)
	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		DepositHandler:        handler.NewDepositHandler(depositUC),
		PayoutHandler:         handler.NewPayoutHandler(payoutUC),
		WithdrawalHandler:     handler.NewWithdrawalHandler(withdrawalUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		Logger:                log,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           rateLimiter,
	}
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}
	if cfg.AuthEnabled {
		routerCfg.JWTManager = auth.NewJWTManager(cfg.JWTSecret)
	}
	server := newHTTPServer(cfg, httpAdapter.NewRouter(routerCfg))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if rateLimiter != nil {
		g.Go(func() error {
			rateLimiter.RunCleanup(gctx, rateLimiterCleanupInterval)
			return nil
		})
	}

	if cfg.OutboxEnabled {
		publisher, closePublisher := newPublisher(cfg, log)
		defer closePublisher()

		ep := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  publisher,
			Logger:     log,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})
		g.Go(func() error { return ignoreCanceled(ep.Start(gctx)) })
	}

	if cfg.PayoutJobEnabled {
		job := payoutjob.New(payoutjob.Config{
			Runner:   payoutUC,
			Interval: cfg.PayoutJobInterval,
			Logger:   log,
		})
		g.Go(func() error { return ignoreCanceled(job.Start(gctx)) })
	}

	return g.Wait()
}

// newPublisher picks Kafka when brokers are configured and falls back to
// logging events. The returned func releases the publisher.
func newPublisher(cfg *config.Config, log zerolog.Logger) (eventpublisher.Publisher, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info().Msg("no kafka brokers configured, outbox events are logged")
		return eventpublisher.NewLogPublisher(log), func() error { return nil }
	}

	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing outbox events to kafka")
	kp := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	return kp, kp.Close
}

func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
