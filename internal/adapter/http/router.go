package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/yieldledger/internal/adapter/http/handler"
	"github.com/iho/yieldledger/internal/adapter/http/middleware"
	"github.com/iho/yieldledger/internal/infrastructure/auth"
	"github.com/iho/yieldledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	DepositHandler        *handler.DepositHandler
	PayoutHandler         *handler.PayoutHandler
	WithdrawalHandler     *handler.WithdrawalHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	// JWTManager enables bearer token authentication. Without it the
	// caller is taken from the X-Actor-ID header.
	JWTManager *auth.JWTManager
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		} else {
			r.Use(middleware.HeaderActor)
		}
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		operator := middleware.RequireRole(auth.RoleOperator)
		admin := middleware.RequireRole(auth.RoleAdmin)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/owner/{ownerID}", cfg.AccountHandler.GetByOwner)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
			r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			r.Get("/{id}/withdrawals", cfg.WithdrawalHandler.ListByAccount)

			r.With(admin).Post("/", cfg.AccountHandler.Create)
			r.With(operator).Post("/{id}/transactions", cfg.AccountHandler.PostTransaction)
		})

		r.Route("/deposits", func(r chi.Router) {
			r.Get("/owner/{ownerID}", cfg.DepositHandler.ListByOwner)
			r.Get("/{id}", cfg.DepositHandler.Get)
			r.Get("/{id}/payouts", cfg.PayoutHandler.List)
			r.Get("/{id}/schedule", cfg.PayoutHandler.Schedule)

			r.With(admin).Post("/", cfg.DepositHandler.Create)
			r.With(admin).Patch("/{id}", cfg.DepositHandler.Update)
			r.With(operator).Post("/{id}/payouts", cfg.PayoutHandler.Process)
		})

		r.With(operator).Post("/payouts/run", cfg.PayoutHandler.Run)

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/{id}", cfg.WithdrawalHandler.Get)

			r.Post("/", cfg.WithdrawalHandler.Create)
			r.With(admin).Post("/{id}/approve", cfg.WithdrawalHandler.Approve)
			r.With(admin).Post("/{id}/reject", cfg.WithdrawalHandler.Reject)
			r.With(admin).Post("/{id}/complete", cfg.WithdrawalHandler.Complete)
		})

		r.Route("/reconciliation", func(r chi.Router) {
			r.Use(operator)
			r.Get("/", cfg.ReconciliationHandler.Report)
			r.Get("/accounts/{id}", cfg.ReconciliationHandler.Account)
		})
	})

	return r
}
