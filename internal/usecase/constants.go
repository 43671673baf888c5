package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// SystemActor is recorded when no caller identity is available.
	SystemActor = "system"

	payoutBatchLockKey     = "payout-batch"
	defaultBatchLockTTL    = 15 * time.Minute
	defaultPayoutBatchSize = 100
	reconciliationPageSize = 100
)
