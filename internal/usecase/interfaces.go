package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
)

// AccountRepository defines data access for loan accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.LoanAccount) error
	GetByID(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.LoanAccount, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.LoanAccount, error)
	GetByOwnerForUpdate(ctx context.Context, tx Tx, ownerID string) (*domain.LoanAccount, error)
	// UpdateBalances writes current balance, aggregates and version.
	UpdateBalances(ctx context.Context, tx Tx, account *domain.LoanAccount) error
	List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

// TransactionRepository is the append-only ledger journal. It has no update
// or delete operations.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	// SumByAccount reads inside tx so it sees the same state as a row locked
	// in that unit of work.
	SumByAccount(ctx context.Context, tx Tx, accountID string) (decimal.Decimal, error)
}

// DepositRepository defines data access for yield deposits. Each update
// method writes only the columns its operation is allowed to change.
type DepositRepository interface {
	Create(ctx context.Context, tx Tx, deposit *domain.YieldDeposit) error
	GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.YieldDeposit, error)
	ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.YieldDeposit, error)
	ListActiveByOwnerForUpdate(ctx context.Context, tx Tx, ownerID string) ([]*domain.YieldDeposit, error)
	// ListActiveAfter pages active deposits by ascending id.
	ListActiveAfter(ctx context.Context, afterID string, limit int) ([]*domain.YieldDeposit, error)
	// ApplyPatch writes status, notes and principal.
	ApplyPatch(ctx context.Context, tx Tx, deposit *domain.YieldDeposit) error
	// RecordPayout writes last payout date and total paid out.
	RecordPayout(ctx context.Context, tx Tx, deposit *domain.YieldDeposit) error
	// UpdatePrincipal writes principal and status.
	UpdatePrincipal(ctx context.Context, tx Tx, deposit *domain.YieldDeposit) error
}

// PayoutRepository defines data access for yield payouts.
type PayoutRepository interface {
	// Create returns domain.ErrDuplicatePayout when the deposit already has
	// a payout for the same date.
	Create(ctx context.Context, tx Tx, payout *domain.YieldPayout) error
	ExistsForDate(ctx context.Context, tx Tx, depositID string, payoutDate time.Time) (bool, error)
	ListByDeposit(ctx context.Context, depositID string) ([]*domain.YieldPayout, error)
}

// WithdrawalRepository defines data access for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx Tx, request *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.WithdrawalRequest, error)
	// UpdateStatus writes status, notes and reviewer metadata.
	UpdateStatus(ctx context.Context, tx Tx, request *domain.WithdrawalRequest) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.WithdrawalRequest, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx is one atomic unit of work against the store.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager starts units of work.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore stores request/response pairs for idempotency.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release forgets key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// BatchLock guards the payout batch against concurrent runs across
// instances.
type BatchLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Retrier re-runs an operation that failed with a transient store error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
