package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
)

// Batch detail statuses.
const (
	BatchStatusProcessed    = "processed"
	BatchStatusWouldProcess = "would_process"
	BatchStatusSkipped      = "skipped"
	BatchStatusError        = "error"
)

// PayoutUseCaseConfig wires a PayoutUseCase. Lock, Retrier, OutboxRepo and
// Metrics are optional.
type PayoutUseCaseConfig struct {
	TxManager   TxManager
	DepositRepo DepositRepository
	PayoutRepo  PayoutRepository
	AccountRepo AccountRepository
	Accounts    *AccountUseCase
	OutboxRepo  OutboxRepository
	IDGen       IDGenerator
	Metrics     *metrics.Metrics
	Retrier     Retrier
	Lock        BatchLock
	LockTTL     time.Duration
	BatchSize   int
}

// PayoutUseCase computes anniversary dates and applies annual yield payouts.
type PayoutUseCase struct {
	txManager   TxManager
	depositRepo DepositRepository
	payoutRepo  PayoutRepository
	accountRepo AccountRepository
	accounts    *AccountUseCase
	events      emitter
	idGen       IDGenerator
	metrics     *metrics.Metrics
	retrier     Retrier
	lock        BatchLock
	lockTTL     time.Duration
	batchSize   int
}

// NewPayoutUseCase creates a new PayoutUseCase.
func NewPayoutUseCase(cfg PayoutUseCaseConfig) *PayoutUseCase {
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = defaultBatchLockTTL
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultPayoutBatchSize
	}

	return &PayoutUseCase{
		txManager:   cfg.TxManager,
		depositRepo: cfg.DepositRepo,
		payoutRepo:  cfg.PayoutRepo,
		accountRepo: cfg.AccountRepo,
		accounts:    cfg.Accounts,
		events:      emitter{outboxRepo: cfg.OutboxRepo, idGen: cfg.IDGen},
		idGen:       cfg.IDGen,
		metrics:     cfg.Metrics,
		retrier:     cfg.Retrier,
		lock:        cfg.Lock,
		lockTTL:     lockTTL,
		batchSize:   batchSize,
	}
}

// NextAnniversary is the display-only forward-looking anniversary.
func (uc *PayoutUseCase) NextAnniversary(startDate, asOf time.Time) time.Time {
	return domain.NextAnniversary(startDate, asOf)
}

// DueDate returns the anniversary a payout is owed for, if any.
func (uc *PayoutUseCase) DueDate(startDate time.Time, lastPayoutDate *time.Time, asOf time.Time) (time.Time, bool) {
	return domain.DueDate(startDate, lastPayoutDate, asOf)
}

// ProcessPayoutInput represents input for a single payout.
type ProcessPayoutInput struct {
	DepositID   string
	PayoutDate  time.Time
	ProcessedBy string
}

// PayoutResult is the outcome of a processed payout.
type PayoutResult struct {
	PayoutID      string
	Amount        decimal.Decimal
	TransactionID string
	Payout        *domain.YieldPayout
}

// ProcessPayout pays one annual yield on the deposit's current principal.
// It fails with ErrDuplicatePayout when the date was already paid.
func (uc *PayoutUseCase) ProcessPayout(ctx context.Context, input ProcessPayoutInput) (*PayoutResult, error) {
	if err := domain.ValidateID(input.DepositID); err != nil {
		return nil, err
	}
	if input.PayoutDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	processedBy := input.ProcessedBy
	if processedBy == "" {
		processedBy = SystemActor
	}
	payoutDate := domain.DateOf(input.PayoutDate)

	var result *PayoutResult
	err := withinTx(ctx, uc.txManager, "process payout", func(ctx context.Context, tx Tx) error {
		// The owner is needed to take the account lock first; the deposit
		// is then locked and checked again.
		peek, err := uc.depositRepo.GetByID(ctx, input.DepositID)
		if err != nil {
			return err
		}

		account, err := uc.accountRepo.GetByOwnerForUpdate(ctx, tx, peek.OwnerID)
		if err != nil {
			return err
		}

		deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, input.DepositID)
		if err != nil {
			return err
		}
		if !deposit.IsActive() {
			return domain.ErrDepositNotActive
		}

		exists, err := uc.payoutRepo.ExistsForDate(ctx, tx, deposit.ID, payoutDate)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicatePayout
		}

		amount := deposit.PayoutAmount()
		if !amount.IsPositive() {
			return fmt.Errorf("%w: payout amount rounds to zero", domain.ErrValidation)
		}

		ref := deposit.ID
		posted, err := uc.accounts.PostLocked(ctx, tx, account, PostTransactionInput{
			AccountID:     account.ID,
			Amount:        amount,
			Type:          domain.TransactionTypeYieldPayment,
			Description:   fmt.Sprintf("Annual yield payout for deposit %s (%s)", deposit.ID, payoutDate.Format(domain.DateLayout)),
			EffectiveDate: payoutDate,
			ReferenceID:   &ref,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		payout := &domain.YieldPayout{
			ID:            uc.idGen.Generate(),
			DepositID:     deposit.ID,
			Amount:        amount,
			PayoutDate:    payoutDate,
			TransactionID: posted.TransactionID,
			ProcessedBy:   processedBy,
			CreatedAt:     now,
		}
		if err := uc.payoutRepo.Create(ctx, tx, payout); err != nil {
			return err
		}

		deposit.RecordPayout(payoutDate, amount, now)
		if err := uc.depositRepo.RecordPayout(ctx, tx, deposit); err != nil {
			return err
		}

		if err := uc.events.emit(ctx, tx, domain.AggregateTypeDeposit, deposit.ID, domain.EventTypePayoutProcessed, map[string]any{
			"payout_id":      payout.ID,
			"deposit_id":     deposit.ID,
			"account_id":     account.ID,
			"amount":         amount.String(),
			"payout_date":    payoutDate.Format(domain.DateLayout),
			"transaction_id": posted.TransactionID,
		}, now); err != nil {
			return err
		}

		result = &PayoutResult{
			PayoutID:      payout.ID,
			Amount:        amount,
			TransactionID: posted.TransactionID,
			Payout:        payout,
		}
		return nil
	})
	if err != nil {
		uc.recordPayoutError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PayoutsProcessed.Inc()
		uc.metrics.TransactionsPosted.WithLabelValues(string(domain.TransactionTypeYieldPayment)).Inc()
		amount, _ := result.Amount.Float64()
		uc.metrics.PayoutAmount.Observe(amount)
	}

	return result, nil
}

func (uc *PayoutUseCase) recordPayoutError(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.PayoutErrors.WithLabelValues(errorKind(err)).Inc()
}

// errorKind names the error kind of err for metric labels and batch details.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "storage"
	}
}

// ListPayouts returns the payouts recorded for a deposit.
func (uc *PayoutUseCase) ListPayouts(ctx context.Context, depositID string) ([]*domain.YieldPayout, error) {
	if err := domain.ValidateID(depositID); err != nil {
		return nil, err
	}
	if _, err := uc.depositRepo.GetByID(ctx, depositID); err != nil {
		return nil, storageError("list payouts", err)
	}

	payouts, err := uc.payoutRepo.ListByDeposit(ctx, depositID)
	if err != nil {
		return nil, storageError("list payouts", err)
	}
	return payouts, nil
}

// Schedule describes a deposit's payout position as of a date.
type Schedule struct {
	DepositID       string
	AsOf            time.Time
	NextAnniversary time.Time
	DueDate         *time.Time
	ProjectedAmount decimal.Decimal
}

// PreviewSchedule reports the next anniversary, the currently due date and
// the amount a payout would pay today. Inactive deposits project zero.
func (uc *PayoutUseCase) PreviewSchedule(ctx context.Context, depositID string, asOf time.Time) (*Schedule, error) {
	if err := domain.ValidateID(depositID); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	deposit, err := uc.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return nil, storageError("preview schedule", err)
	}

	schedule := &Schedule{
		DepositID:       deposit.ID,
		AsOf:            domain.DateOf(asOf),
		NextAnniversary: domain.NextAnniversary(deposit.StartDate, asOf),
		ProjectedAmount: decimal.Zero,
	}
	if deposit.IsActive() {
		schedule.ProjectedAmount = deposit.PayoutAmount()
		if due, ok := domain.DueDate(deposit.StartDate, deposit.LastPayoutDate, asOf); ok {
			schedule.DueDate = &due
		}
	}

	return schedule, nil
}

// RunDuePayoutsInput represents input for a batch run.
type RunDuePayoutsInput struct {
	AsOf        time.Time
	DryRun      bool
	ProcessedBy string
}

// BatchDetail reports what the batch did with one deposit.
type BatchDetail struct {
	DepositID     string
	Status        string
	PayoutDate    *time.Time
	Amount        decimal.Decimal
	PayoutID      string
	TransactionID string
	Reason        string
}

// BatchResult summarises a batch run.
type BatchResult struct {
	AsOf      time.Time
	DryRun    bool
	Processed int
	Skipped   int
	Errors    int
	Details   []BatchDetail
}

// RunDuePayouts walks every active deposit and pays the ones with a due
// anniversary, one unit of work per deposit. A failing deposit is recorded
// and the pass continues. In dry-run mode nothing is written.
func (uc *PayoutUseCase) RunDuePayouts(ctx context.Context, input RunDuePayoutsInput) (*BatchResult, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	asOf = domain.DateOf(asOf)

	if uc.lock != nil {
		acquired, err := uc.lock.Acquire(ctx, payoutBatchLockKey, uc.lockTTL)
		if err != nil {
			return nil, storageError("acquire payout batch lock", err)
		}
		if !acquired {
			return nil, domain.ErrBatchInProgress
		}
		defer func() { _ = uc.lock.Release(context.WithoutCancel(ctx), payoutBatchLockKey) }()
	}

	started := time.Now()
	result := &BatchResult{
		AsOf:    asOf,
		DryRun:  input.DryRun,
		Details: []BatchDetail{},
	}

	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		deposits, err := uc.depositRepo.ListActiveAfter(ctx, afterID, uc.batchSize)
		if err != nil {
			return nil, storageError("list active deposits", err)
		}

		for _, deposit := range deposits {
			uc.runOne(ctx, deposit, asOf, input, result)
		}

		if len(deposits) < uc.batchSize {
			break
		}
		afterID = deposits[len(deposits)-1].ID
	}

	if uc.metrics != nil {
		mode := "live"
		if input.DryRun {
			mode = "dry_run"
		}
		uc.metrics.PayoutBatchRuns.WithLabelValues(mode).Inc()
		uc.metrics.PayoutBatchDuration.Observe(time.Since(started).Seconds())
	}

	return result, nil
}

func (uc *PayoutUseCase) runOne(ctx context.Context, deposit *domain.YieldDeposit, asOf time.Time, input RunDuePayoutsInput, result *BatchResult) {
	due, ok := domain.DueDate(deposit.StartDate, deposit.LastPayoutDate, asOf)
	if !ok {
		return
	}

	detail := BatchDetail{
		DepositID:  deposit.ID,
		PayoutDate: &due,
		Amount:     deposit.PayoutAmount(),
	}

	if input.DryRun {
		detail.Status = BatchStatusWouldProcess
		result.Processed++
		result.Details = append(result.Details, detail)
		return
	}

	var payout *PayoutResult
	op := func() error {
		var err error
		payout, err = uc.ProcessPayout(ctx, ProcessPayoutInput{
			DepositID:   deposit.ID,
			PayoutDate:  due,
			ProcessedBy: input.ProcessedBy,
		})
		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	switch {
	case err == nil:
		detail.Status = BatchStatusProcessed
		detail.Amount = payout.Amount
		detail.PayoutID = payout.PayoutID
		detail.TransactionID = payout.TransactionID
		result.Processed++
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		// Paid or deactivated since the page was read.
		detail.Status = BatchStatusSkipped
		detail.Reason = err.Error()
		result.Skipped++
	default:
		detail.Status = BatchStatusError
		detail.Reason = err.Error()
		result.Errors++
	}

	result.Details = append(result.Details, detail)
}
