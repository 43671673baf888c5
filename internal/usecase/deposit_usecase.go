package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
)

// DepositUseCase registers yield deposits and handles their administrative
// updates.
type DepositUseCase struct {
	txManager   TxManager
	depositRepo DepositRepository
	accountRepo AccountRepository
	accounts    *AccountUseCase
	events      emitter
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TxManager,
	depositRepo DepositRepository,
	accountRepo AccountRepository,
	accounts *AccountUseCase,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:   txManager,
		depositRepo: depositRepo,
		accountRepo: accountRepo,
		accounts:    accounts,
		events:      emitter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateDepositInput represents input for registering a yield deposit.
type CreateDepositInput struct {
	OwnerID         string
	PrincipalAmount decimal.Decimal
	AnnualYieldRate decimal.Decimal
	StartDate       time.Time
	Notes           string
	CreatedBy       string
}

// CreateDeposit registers an active deposit and credits its principal to the
// owner's account as a yield_deposit entry dated on the start date.
func (uc *DepositUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.YieldDeposit, error) {
	ownerID, err := domain.NormalizeOwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	input.OwnerID = ownerID
	if err := domain.ValidateAmount(input.PrincipalAmount); err != nil {
		return nil, err
	}
	if err := domain.ValidateYieldRate(input.AnnualYieldRate); err != nil {
		return nil, err
	}
	if input.StartDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = SystemActor
	}

	var deposit *domain.YieldDeposit
	err = withinTx(ctx, uc.txManager, "create deposit", func(ctx context.Context, tx Tx) error {
		account, err := uc.accountRepo.GetByOwnerForUpdate(ctx, tx, input.OwnerID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		deposit = &domain.YieldDeposit{
			ID:              uc.idGen.Generate(),
			OwnerID:         input.OwnerID,
			PrincipalAmount: input.PrincipalAmount,
			AnnualYieldRate: input.AnnualYieldRate,
			StartDate:       domain.DateOf(input.StartDate),
			Status:          domain.DepositStatusActive,
			TotalPaidOut:    decimal.Zero,
			CreatedBy:       createdBy,
			Notes:           input.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.depositRepo.Create(ctx, tx, deposit); err != nil {
			return err
		}

		ref := deposit.ID
		if _, err := uc.accounts.PostLocked(ctx, tx, account, PostTransactionInput{
			AccountID:     account.ID,
			Amount:        deposit.PrincipalAmount,
			Type:          domain.TransactionTypeYieldDeposit,
			Description:   fmt.Sprintf("Yield deposit %s", deposit.ID),
			EffectiveDate: deposit.StartDate,
			ReferenceID:   &ref,
		}); err != nil {
			return err
		}

		return uc.events.emit(ctx, tx, domain.AggregateTypeDeposit, deposit.ID, domain.EventTypeDepositCreated, map[string]any{
			"deposit_id":        deposit.ID,
			"owner_id":          deposit.OwnerID,
			"principal":         deposit.PrincipalAmount.String(),
			"annual_yield_rate": deposit.AnnualYieldRate.String(),
			"start_date":        deposit.StartDate.Format(domain.DateLayout),
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsCreated.Inc()
		uc.metrics.TransactionsPosted.WithLabelValues(string(domain.TransactionTypeYieldDeposit)).Inc()
	}

	return deposit, nil
}

// UpdateDeposit applies an administrative patch. Only status, notes and a
// lower principal can change.
func (uc *DepositUseCase) UpdateDeposit(ctx context.Context, id string, patch domain.DepositPatch) (*domain.YieldDeposit, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	var deposit *domain.YieldDeposit
	err := withinTx(ctx, uc.txManager, "update deposit", func(ctx context.Context, tx Tx) error {
		var err error
		deposit, err = uc.depositRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := deposit.ApplyPatch(patch, now); err != nil {
			return err
		}
		if err := uc.depositRepo.ApplyPatch(ctx, tx, deposit); err != nil {
			return err
		}

		return uc.events.emit(ctx, tx, domain.AggregateTypeDeposit, deposit.ID, domain.EventTypeDepositUpdated, map[string]any{
			"deposit_id": deposit.ID,
			"status":     string(deposit.Status),
			"principal":  deposit.PrincipalAmount.String(),
			"notes":      deposit.Notes,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsUpdated.Inc()
	}

	return deposit, nil
}

// GetDeposit retrieves a deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	deposit, err := uc.depositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get deposit", err)
	}
	return deposit, nil
}

// ListActiveForOwner returns the owner's active deposits in LIFO order.
func (uc *DepositUseCase) ListActiveForOwner(ctx context.Context, ownerID string) ([]*domain.YieldDeposit, error) {
	return uc.ListDepositsForOwner(ctx, ownerID, true)
}

// ListDepositsForOwner returns the owner's deposits in LIFO order.
func (uc *DepositUseCase) ListDepositsForOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.YieldDeposit, error) {
	ownerID, err := domain.NormalizeOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.depositRepo.ListByOwner(ctx, ownerID, activeOnly)
	if err != nil {
		return nil, storageError("list deposits", err)
	}

	domain.SortLIFO(deposits)
	return deposits, nil
}
