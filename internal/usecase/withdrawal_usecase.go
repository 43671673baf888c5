package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
)

// WithdrawalUseCaseConfig wires a WithdrawalUseCase.
type WithdrawalUseCaseConfig struct {
	TxManager      TxManager
	WithdrawalRepo WithdrawalRepository
	AccountRepo    AccountRepository
	DepositRepo    DepositRepository
	Accounts       *AccountUseCase
	OutboxRepo     OutboxRepository
	IDGen          IDGenerator
	Metrics        *metrics.Metrics
	Policy         domain.AllocationPolicy
}

// WithdrawalUseCase runs the withdrawal request lifecycle and allocates
// completed withdrawals across the owner's deposits, newest first.
type WithdrawalUseCase struct {
	txManager      TxManager
	withdrawalRepo WithdrawalRepository
	accountRepo    AccountRepository
	depositRepo    DepositRepository
	accounts       *AccountUseCase
	events         emitter
	idGen          IDGenerator
	metrics        *metrics.Metrics
	policy         domain.AllocationPolicy
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(cfg WithdrawalUseCaseConfig) *WithdrawalUseCase {
	policy := cfg.Policy
	if policy == "" {
		policy = domain.AllocationPolicyPreserve
	}

	return &WithdrawalUseCase{
		txManager:      cfg.TxManager,
		withdrawalRepo: cfg.WithdrawalRepo,
		accountRepo:    cfg.AccountRepo,
		depositRepo:    cfg.DepositRepo,
		accounts:       cfg.Accounts,
		events:         emitter{outboxRepo: cfg.OutboxRepo, idGen: cfg.IDGen},
		idGen:          cfg.IDGen,
		metrics:        cfg.Metrics,
		policy:         policy,
	}
}

// RequestWithdrawalInput represents input for a new withdrawal request.
type RequestWithdrawalInput struct {
	AccountID string
	Amount    decimal.Decimal
	Notes     string
}

// RequestWithdrawal files a pending request. The balance is checked again
// on completion.
func (uc *WithdrawalUseCase) RequestWithdrawal(ctx context.Context, input RequestWithdrawalInput) (*domain.WithdrawalRequest, error) {
	if err := domain.ValidateID(input.AccountID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var request *domain.WithdrawalRequest
	err := withinTx(ctx, uc.txManager, "request withdrawal", func(ctx context.Context, tx Tx) error {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}
		if err := account.ValidateWithdrawal(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		request = &domain.WithdrawalRequest{
			ID:        uc.idGen.Generate(),
			OwnerID:   account.OwnerID,
			AccountID: account.ID,
			Amount:    input.Amount,
			Status:    domain.WithdrawalStatusPending,
			Notes:     input.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.withdrawalRepo.Create(ctx, tx, request); err != nil {
			return err
		}

		return uc.events.emit(ctx, tx, domain.AggregateTypeWithdrawal, request.ID, domain.EventTypeWithdrawalRequested, map[string]any{
			"request_id": request.ID,
			"account_id": request.AccountID,
			"amount":     request.Amount.String(),
		}, now)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ApproveWithdrawal moves a pending request to approved.
func (uc *WithdrawalUseCase) ApproveWithdrawal(ctx context.Context, requestID, actorID string) (*domain.WithdrawalRequest, error) {
	return uc.review(ctx, "approve withdrawal", requestID, actorID, domain.WithdrawalStatusApproved, "", domain.EventTypeWithdrawalApproved)
}

// RejectWithdrawal moves a pending or approved request to rejected.
func (uc *WithdrawalUseCase) RejectWithdrawal(ctx context.Context, requestID, actorID, reason string) (*domain.WithdrawalRequest, error) {
	return uc.review(ctx, "reject withdrawal", requestID, actorID, domain.WithdrawalStatusRejected, reason, domain.EventTypeWithdrawalRejected)
}

func (uc *WithdrawalUseCase) review(
	ctx context.Context,
	op, requestID, actorID string,
	next domain.WithdrawalStatus,
	notes, eventType string,
) (*domain.WithdrawalRequest, error) {
	if err := domain.ValidateID(requestID); err != nil {
		return nil, err
	}
	if actorID == "" {
		actorID = SystemActor
	}

	var request *domain.WithdrawalRequest
	err := withinTx(ctx, uc.txManager, op, func(ctx context.Context, tx Tx) error {
		var err error
		request, err = uc.withdrawalRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := request.Transition(next, actorID, now); err != nil {
			return err
		}
		if notes != "" {
			request.Notes = notes
		}
		if err := uc.withdrawalRepo.UpdateStatus(ctx, tx, request); err != nil {
			return err
		}

		return uc.events.emit(ctx, tx, domain.AggregateTypeWithdrawal, request.ID, eventType, map[string]any{
			"request_id":  request.ID,
			"account_id":  request.AccountID,
			"status":      string(request.Status),
			"reviewed_by": actorID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// CompleteWithdrawalInput represents input for completing a withdrawal.
type CompleteWithdrawalInput struct {
	RequestID string
	ActorID   string
}

// WithdrawalResult is the outcome of a completed withdrawal. Shortfall is
// the part of the amount no active deposit covered.
type WithdrawalResult struct {
	RequestID     string
	NewBalance    decimal.Decimal
	Allocations   []domain.Allocation
	Shortfall     decimal.Decimal
	TransactionID string
}

// CompleteWithdrawal debits the account by the full requested amount and
// reduces the owner's active deposits in LIFO order. Under the strict policy
// it refuses when the deposits cannot cover the amount.
func (uc *WithdrawalUseCase) CompleteWithdrawal(ctx context.Context, input CompleteWithdrawalInput) (*WithdrawalResult, error) {
	if err := domain.ValidateID(input.RequestID); err != nil {
		return nil, err
	}
	actorID := input.ActorID
	if actorID == "" {
		actorID = SystemActor
	}

	var result *WithdrawalResult
	var amount decimal.Decimal
	err := withinTx(ctx, uc.txManager, "complete withdrawal", func(ctx context.Context, tx Tx) error {
		request, err := uc.withdrawalRepo.GetByIDForUpdate(ctx, tx, input.RequestID)
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(domain.WithdrawalStatusCompleted) {
			return domain.ErrInvalidStatusTransition
		}
		amount = request.Amount

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, request.AccountID)
		if err != nil {
			return err
		}
		if err := account.ValidateWithdrawal(request.Amount); err != nil {
			return err
		}

		deposits, err := uc.depositRepo.ListActiveByOwnerForUpdate(ctx, tx, account.OwnerID)
		if err != nil {
			return err
		}
		domain.SortLIFO(deposits)

		now := time.Now().UTC()
		allocations, shortfall := domain.AllocateLIFO(deposits, request.Amount, now)
		if shortfall.IsPositive() && uc.policy == domain.AllocationPolicyStrict {
			return domain.ErrUnderCollateralized
		}

		touched := make(map[string]bool, len(allocations))
		for _, a := range allocations {
			touched[a.DepositID] = true
		}
		for _, d := range deposits {
			if !touched[d.ID] {
				continue
			}
			if err := uc.depositRepo.UpdatePrincipal(ctx, tx, d); err != nil {
				return err
			}
		}

		ref := request.ID
		posted, err := uc.accounts.PostLocked(ctx, tx, account, PostTransactionInput{
			AccountID:     account.ID,
			Amount:        request.Amount.Neg(),
			Type:          domain.TransactionTypeWithdrawal,
			Description:   fmt.Sprintf("Withdrawal %s", request.ID),
			EffectiveDate: now,
			ReferenceID:   &ref,
		})
		if err != nil {
			return err
		}

		if err := request.Transition(domain.WithdrawalStatusCompleted, actorID, now); err != nil {
			return err
		}
		if err := uc.withdrawalRepo.UpdateStatus(ctx, tx, request); err != nil {
			return err
		}

		allocationPayload := make([]map[string]any, 0, len(allocations))
		for _, a := range allocations {
			allocationPayload = append(allocationPayload, map[string]any{
				"deposit_id":      a.DepositID,
				"original_amount": a.OriginalAmount.String(),
				"reduced_by":      a.ReducedBy.String(),
				"new_amount":      a.NewAmount.String(),
			})
		}
		if err := uc.events.emit(ctx, tx, domain.AggregateTypeWithdrawal, request.ID, domain.EventTypeWithdrawalCompleted, map[string]any{
			"request_id":     request.ID,
			"account_id":     account.ID,
			"amount":         request.Amount.String(),
			"new_balance":    account.CurrentBalance.String(),
			"shortfall":      shortfall.String(),
			"allocations":    allocationPayload,
			"transaction_id": posted.TransactionID,
		}, now); err != nil {
			return err
		}

		result = &WithdrawalResult{
			RequestID:     request.ID,
			NewBalance:    posted.NewBalance,
			Allocations:   allocations,
			Shortfall:     shortfall,
			TransactionID: posted.TransactionID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsCompleted.Inc()
		uc.metrics.TransactionsPosted.WithLabelValues(string(domain.TransactionTypeWithdrawal)).Inc()
		f, _ := amount.Float64()
		uc.metrics.WithdrawalAmount.Observe(f)
		if result.Shortfall.IsPositive() {
			uc.metrics.AllocationShortfalls.Inc()
		}
	}

	return result, nil
}

// GetWithdrawal retrieves a withdrawal request by ID.
func (uc *WithdrawalUseCase) GetWithdrawal(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	request, err := uc.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get withdrawal", err)
	}
	return request, nil
}

// ListWithdrawalsInput represents input for listing an account's requests.
type ListWithdrawalsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListWithdrawals lists an account's withdrawal requests, newest first.
func (uc *WithdrawalUseCase) ListWithdrawals(ctx context.Context, input ListWithdrawalsInput) ([]*domain.WithdrawalRequest, error) {
	if err := domain.ValidateID(input.AccountID); err != nil {
		return nil, err
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	requests, err := uc.withdrawalRepo.ListByAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, storageError("list withdrawals", err)
	}
	return requests, nil
}
