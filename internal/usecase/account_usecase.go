package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
)

// AccountUseCase manages loan accounts and keeps each balance in step with
// the ledger. Every posting appends a journal entry and updates the account
// row in the same unit of work.
type AccountUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	ledger      *LedgerUseCase
	events      emitter
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	ledger *LedgerUseCase,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledger:      ledger,
		events:      emitter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for opening a loan account.
type CreateAccountInput struct {
	OwnerID         string
	PrincipalAmount decimal.Decimal
	MonthlyRate     decimal.Decimal
}

// CreateAccount opens the owner's only loan account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.LoanAccount, error) {
	ownerID, err := domain.NormalizeOwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	input.OwnerID = ownerID
	if err := domain.ValidateAmount(input.PrincipalAmount); err != nil {
		return nil, err
	}
	if err := domain.ValidateMonthlyRate(input.MonthlyRate); err != nil {
		return nil, err
	}

	var account *domain.LoanAccount
	err = withinTx(ctx, uc.txManager, "create account", func(ctx context.Context, tx Tx) error {
		_, err := uc.accountRepo.GetByOwnerForUpdate(ctx, tx, input.OwnerID)
		switch {
		case err == nil:
			return domain.ErrAccountExists
		case !errors.Is(err, domain.ErrAccountNotFound):
			return err
		}

		now := time.Now().UTC()
		account = domain.NewLoanAccount(uc.idGen.Generate(), input.OwnerID, input.PrincipalAmount, input.MonthlyRate, now)
		if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		return uc.events.emit(ctx, tx, domain.AggregateTypeAccount, account.ID, domain.EventTypeAccountCreated, map[string]any{
			"account_id":   account.ID,
			"owner_id":     account.OwnerID,
			"principal":    account.PrincipalAmount.String(),
			"monthly_rate": account.MonthlyRate.String(),
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves a loan account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.LoanAccount, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get account", err)
	}
	return account, nil
}

// GetAccountByOwner retrieves the owner's loan account.
func (uc *AccountUseCase) GetAccountByOwner(ctx context.Context, ownerID string) (*domain.LoanAccount, error) {
	ownerID, err := domain.NormalizeOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, storageError("get account by owner", err)
	}
	return account, nil
}

// GetBalance returns the account's current balance.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.CurrentBalance, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.LoanAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storageError("list accounts", err)
	}
	return accounts, nil
}

// PostTransactionInput represents one posting against a loan account.
type PostTransactionInput struct {
	AccountID       string
	Amount          decimal.Decimal
	Type            domain.TransactionType
	Description     string
	EffectiveDate   time.Time
	BonusPercentage *decimal.Decimal
	ReferenceID     *string
}

// PostTransactionResult is the outcome of a posting.
type PostTransactionResult struct {
	TransactionID string
	NewBalance    decimal.Decimal
	Transaction   *domain.Transaction
}

// PostTransaction appends to the ledger and updates the balance in one
// unit of work. A negative resulting balance is not rejected here; callers
// that need a floor check it first.
func (uc *AccountUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*PostTransactionResult, error) {
	if err := domain.ValidateID(input.AccountID); err != nil {
		return nil, err
	}
	if err := domain.ValidateTransactionAmount(input.Type, input.Amount); err != nil {
		return nil, err
	}

	var result *PostTransactionResult
	err := withinTx(ctx, uc.txManager, "post transaction", func(ctx context.Context, tx Tx) error {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}

		result, err = uc.PostLocked(ctx, tx, account, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.WithLabelValues(string(input.Type)).Inc()
	}

	return result, nil
}

// PostLocked posts against an account the caller already holds a row lock
// on inside tx. The account value is updated in place.
func (uc *AccountUseCase) PostLocked(ctx context.Context, tx Tx, account *domain.LoanAccount, input PostTransactionInput) (*PostTransactionResult, error) {
	effective := input.EffectiveDate
	if effective.IsZero() {
		effective = time.Now().UTC()
	}

	entry, err := uc.ledger.Append(ctx, tx, AppendInput{
		AccountID:       account.ID,
		Amount:          input.Amount,
		Type:            input.Type,
		Description:     input.Description,
		EffectiveDate:   effective,
		BalanceAfter:    account.CurrentBalance.Add(input.Amount),
		BonusPercentage: input.BonusPercentage,
		ReferenceID:     input.ReferenceID,
	})
	if err != nil {
		return nil, err
	}

	account.Apply(entry)
	if err := uc.accountRepo.UpdateBalances(ctx, tx, account); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"transaction_id": entry.ID,
		"account_id":     account.ID,
		"type":           string(entry.Type),
		"amount":         entry.Amount.String(),
		"balance_after":  account.CurrentBalance.String(),
		"effective_date": entry.EffectiveDate.Format(domain.DateLayout),
	}
	if err := uc.events.emit(ctx, tx, domain.AggregateTypeAccount, account.ID, domain.EventTypeTransactionPosted, payload, entry.CreatedAt); err != nil {
		return nil, err
	}

	return &PostTransactionResult{
		TransactionID: entry.ID,
		NewBalance:    account.CurrentBalance,
		Transaction:   entry,
	}, nil
}

// ListTransactions reads the account's journal after checking it exists.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, input QueryTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.GetAccount(ctx, input.AccountID); err != nil {
		return nil, err
	}
	return uc.ledger.Query(ctx, input)
}
