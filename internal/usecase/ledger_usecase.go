package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
)

// LedgerUseCase owns the append-only transaction journal. It never touches
// balances; AccountUseCase folds entries into accounts.
type LedgerUseCase struct {
	transactionRepo TransactionRepository
	idGen           IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(transactionRepo TransactionRepository, idGen IDGenerator) *LedgerUseCase {
	return &LedgerUseCase{
		transactionRepo: transactionRepo,
		idGen:           idGen,
	}
}

// AppendInput describes one journal entry.
type AppendInput struct {
	AccountID       string
	Amount          decimal.Decimal
	Type            domain.TransactionType
	Description     string
	EffectiveDate   time.Time
	BalanceAfter    decimal.Decimal
	BonusPercentage *decimal.Decimal
	ReferenceID     *string
}

// Append writes an entry inside tx and returns it.
func (uc *LedgerUseCase) Append(ctx context.Context, tx Tx, input AppendInput) (*domain.Transaction, error) {
	if err := domain.ValidateTransactionAmount(input.Type, input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateBonusPercentage(input.Type, input.BonusPercentage); err != nil {
		return nil, err
	}
	if input.EffectiveDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	entry := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		AccountID:       input.AccountID,
		Amount:          input.Amount,
		Type:            input.Type,
		Description:     input.Description,
		EffectiveDate:   domain.DateOf(input.EffectiveDate),
		BalanceAfter:    input.BalanceAfter,
		BonusPercentage: input.BonusPercentage,
		ReferenceID:     input.ReferenceID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := uc.transactionRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// QueryTransactionsInput represents input for reading an account's journal.
type QueryTransactionsInput struct {
	AccountID string
	Type      string
	From      *time.Time
	To        *time.Time
	Order     string
	Limit     int
	Offset    int
}

// Query lists journal entries. The default order is by creation, newest
// first, with effective date as the secondary key; Order "effective" sorts
// by effective date first.
func (uc *LedgerUseCase) Query(ctx context.Context, input QueryTransactionsInput) ([]*domain.Transaction, error) {
	if err := domain.ValidateID(input.AccountID); err != nil {
		return nil, err
	}

	order, err := domain.ParseTransactionOrder(input.Order)
	if err != nil {
		return nil, err
	}

	filter := domain.TransactionFilter{
		AccountID: input.AccountID,
		Order:     order,
	}
	filter.Limit, filter.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	if input.Type != "" {
		t, err := domain.ParseTransactionType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	if input.From != nil {
		from := domain.DateOf(*input.From)
		filter.From = &from
	}
	if input.To != nil {
		to := domain.DateOf(*input.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.ErrInvalidDateRange
	}

	entries, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, storageError("query transactions", err)
	}

	return entries, nil
}
