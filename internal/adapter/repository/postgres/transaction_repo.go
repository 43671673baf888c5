package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/postgres/generated"
	"github.com/iho/yieldledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Rows are
// only ever inserted; the schema rejects updates and deletes.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create appends an entry to the journal.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	return txQueries(tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Amount:          decimalToNumeric(t.Amount),
		Type:            string(t.Type),
		Description:     t.Description,
		EffectiveDate:   timeToPgDate(t.EffectiveDate),
		BalanceAfter:    decimalToNumeric(t.BalanceAfter),
		BonusPercentage: decimalPtrToNumeric(t.BonusPercentage),
		ReferenceID:     stringPtrToPgText(t.ReferenceID),
		CreatedAt:       timeToPgTimestamptz(t.CreatedAt),
	})
}

// List returns the entries matching filter in the requested order.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	var typ pgtype.Text
	if filter.Type != nil {
		typ = pgtype.Text{String: string(*filter.Type), Valid: true}
	}

	var (
		rows []generated.Transaction
		err  error
	)
	if filter.Order == domain.OrderByEffectiveDate {
		rows, err = r.queries.ListTransactionsByEffective(ctx, generated.ListTransactionsByEffectiveParams{
			AccountID: filter.AccountID,
			Type:      typ,
			FromDate:  timePtrToPgDate(filter.From),
			ToDate:    timePtrToPgDate(filter.To),
			RowLimit:  int32(filter.Limit),
			RowOffset: int32(filter.Offset),
		})
	} else {
		rows, err = r.queries.ListTransactionsByCreated(ctx, generated.ListTransactionsByCreatedParams{
			AccountID: filter.AccountID,
			Type:      typ,
			FromDate:  timePtrToPgDate(filter.From),
			ToDate:    timePtrToPgDate(filter.To),
			RowLimit:  int32(filter.Limit),
			RowOffset: int32(filter.Offset),
		})
	}
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToTransaction(row))
	}

	return entries, nil
}

// SumByAccount returns the sum of every entry of an account.
func (r *TransactionRepository) SumByAccount(ctx context.Context, tx usecase.Tx, accountID string) (decimal.Decimal, error) {
	total, err := txQueries(tx).SumTransactionsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		Amount:          numericToDecimal(row.Amount),
		Type:            domain.TransactionType(row.Type),
		Description:     row.Description,
		EffectiveDate:   pgDateToTime(row.EffectiveDate),
		BalanceAfter:    numericToDecimal(row.BalanceAfter),
		BonusPercentage: numericToDecimalPtr(row.BonusPercentage),
		ReferenceID:     pgTextToStringPtr(row.ReferenceID),
		CreatedAt:       row.CreatedAt.Time,
	}
}
