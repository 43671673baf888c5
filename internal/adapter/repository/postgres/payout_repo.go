package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/postgres/generated"
	"github.com/iho/yieldledger/internal/usecase"
)

const payoutDepositDateKey = "yield_payouts_deposit_date_key"

// PayoutRepository implements usecase.PayoutRepository.
type PayoutRepository struct {
	queries *generated.Queries
}

// NewPayoutRepository creates a new PayoutRepository.
func NewPayoutRepository(pool *pgxpool.Pool) *PayoutRepository {
	return newPayoutRepositoryWithDB(pool)
}

func newPayoutRepositoryWithDB(db generated.DBTX) *PayoutRepository {
	return &PayoutRepository{queries: generated.New(db)}
}

// Create records a payout. A second payout for the same deposit and date
// fails with domain.ErrDuplicatePayout.
func (r *PayoutRepository) Create(ctx context.Context, tx usecase.Tx, p *domain.YieldPayout) error {
	err := txQueries(tx).CreateYieldPayout(ctx, generated.CreateYieldPayoutParams{
		ID:            p.ID,
		DepositID:     p.DepositID,
		Amount:        decimalToNumeric(p.Amount),
		PayoutDate:    timeToPgDate(p.PayoutDate),
		TransactionID: p.TransactionID,
		ProcessedBy:   p.ProcessedBy,
		CreatedAt:     timeToPgTimestamptz(p.CreatedAt),
	})
	if isUniqueViolation(err, payoutDepositDateKey) {
		return domain.ErrDuplicatePayout
	}

	return err
}

// ExistsForDate reports whether the deposit already has a payout on payoutDate.
func (r *PayoutRepository) ExistsForDate(ctx context.Context, tx usecase.Tx, depositID string, payoutDate time.Time) (bool, error) {
	return txQueries(tx).YieldPayoutExists(ctx, generated.YieldPayoutExistsParams{
		DepositID:  depositID,
		PayoutDate: timeToPgDate(payoutDate),
	})
}

// ListByDeposit lists a deposit's payouts, latest first.
func (r *PayoutRepository) ListByDeposit(ctx context.Context, depositID string) ([]*domain.YieldPayout, error) {
	rows, err := r.queries.ListYieldPayoutsByDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}

	payouts := make([]*domain.YieldPayout, 0, len(rows))
	for _, row := range rows {
		payouts = append(payouts, &domain.YieldPayout{
			ID:            row.ID,
			DepositID:     row.DepositID,
			Amount:        numericToDecimal(row.Amount),
			PayoutDate:    pgDateToTime(row.PayoutDate),
			TransactionID: row.TransactionID,
			ProcessedBy:   row.ProcessedBy,
			CreatedAt:     row.CreatedAt.Time,
		})
	}

	return payouts, nil
}
