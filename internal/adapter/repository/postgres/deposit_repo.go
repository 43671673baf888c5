package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/postgres/generated"
	"github.com/iho/yieldledger/internal/usecase"
)

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	queries *generated.Queries
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return newDepositRepositoryWithDB(pool)
}

func newDepositRepositoryWithDB(db generated.DBTX) *DepositRepository {
	return &DepositRepository{queries: generated.New(db)}
}

// Create inserts a new yield deposit.
func (r *DepositRepository) Create(ctx context.Context, tx usecase.Tx, d *domain.YieldDeposit) error {
	return txQueries(tx).CreateYieldDeposit(ctx, generated.CreateYieldDepositParams{
		ID:              d.ID,
		OwnerID:         d.OwnerID,
		PrincipalAmount: decimalToNumeric(d.PrincipalAmount),
		AnnualYieldRate: decimalToNumeric(d.AnnualYieldRate),
		StartDate:       timeToPgDate(d.StartDate),
		Status:          string(d.Status),
		LastPayoutDate:  timePtrToPgDate(d.LastPayoutDate),
		TotalPaidOut:    decimalToNumeric(d.TotalPaidOut),
		CreatedBy:       d.CreatedBy,
		Notes:           d.Notes,
		CreatedAt:       timeToPgTimestamptz(d.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(d.UpdatedAt),
	})
}

// GetByID retrieves a deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	return depositOrNotFound(r.queries.GetYieldDepositByID(ctx, id))
}

// GetByIDForUpdate retrieves a deposit by ID with a FOR UPDATE lock.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.YieldDeposit, error) {
	return depositOrNotFound(txQueries(tx).GetYieldDepositByIDForUpdate(ctx, id))
}

// ListByOwner lists an owner's deposits, newest first.
func (r *DepositRepository) ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.YieldDeposit, error) {
	return rowsToDeposits(r.queries.ListYieldDepositsByOwner(ctx, generated.ListYieldDepositsByOwnerParams{
		OwnerID:    ownerID,
		ActiveOnly: activeOnly,
	}))
}

// ListActiveByOwnerForUpdate locks and returns an owner's active deposits.
func (r *DepositRepository) ListActiveByOwnerForUpdate(ctx context.Context, tx usecase.Tx, ownerID string) ([]*domain.YieldDeposit, error) {
	return rowsToDeposits(txQueries(tx).ListActiveYieldDepositsByOwnerForUpdate(ctx, ownerID))
}

// ListActiveAfter pages active deposits by ascending id.
func (r *DepositRepository) ListActiveAfter(ctx context.Context, afterID string, limit int) ([]*domain.YieldDeposit, error) {
	return rowsToDeposits(r.queries.ListActiveYieldDepositsAfter(ctx, generated.ListActiveYieldDepositsAfterParams{
		AfterID: afterID,
		Limit:   int32(limit),
	}))
}

// ApplyPatch writes status, notes and principal.
func (r *DepositRepository) ApplyPatch(ctx context.Context, tx usecase.Tx, d *domain.YieldDeposit) error {
	return affectedOrNotFound(txQueries(tx).UpdateYieldDepositPatch(ctx, generated.UpdateYieldDepositPatchParams{
		ID:              d.ID,
		Status:          string(d.Status),
		Notes:           d.Notes,
		PrincipalAmount: decimalToNumeric(d.PrincipalAmount),
		UpdatedAt:       timeToPgTimestamptz(d.UpdatedAt),
	}))
}

// RecordPayout writes last payout date and total paid out.
func (r *DepositRepository) RecordPayout(ctx context.Context, tx usecase.Tx, d *domain.YieldDeposit) error {
	return affectedOrNotFound(txQueries(tx).UpdateYieldDepositPayout(ctx, generated.UpdateYieldDepositPayoutParams{
		ID:             d.ID,
		LastPayoutDate: timePtrToPgDate(d.LastPayoutDate),
		TotalPaidOut:   decimalToNumeric(d.TotalPaidOut),
		UpdatedAt:      timeToPgTimestamptz(d.UpdatedAt),
	}))
}

// UpdatePrincipal writes principal and status.
func (r *DepositRepository) UpdatePrincipal(ctx context.Context, tx usecase.Tx, d *domain.YieldDeposit) error {
	return affectedOrNotFound(txQueries(tx).UpdateYieldDepositPrincipal(ctx, generated.UpdateYieldDepositPrincipalParams{
		ID:              d.ID,
		PrincipalAmount: decimalToNumeric(d.PrincipalAmount),
		Status:          string(d.Status),
		UpdatedAt:       timeToPgTimestamptz(d.UpdatedAt),
	}))
}

func affectedOrNotFound(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}

func depositOrNotFound(row generated.YieldDeposit, err error) (*domain.YieldDeposit, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	return rowToDeposit(row), nil
}

func rowsToDeposits(rows []generated.YieldDeposit, err error) ([]*domain.YieldDeposit, error) {
	if err != nil {
		return nil, err
	}

	deposits := make([]*domain.YieldDeposit, 0, len(rows))
	for _, row := range rows {
		deposits = append(deposits, rowToDeposit(row))
	}

	return deposits, nil
}

func rowToDeposit(row generated.YieldDeposit) *domain.YieldDeposit {
	return &domain.YieldDeposit{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		PrincipalAmount: numericToDecimal(row.PrincipalAmount),
		AnnualYieldRate: numericToDecimal(row.AnnualYieldRate),
		StartDate:       pgDateToTime(row.StartDate),
		Status:          domain.DepositStatus(row.Status),
		LastPayoutDate:  pgDateToTimePtr(row.LastPayoutDate),
		TotalPaidOut:    numericToDecimal(row.TotalPaidOut),
		CreatedBy:       row.CreatedBy,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
