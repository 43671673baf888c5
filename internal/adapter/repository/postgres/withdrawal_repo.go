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

// WithdrawalRepository implements usecase.WithdrawalRepository.
type WithdrawalRepository struct {
	queries *generated.Queries
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepository {
	return newWithdrawalRepositoryWithDB(pool)
}

func newWithdrawalRepositoryWithDB(db generated.DBTX) *WithdrawalRepository {
	return &WithdrawalRepository{queries: generated.New(db)}
}

// Create inserts a withdrawal request.
func (r *WithdrawalRepository) Create(ctx context.Context, tx usecase.Tx, w *domain.WithdrawalRequest) error {
	return txQueries(tx).CreateWithdrawalRequest(ctx, generated.CreateWithdrawalRequestParams{
		ID:         w.ID,
		OwnerID:    w.OwnerID,
		AccountID:  w.AccountID,
		Amount:     decimalToNumeric(w.Amount),
		Status:     string(w.Status),
		Notes:      w.Notes,
		ReviewedBy: stringPtrToPgText(w.ReviewedBy),
		ReviewedAt: timePtrToPgTimestamptz(w.ReviewedAt),
		CreatedAt:  timeToPgTimestamptz(w.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(w.UpdatedAt),
	})
}

// GetByID retrieves a request by ID.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	return withdrawalOrNotFound(r.queries.GetWithdrawalRequestByID(ctx, id))
}

// GetByIDForUpdate retrieves a request by ID with a FOR UPDATE lock.
func (r *WithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.WithdrawalRequest, error) {
	return withdrawalOrNotFound(txQueries(tx).GetWithdrawalRequestByIDForUpdate(ctx, id))
}

// UpdateStatus writes status, notes and reviewer metadata.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, w *domain.WithdrawalRequest) error {
	n, err := txQueries(tx).UpdateWithdrawalRequestStatus(ctx, generated.UpdateWithdrawalRequestStatusParams{
		ID:         w.ID,
		Status:     string(w.Status),
		Notes:      w.Notes,
		ReviewedBy: stringPtrToPgText(w.ReviewedBy),
		ReviewedAt: timePtrToPgTimestamptz(w.ReviewedAt),
		UpdatedAt:  timeToPgTimestamptz(w.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrWithdrawalNotFound
	}

	return nil
}

// ListByAccount lists an account's requests, newest first.
func (r *WithdrawalRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.WithdrawalRequest, error) {
	rows, err := r.queries.ListWithdrawalRequestsByAccount(ctx, generated.ListWithdrawalRequestsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	requests := make([]*domain.WithdrawalRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, rowToWithdrawal(row))
	}

	return requests, nil
}

func withdrawalOrNotFound(row generated.WithdrawalRequest, err error) (*domain.WithdrawalRequest, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}

		return nil, err
	}

	return rowToWithdrawal(row), nil
}

func rowToWithdrawal(row generated.WithdrawalRequest) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		AccountID:  row.AccountID,
		Amount:     numericToDecimal(row.Amount),
		Status:     domain.WithdrawalStatus(row.Status),
		Notes:      row.Notes,
		ReviewedBy: pgTextToStringPtr(row.ReviewedBy),
		ReviewedAt: pgTimestamptzToTimePtr(row.ReviewedAt),
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}
