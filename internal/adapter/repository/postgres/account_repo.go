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

const loanAccountOwnerKey = "loan_accounts_owner_id_key"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a new loan account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error {
	err := txQueries(tx).CreateLoanAccount(ctx, generated.CreateLoanAccountParams{
		ID:               account.ID,
		OwnerID:          account.OwnerID,
		PrincipalAmount:  decimalToNumeric(account.PrincipalAmount),
		CurrentBalance:   decimalToNumeric(account.CurrentBalance),
		MonthlyRate:      decimalToNumeric(account.MonthlyRate),
		TotalBonuses:     decimalToNumeric(account.TotalBonuses),
		TotalWithdrawals: decimalToNumeric(account.TotalWithdrawals),
		Version:          account.Version,
		CreatedAt:        timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(account.UpdatedAt),
	})
	if isUniqueViolation(err, loanAccountOwnerKey) {
		return domain.ErrAccountExists
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	return accountOrNotFound(r.queries.GetLoanAccountByID(ctx, id))
}

// GetByOwner retrieves the account of an owner.
func (r *AccountRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.LoanAccount, error) {
	return accountOrNotFound(r.queries.GetLoanAccountByOwner(ctx, ownerID))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.LoanAccount, error) {
	return accountOrNotFound(txQueries(tx).GetLoanAccountByIDForUpdate(ctx, id))
}

// GetByOwnerForUpdate retrieves the account of an owner with a FOR UPDATE lock.
func (r *AccountRepository) GetByOwnerForUpdate(ctx context.Context, tx usecase.Tx, ownerID string) (*domain.LoanAccount, error) {
	return accountOrNotFound(txQueries(tx).GetLoanAccountByOwnerForUpdate(ctx, ownerID))
}

// UpdateBalances writes the balance, the running totals and the version.
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error {
	n, err := txQueries(tx).UpdateLoanAccountBalances(ctx, generated.UpdateLoanAccountBalancesParams{
		ID:               account.ID,
		CurrentBalance:   decimalToNumeric(account.CurrentBalance),
		TotalBonuses:     decimalToNumeric(account.TotalBonuses),
		TotalWithdrawals: decimalToNumeric(account.TotalWithdrawals),
		Version:          account.Version,
		UpdatedAt:        timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	rows, err := r.queries.ListLoanAccounts(ctx, generated.ListLoanAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.LoanAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func accountOrNotFound(row generated.LoanAccount, err error) (*domain.LoanAccount, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

func rowToAccount(row generated.LoanAccount) *domain.LoanAccount {
	return &domain.LoanAccount{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		PrincipalAmount:  numericToDecimal(row.PrincipalAmount),
		CurrentBalance:   numericToDecimal(row.CurrentBalance),
		MonthlyRate:      numericToDecimal(row.MonthlyRate),
		TotalBonuses:     numericToDecimal(row.TotalBonuses),
		TotalWithdrawals: numericToDecimal(row.TotalWithdrawals),
		Version:          row.Version,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
