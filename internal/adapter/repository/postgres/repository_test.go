package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

var (
	accountColumns = []string{"id", "owner_id", "principal_amount", "current_balance", "monthly_rate", "total_bonuses", "total_withdrawals", "version", "created_at", "updated_at"}
	depositColumns = []string{"id", "owner_id", "principal_amount", "annual_yield_rate", "start_date", "status", "last_payout_date", "total_paid_out", "created_by", "notes", "created_at", "updated_at"}
	entryColumns   = []string{"id", "account_id", "amount", "type", "description", "effective_date", "balance_after", "bonus_percentage", "reference_id", "created_at"}
)

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Tx {
	t.Helper()
	pool.ExpectBegin()
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return tx
}

func pgDay(s string) pgtype.Date {
	return pgtype.Date{Time: day(s), Valid: true}
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("FROM loan_accounts WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := newAccountRepositoryWithDB(pool).GetByID(context.Background(), "missing")

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestAccountRepositoryGetByOwnerForUpdate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	pool.ExpectQuery(regexp.QuoteMeta("FROM loan_accounts WHERE owner_id = $1 FOR UPDATE")).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("acc-1", "owner-1", "1000.00", "1214.75", "0.010000", "50.00", "30.00", int64(5), pgTime(now), pgTime(now)))

	account, err := newAccountRepositoryWithDB(pool).GetByOwnerForUpdate(context.Background(), tx, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-1" || account.Version != 5 {
		t.Fatalf("unexpected account %+v", account)
	}
	if !account.CurrentBalance.Equal(decimal.RequireFromString("1214.75")) {
		t.Fatalf("expected balance 1214.75, got %s", account.CurrentBalance)
	}
	if !account.MonthlyRate.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("expected rate 0.01, got %s", account.MonthlyRate)
	}
	assertExpectations(t, pool)
}

func TestAccountRepositoryCreateDuplicateOwner(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectExec(regexp.QuoteMeta("INSERT INTO loan_accounts")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: loanAccountOwnerKey})

	account := domain.NewLoanAccount("acc-1", "owner-1", decimal.NewFromInt(10), decimal.RequireFromString("0.01"), time.Now())
	err := newAccountRepositoryWithDB(pool).Create(context.Background(), tx, account)

	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestAccountRepositoryUpdateBalancesMissingRow(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectExec(regexp.QuoteMeta("UPDATE loan_accounts")).
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(2), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	account := &domain.LoanAccount{ID: "acc-1", Version: 2}
	err := newAccountRepositoryWithDB(pool).UpdateBalances(context.Background(), tx, account)

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestTransactionRepositoryListByEffectiveDate(t *testing.T) {
	pool := newMockPool(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	bonus := domain.TransactionTypeBonus
	from := day("2024-01-01")
	pool.ExpectQuery(regexp.QuoteMeta("ORDER BY effective_date DESC, created_at DESC, id DESC")).
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int32(20), int32(0)).
		WillReturnRows(pgxmock.NewRows(entryColumns).
			AddRow("tx-1", "acc-1", "50.00", "bonus", "", pgDay("2024-02-01"), "1050.00", "5.00", "dep-1", pgTime(created)))

	entries, err := newTransactionRepositoryWithDB(pool).List(context.Background(), domain.TransactionFilter{
		AccountID: "acc-1",
		Type:      &bonus,
		From:      &from,
		Order:     domain.OrderByEffectiveDate,
		Limit:     20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Type != domain.TransactionTypeBonus || !entry.EffectiveDate.Equal(day("2024-02-01")) {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.BonusPercentage == nil || !entry.BonusPercentage.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected bonus percentage 5, got %v", entry.BonusPercentage)
	}
	if entry.ReferenceID == nil || *entry.ReferenceID != "dep-1" {
		t.Fatalf("expected reference dep-1, got %v", entry.ReferenceID)
	}
	assertExpectations(t, pool)
}

func TestTransactionRepositoryListDefaultsToCreationOrder(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, effective_date DESC, id DESC")).
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int32(50), int32(50)).
		WillReturnRows(pgxmock.NewRows(entryColumns))

	entries, err := newTransactionRepositoryWithDB(pool).List(context.Background(), domain.TransactionFilter{
		AccountID: "acc-1",
		Order:     domain.OrderByCreated,
		Limit:     50,
		Offset:    50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	assertExpectations(t, pool)
}

func TestTransactionRepositorySumByAccount(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow("-12.50"))

	sum, err := newTransactionRepositoryWithDB(pool).SumByAccount(context.Background(), tx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(decimal.RequireFromString("-12.5")) {
		t.Fatalf("expected -12.5, got %s", sum)
	}
	assertExpectations(t, pool)
}

func TestDepositRepositoryListActiveAfter(t *testing.T) {
	pool := newMockPool(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pool.ExpectQuery(regexp.QuoteMeta("WHERE status = 'active' AND id > $1")).
		WithArgs("dep-1", int32(2)).
		WillReturnRows(pgxmock.NewRows(depositColumns).
			AddRow("dep-2", "owner-1", "1000.00", "0.120000", pgDay("2023-05-10"), "active", pgDay("2024-05-10"), "120.00", "admin", "", pgTime(now), pgTime(now)).
			AddRow("dep-3", "owner-2", "500.00", "0.100000", pgDay("2024-01-01"), "active", pgDay("2024-01-01"), "0", "admin", "", pgTime(now), pgTime(now)))

	deposits, err := newDepositRepositoryWithDB(pool).ListActiveAfter(context.Background(), "dep-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deposits) != 2 || deposits[0].ID != "dep-2" || deposits[1].ID != "dep-3" {
		t.Fatalf("unexpected deposits %+v", deposits)
	}
	first := deposits[0]
	if !first.IsActive() || !first.StartDate.Equal(day("2023-05-10")) {
		t.Fatalf("unexpected deposit %+v", first)
	}
	if first.LastPayoutDate == nil || !first.LastPayoutDate.Equal(day("2024-05-10")) {
		t.Fatalf("expected last payout 2024-05-10, got %v", first.LastPayoutDate)
	}
	if !first.PayoutAmount().Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected payout 120, got %s", first.PayoutAmount())
	}
	assertExpectations(t, pool)
}

func TestDepositRepositoryUpdatesReportMissingRows(t *testing.T) {
	deposit := &domain.YieldDeposit{ID: "dep-1", Status: domain.DepositStatusActive}

	tests := []struct {
		name  string
		query string
		args  int
		call  func(r *DepositRepository, tx usecase.Tx) error
	}{
		{
			name:  "patch",
			query: "SET status = $2, notes = $3, principal_amount = $4",
			args:  5,
			call: func(r *DepositRepository, tx usecase.Tx) error {
				return r.ApplyPatch(context.Background(), tx, deposit)
			},
		},
		{
			name:  "payout",
			query: "SET last_payout_date = $2, total_paid_out = $3",
			args:  4,
			call: func(r *DepositRepository, tx usecase.Tx) error {
				return r.RecordPayout(context.Background(), tx, deposit)
			},
		},
		{
			name:  "principal",
			query: "SET principal_amount = $2, status = $3",
			args:  4,
			call: func(r *DepositRepository, tx usecase.Tx) error {
				return r.UpdatePrincipal(context.Background(), tx, deposit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			tx := beginTx(t, pool)
			args := make([]any, tt.args)
			for i := range args {
				args[i] = pgxmock.AnyArg()
			}
			pool.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(args...).
				WillReturnResult(pgxmock.NewResult("UPDATE", 0))

			err := tt.call(newDepositRepositoryWithDB(pool), tx)

			if !errors.Is(err, domain.ErrDepositNotFound) {
				t.Fatalf("expected ErrDepositNotFound, got %v", err)
			}
			assertExpectations(t, pool)
		})
	}
}

func TestPayoutRepositoryCreateDuplicate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectExec(regexp.QuoteMeta("INSERT INTO yield_payouts")).
		WithArgs("pay-1", "dep-1", pgxmock.AnyArg(), pgxmock.AnyArg(), "tx-1", "system", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: payoutDepositDateKey})

	err := newPayoutRepositoryWithDB(pool).Create(context.Background(), tx, &domain.YieldPayout{
		ID:            "pay-1",
		DepositID:     "dep-1",
		Amount:        decimal.NewFromInt(120),
		PayoutDate:    day("2024-05-10"),
		TransactionID: "tx-1",
		ProcessedBy:   "system",
		CreatedAt:     time.Now(),
	})

	if !errors.Is(err, domain.ErrDuplicatePayout) {
		t.Fatalf("expected ErrDuplicatePayout, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestPayoutRepositoryCreatePassesOtherErrors(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "yield_payouts_deposit_id_fkey"}
	pool.ExpectExec(regexp.QuoteMeta("INSERT INTO yield_payouts")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(fkErr)

	err := newPayoutRepositoryWithDB(pool).Create(context.Background(), tx, &domain.YieldPayout{ID: "pay-1"})

	if !errors.Is(err, fkErr) || errors.Is(err, domain.ErrDuplicatePayout) {
		t.Fatalf("expected the foreign key error, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestPayoutRepositoryExistsForDate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("dep-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := newPayoutRepositoryWithDB(pool).ExistsForDate(context.Background(), tx, "dep-1", day("2024-05-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatalf("expected payout to exist")
	}
	assertExpectations(t, pool)
}

func TestWithdrawalRepositoryGetByIDForUpdate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	pool.ExpectQuery(regexp.QuoteMeta("FROM withdrawal_requests WHERE id = $1 FOR UPDATE")).
		WithArgs("wd-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "account_id", "amount", "status", "notes", "reviewed_by", "reviewed_at", "created_at", "updated_at"}).
			AddRow("wd-1", "owner-1", "acc-1", "4000.00", "approved", "", "admin-1", pgTime(now), pgTime(now), pgTime(now)))

	request, err := newWithdrawalRepositoryWithDB(pool).GetByIDForUpdate(context.Background(), tx, "wd-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != domain.WithdrawalStatusApproved {
		t.Fatalf("expected approved, got %s", request.Status)
	}
	if request.ReviewedBy == nil || *request.ReviewedBy != "admin-1" {
		t.Fatalf("expected reviewer admin-1, got %v", request.ReviewedBy)
	}
	if request.ReviewedAt == nil || !request.ReviewedAt.Equal(now) {
		t.Fatalf("expected reviewed at %v, got %v", now, request.ReviewedAt)
	}
	assertExpectations(t, pool)
}

func TestWithdrawalRepositoryUpdateStatusMissingRow(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectExec(regexp.QuoteMeta("UPDATE withdrawal_requests")).
		WithArgs("wd-1", "completed", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := newWithdrawalRepositoryWithDB(pool).UpdateStatus(context.Background(), tx, &domain.WithdrawalRequest{
		ID:     "wd-1",
		Status: domain.WithdrawalStatusCompleted,
	})

	if !errors.Is(err, domain.ErrWithdrawalNotFound) {
		t.Fatalf("expected ErrWithdrawalNotFound, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestOutboxRepositoryCreateMarshalsPayload(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	pool.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs("evt-1", "dep-1", "yield_deposit", domain.EventTypePayoutProcessed, []byte(`{"amount":"120"}`), pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := newOutboxRepositoryWithDB(pool).Create(context.Background(), tx, &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "dep-1",
		AggregateType: "yield_deposit",
		EventType:     domain.EventTypePayoutProcessed,
		Payload:       map[string]any{"amount": "120"},
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}
