package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/metrics"
	"github.com/iho/yieldledger/internal/usecase"
	"github.com/iho/yieldledger/internal/usecase/mocks"
)

// harness wires every use case over one in-memory transactional store.
type harness struct {
	txMgr        *mocks.MockTxManager
	accounts     *mocks.MockAccountRepository
	transactions *mocks.MockTransactionRepository
	deposits     *mocks.MockDepositRepository
	payouts      *mocks.MockPayoutRepository
	withdrawals  *mocks.MockWithdrawalRepository
	outbox       *mocks.MockOutboxRepository
	idGen        *mocks.MockIDGenerator
	metrics      *metrics.Metrics

	ledger         *usecase.LedgerUseCase
	accountUC      *usecase.AccountUseCase
	depositUC      *usecase.DepositUseCase
	payoutUC       *usecase.PayoutUseCase
	withdrawalUC   *usecase.WithdrawalUseCase
	reconciliation *usecase.ReconciliationUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		accounts:     mocks.NewMockAccountRepository(),
		transactions: mocks.NewMockTransactionRepository(),
		deposits:     mocks.NewMockDepositRepository(),
		payouts:      mocks.NewMockPayoutRepository(),
		withdrawals:  mocks.NewMockWithdrawalRepository(),
		outbox:       mocks.NewMockOutboxRepository(),
		idGen:        mocks.NewMockIDGenerator(),
		metrics:      metrics.NewWithRegisterer(prometheus.NewRegistry()),
	}
	h.txMgr = mocks.NewMockTxManager(h.accounts, h.transactions, h.deposits, h.payouts, h.withdrawals, h.outbox)

	h.ledger = usecase.NewLedgerUseCase(h.transactions, h.idGen)
	h.accountUC = usecase.NewAccountUseCase(h.txMgr, h.accounts, h.ledger, h.outbox, h.idGen, h.metrics)
	h.depositUC = usecase.NewDepositUseCase(h.txMgr, h.deposits, h.accounts, h.accountUC, h.outbox, h.idGen, h.metrics)
	h.payoutUC = h.newPayoutUseCase(nil, nil, 0)
	h.withdrawalUC = h.newWithdrawalUseCase(domain.AllocationPolicyPreserve)
	h.reconciliation = usecase.NewReconciliationUseCase(h.txMgr, h.accounts, h.transactions, h.metrics)

	return h
}

func (h *harness) newPayoutUseCase(lock usecase.BatchLock, retrier usecase.Retrier, batchSize int) *usecase.PayoutUseCase {
	return usecase.NewPayoutUseCase(usecase.PayoutUseCaseConfig{
		TxManager:   h.txMgr,
		DepositRepo: h.deposits,
		PayoutRepo:  h.payouts,
		AccountRepo: h.accounts,
		Accounts:    h.accountUC,
		OutboxRepo:  h.outbox,
		IDGen:       h.idGen,
		Metrics:     h.metrics,
		Retrier:     retrier,
		Lock:        lock,
		BatchSize:   batchSize,
	})
}

func (h *harness) newWithdrawalUseCase(policy domain.AllocationPolicy) *usecase.WithdrawalUseCase {
	return usecase.NewWithdrawalUseCase(usecase.WithdrawalUseCaseConfig{
		TxManager:      h.txMgr,
		WithdrawalRepo: h.withdrawals,
		AccountRepo:    h.accounts,
		DepositRepo:    h.deposits,
		Accounts:       h.accountUC,
		OutboxRepo:     h.outbox,
		IDGen:          h.idGen,
		Metrics:        h.metrics,
		Policy:         policy,
	})
}

func (h *harness) openAccount(t *testing.T, owner, principal string) *domain.LoanAccount {
	t.Helper()
	account, err := h.accountUC.CreateAccount(context.Background(), usecase.CreateAccountInput{
		OwnerID:         owner,
		PrincipalAmount: dec(principal),
		MonthlyRate:     dec("0.01"),
	})
	require.NoError(t, err)
	return account
}

func (h *harness) addDeposit(t *testing.T, owner, principal, rate, start string) *domain.YieldDeposit {
	t.Helper()
	deposit, err := h.depositUC.CreateDeposit(context.Background(), usecase.CreateDepositInput{
		OwnerID:         owner,
		PrincipalAmount: dec(principal),
		AnnualYieldRate: dec(rate),
		StartDate:       date(start),
		CreatedBy:       "admin-1",
	})
	require.NoError(t, err)
	return deposit
}

func (h *harness) account(t *testing.T, id string) *domain.LoanAccount {
	t.Helper()
	account, err := h.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return account
}

func (h *harness) deposit(t *testing.T, id string) *domain.YieldDeposit {
	t.Helper()
	deposit, err := h.deposits.GetByID(context.Background(), id)
	require.NoError(t, err)
	return deposit
}

// assertLedgerInvariant checks balance == principal + sum of ledger amounts.
func (h *harness) assertLedgerInvariant(t *testing.T, accountID string) {
	t.Helper()
	account := h.account(t, accountID)
	sum, err := h.transactions.SumByAccount(context.Background(), nil, accountID)
	require.NoError(t, err)
	assertDecimal(t, account.PrincipalAmount.Add(sum).String(), account.CurrentBalance)
}

func (h *harness) entriesOfType(accountID string, typ domain.TransactionType) []*domain.Transaction {
	var out []*domain.Transaction
	for _, e := range h.transactions.Entries(accountID) {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
