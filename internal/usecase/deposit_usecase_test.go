package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

func TestDepositUseCase_CreateDeposit_CreditsAccount(t *testing.T) {
	h := newHarness(t)
	account := h.openAccount(t, "owner-1", "1000")

	deposit := h.addDeposit(t, "owner-1", "5000", "0.1", "2024-02-15")

	assert.Equal(t, domain.DepositStatusActive, deposit.Status)
	assert.Equal(t, "admin-1", deposit.CreatedBy)
	assertDecimal(t, "0", deposit.TotalPaidOut)
	assert.Nil(t, deposit.LastPayoutDate)

	entries := h.entriesOfType(account.ID, domain.TransactionTypeYieldDeposit)
	require.Len(t, entries, 1)
	assertDecimal(t, "5000", entries[0].Amount)
	assert.True(t, entries[0].EffectiveDate.Equal(date("2024-02-15")))
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, deposit.ID, *entries[0].ReferenceID)

	assertDecimal(t, "6000", h.account(t, account.ID).CurrentBalance)
	h.assertLedgerInvariant(t, account.ID)
	assert.Equal(t, []string{
		domain.EventTypeAccountCreated,
		domain.EventTypeTransactionPosted,
		domain.EventTypeDepositCreated,
	}, h.outbox.EventTypes())
}

func TestDepositUseCase_CreateDeposit_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateDepositInput
		err   error
	}{
		{
			name:  "owner without account",
			input: usecase.CreateDepositInput{OwnerID: "stranger", PrincipalAmount: dec("10"), AnnualYieldRate: dec("0.1"), StartDate: date("2024-01-01")},
			err:   domain.ErrAccountNotFound,
		},
		{
			name:  "zero rate",
			input: usecase.CreateDepositInput{OwnerID: "owner-1", PrincipalAmount: dec("10"), AnnualYieldRate: dec("0"), StartDate: date("2024-01-01")},
			err:   domain.ErrInvalidRate,
		},
		{
			name:  "rate finer than six places",
			input: usecase.CreateDepositInput{OwnerID: "owner-1", PrincipalAmount: dec("1000000"), AnnualYieldRate: dec("0.1234567"), StartDate: date("2024-01-01")},
			err:   domain.ErrRatePrecision,
		},
		{
			name:  "non-positive principal",
			input: usecase.CreateDepositInput{OwnerID: "owner-1", PrincipalAmount: dec("0"), AnnualYieldRate: dec("0.1"), StartDate: date("2024-01-01")},
			err:   domain.ErrInvalidAmount,
		},
		{
			name:  "missing start date",
			input: usecase.CreateDepositInput{OwnerID: "owner-1", PrincipalAmount: dec("10"), AnnualYieldRate: dec("0.1")},
			err:   domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			account := h.openAccount(t, "owner-1", "1000")

			_, err := h.depositUC.CreateDeposit(context.Background(), tt.input)

			require.ErrorIs(t, err, tt.err)
			assert.Empty(t, h.transactions.Entries(account.ID))
			deposits, err := h.depositUC.ListDepositsForOwner(context.Background(), "owner-1", false)
			require.NoError(t, err)
			assert.Empty(t, deposits)
		})
	}
}

func TestDepositUseCase_UpdateDeposit(t *testing.T) {
	inactive := domain.DepositStatusInactive
	active := domain.DepositStatusActive
	completed := domain.DepositStatusCompleted
	bogus := domain.DepositStatus("frozen")
	notes := "moved to manual review"

	tests := []struct {
		name       string
		prepare    func(t *testing.T, h *harness, id string)
		patch      domain.DepositPatch
		err        error
		wantStatus domain.DepositStatus
		wantAmount string
	}{
		{
			name:       "lower principal",
			patch:      domain.DepositPatch{PrincipalAmount: ptr(dec("400"))},
			wantStatus: domain.DepositStatusActive,
			wantAmount: "400",
		},
		{
			name:       "zero principal deactivates",
			patch:      domain.DepositPatch{PrincipalAmount: ptr(dec("0"))},
			wantStatus: domain.DepositStatusInactive,
			wantAmount: "0",
		},
		{
			name:       "notes only",
			patch:      domain.DepositPatch{Notes: &notes},
			wantStatus: domain.DepositStatusActive,
			wantAmount: "1000",
		},
		{
			name:       "deactivate",
			patch:      domain.DepositPatch{Status: &inactive},
			wantStatus: domain.DepositStatusInactive,
			wantAmount: "1000",
		},
		{
			name:  "principal increase rejected",
			patch: domain.DepositPatch{PrincipalAmount: ptr(dec("1000.01"))},
			err:   domain.ErrPrincipalIncrease,
		},
		{
			name:  "negative principal rejected",
			patch: domain.DepositPatch{PrincipalAmount: ptr(dec("-1"))},
			err:   domain.ErrNegativePrincipal,
		},
		{
			name:  "unknown status rejected",
			patch: domain.DepositPatch{Status: &bogus},
			err:   domain.ErrInvalidDepositStatus,
		},
		{
			name:  "empty patch rejected",
			patch: domain.DepositPatch{},
			err:   domain.ErrEmptyPatch,
		},
		{
			name: "completed deposit is frozen",
			prepare: func(t *testing.T, h *harness, id string) {
				_, err := h.depositUC.UpdateDeposit(context.Background(), id, domain.DepositPatch{Status: &completed})
				require.NoError(t, err)
			},
			patch: domain.DepositPatch{Status: &active},
			err:   domain.ErrDepositCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.openAccount(t, "owner-1", "1000")
			deposit := h.addDeposit(t, "owner-1", "1000", "0.1", "2024-01-01")
			if tt.prepare != nil {
				tt.prepare(t, h, deposit.ID)
			}
			before := h.deposit(t, deposit.ID)

			updated, err := h.depositUC.UpdateDeposit(context.Background(), deposit.ID, tt.patch)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				after := h.deposit(t, deposit.ID)
				assert.Equal(t, before.Status, after.Status)
				assert.True(t, before.PrincipalAmount.Equal(after.PrincipalAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, updated.Status)
			assertDecimal(t, tt.wantAmount, updated.PrincipalAmount)

			stored := h.deposit(t, deposit.ID)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assertDecimal(t, tt.wantAmount, stored.PrincipalAmount)
		})
	}
}

func TestDepositUseCase_UpdateDeposit_NotFound(t *testing.T) {
	h := newHarness(t)
	notes := "x"

	_, err := h.depositUC.UpdateDeposit(context.Background(), "missing", domain.DepositPatch{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrDepositNotFound)
}

func TestDepositUseCase_ListActiveForOwner_LIFO(t *testing.T) {
	h := newHarness(t)
	h.openAccount(t, "owner-1", "1000")
	h.openAccount(t, "owner-2", "1000")

	oldest := h.addDeposit(t, "owner-1", "100", "0.1", "2023-01-01")
	middle := h.addDeposit(t, "owner-1", "200", "0.1", "2022-01-01")
	newest := h.addDeposit(t, "owner-1", "300", "0.1", "2021-01-01")
	h.addDeposit(t, "owner-2", "400", "0.1", "2024-01-01")

	inactive := domain.DepositStatusInactive
	_, err := h.depositUC.UpdateDeposit(context.Background(), middle.ID, domain.DepositPatch{Status: &inactive})
	require.NoError(t, err)

	active, err := h.depositUC.ListActiveForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Creation order decides, not the start date.
	assert.Equal(t, newest.ID, active[0].ID)
	assert.Equal(t, oldest.ID, active[1].ID)

	all, err := h.depositUC.ListDepositsForOwner(context.Background(), "owner-1", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func ptr[T any](v T) *T {
	return &v
}
