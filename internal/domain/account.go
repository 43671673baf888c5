package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanAccount is an owner's loan account. Its balance moves only through
// posted transactions, so CurrentBalance always equals PrincipalAmount plus
// the sum of the account's ledger amounts.
type LoanAccount struct {
	ID               string
	OwnerID          string
	PrincipalAmount  decimal.Decimal
	CurrentBalance   decimal.Decimal
	MonthlyRate      decimal.Decimal
	TotalBonuses     decimal.Decimal
	TotalWithdrawals decimal.Decimal
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLoanAccount opens an account whose balance starts at the principal.
func NewLoanAccount(id, ownerID string, principal, monthlyRate decimal.Decimal, now time.Time) *LoanAccount {
	return &LoanAccount{
		ID:               id,
		OwnerID:          ownerID,
		PrincipalAmount:  principal,
		CurrentBalance:   principal,
		MonthlyRate:      monthlyRate,
		TotalBonuses:     decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Apply folds a ledger entry into the running balance and aggregates.
func (a *LoanAccount) Apply(t *Transaction) {
	a.CurrentBalance = a.CurrentBalance.Add(t.Amount)

	switch t.Type {
	case TransactionTypeBonus:
		a.TotalBonuses = a.TotalBonuses.Add(t.Amount)
	case TransactionTypeWithdrawal:
		a.TotalWithdrawals = a.TotalWithdrawals.Add(t.Amount.Abs())
	}

	a.Version++
	a.UpdatedAt = t.CreatedAt
}

// ValidateWithdrawal checks that the balance covers amount.
func (a *LoanAccount) ValidateWithdrawal(amount decimal.Decimal) error {
	if amount.GreaterThan(a.CurrentBalance) {
		return ErrWithdrawalExceedsBalance
	}
	return nil
}

// ExpectedBalance is the balance implied by the journal sum.
func (a *LoanAccount) ExpectedBalance(ledgerSum decimal.Decimal) decimal.Decimal {
	return a.PrincipalAmount.Add(ledgerSum)
}
