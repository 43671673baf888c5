package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus represents the lifecycle state of a yield deposit.
type DepositStatus string

const (
	DepositStatusActive    DepositStatus = "active"
	DepositStatusInactive  DepositStatus = "inactive"
	DepositStatusCompleted DepositStatus = "completed"
)

// Valid reports whether s is a known deposit status.
func (s DepositStatus) Valid() bool {
	switch s {
	case DepositStatusActive, DepositStatusInactive, DepositStatusCompleted:
		return true
	}
	return false
}

// YieldDeposit is a yield-bearing deposit. Its principal only ever
// decreases; once it leaves the active status payouts and withdrawal
// allocations stop touching it.
type YieldDeposit struct {
	ID              string
	OwnerID         string
	PrincipalAmount decimal.Decimal
	AnnualYieldRate decimal.Decimal
	StartDate       time.Time
	Status          DepositStatus
	LastPayoutDate  *time.Time
	TotalPaidOut    decimal.Decimal
	CreatedBy       string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive reports whether the deposit takes part in payouts and allocations.
func (d *YieldDeposit) IsActive() bool {
	return d.Status == DepositStatusActive
}

// PayoutAmount is one annual yield on the current principal, in cents.
func (d *YieldDeposit) PayoutAmount() decimal.Decimal {
	return d.PrincipalAmount.Mul(d.AnnualYieldRate).Round(2)
}

// RecordPayout advances the payout bookkeeping.
func (d *YieldDeposit) RecordPayout(payoutDate time.Time, amount decimal.Decimal, now time.Time) {
	date := DateOf(payoutDate)
	d.LastPayoutDate = &date
	d.TotalPaidOut = d.TotalPaidOut.Add(amount)
	d.UpdatedAt = now
}

// Reduce takes up to amount from the principal and returns what was taken.
// A deposit drained to zero becomes inactive.
func (d *YieldDeposit) Reduce(amount decimal.Decimal, now time.Time) decimal.Decimal {
	reduce := decimal.Min(amount, d.PrincipalAmount)
	if !reduce.IsPositive() {
		return decimal.Zero
	}

	d.PrincipalAmount = d.PrincipalAmount.Sub(reduce)
	if d.PrincipalAmount.IsZero() {
		d.Status = DepositStatusInactive
	}
	d.UpdatedAt = now

	return reduce
}

// DepositPatch lists the only fields an administrative update may change.
// Nil fields are left untouched.
type DepositPatch struct {
	Status          *DepositStatus
	Notes           *string
	PrincipalAmount *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p DepositPatch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil && p.PrincipalAmount == nil
}

// ApplyPatch validates p against the deposit and applies it.
func (d *YieldDeposit) ApplyPatch(p DepositPatch, now time.Time) error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if d.Status == DepositStatusCompleted && (p.Status != nil || p.PrincipalAmount != nil) {
		return ErrDepositCompleted
	}

	status := d.Status
	if p.Status != nil {
		if !p.Status.Valid() {
			return ErrInvalidDepositStatus
		}
		status = *p.Status
	}

	principal := d.PrincipalAmount
	if p.PrincipalAmount != nil {
		switch {
		case p.PrincipalAmount.IsNegative():
			return ErrNegativePrincipal
		case p.PrincipalAmount.GreaterThan(d.PrincipalAmount):
			return ErrPrincipalIncrease
		}
		principal = *p.PrincipalAmount
	}

	if principal.IsZero() {
		if p.Status != nil && status == DepositStatusActive {
			return ErrActiveWithoutPrincipal
		}
		if status == DepositStatusActive {
			status = DepositStatusInactive
		}
	}

	d.Status = status
	d.PrincipalAmount = principal
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	d.UpdatedAt = now

	return nil
}

// CompareLIFO orders deposits newest-created first and breaks ties by id,
// descending. Withdrawal allocation consumes deposits in this order.
func CompareLIFO(a, b *YieldDeposit) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// SortLIFO sorts deposits in place with CompareLIFO.
func SortLIFO(deposits []*YieldDeposit) {
	slices.SortFunc(deposits, CompareLIFO)
}
