package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus represents the state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
	WithdrawalStatusProcessed WithdrawalStatus = "processed"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusPending:  {WithdrawalStatusApproved, WithdrawalStatusRejected, WithdrawalStatusCompleted},
	WithdrawalStatusApproved: {WithdrawalStatusRejected, WithdrawalStatusCompleted},
}

// CanTransitionTo reports whether a request in status s may move to next.
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s WithdrawalStatus) IsTerminal() bool {
	return len(withdrawalTransitions[s]) == 0
}

// WithdrawalRequest asks to withdraw Amount from a loan account.
type WithdrawalRequest struct {
	ID         string
	OwnerID    string
	AccountID  string
	Amount     decimal.Decimal
	Status     WithdrawalStatus
	Notes      string
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transition moves the request to next and stamps the reviewer.
func (w *WithdrawalRequest) Transition(next WithdrawalStatus, actorID string, now time.Time) error {
	if !w.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}

	w.Status = next
	w.ReviewedBy = &actorID
	w.ReviewedAt = &now
	w.UpdatedAt = now

	return nil
}

// AllocationPolicy decides what happens when active deposit principal does
// not cover a withdrawal.
type AllocationPolicy string

const (
	// AllocationPolicyPreserve debits the full amount and reports the
	// unallocated shortfall.
	AllocationPolicyPreserve AllocationPolicy = "preserve"
	// AllocationPolicyStrict refuses the withdrawal.
	AllocationPolicyStrict AllocationPolicy = "strict"
)

// ParseAllocationPolicy defaults an empty string to AllocationPolicyPreserve.
func ParseAllocationPolicy(s string) (AllocationPolicy, error) {
	switch AllocationPolicy(s) {
	case "", AllocationPolicyPreserve:
		return AllocationPolicyPreserve, nil
	case AllocationPolicyStrict:
		return AllocationPolicyStrict, nil
	default:
		return "", fmt.Errorf("%w: unknown allocation policy %q", ErrValidation, s)
	}
}

// Allocation records how much one deposit contributed to a withdrawal.
type Allocation struct {
	DepositID      string
	OriginalAmount decimal.Decimal
	ReducedBy      decimal.Decimal
	NewAmount      decimal.Decimal
}

// AllocateLIFO reduces the given deposits, already in LIFO order, until
// amount is covered. Deposits that are inactive or empty are skipped. It
// returns one allocation per touched deposit and the part of amount that no
// deposit could cover.
func AllocateLIFO(deposits []*YieldDeposit, amount decimal.Decimal, now time.Time) ([]Allocation, decimal.Decimal) {
	remaining := amount
	allocations := make([]Allocation, 0, len(deposits))

	for _, d := range deposits {
		if !remaining.IsPositive() {
			break
		}
		if !d.IsActive() || !d.PrincipalAmount.IsPositive() {
			continue
		}

		original := d.PrincipalAmount
		reduced := d.Reduce(remaining, now)
		remaining = remaining.Sub(reduced)

		allocations = append(allocations, Allocation{
			DepositID:      d.ID,
			OriginalAmount: original,
			ReducedBy:      reduced,
			NewAmount:      d.PrincipalAmount,
		})
	}

	return allocations, remaining
}
