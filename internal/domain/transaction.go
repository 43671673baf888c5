package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeLoan               TransactionType = "loan"
	TransactionTypeMonthlyPayment     TransactionType = "monthly_payment"
	TransactionTypeBonus              TransactionType = "bonus"
	TransactionTypeWithdrawal         TransactionType = "withdrawal"
	TransactionTypeYieldDeposit       TransactionType = "yield_deposit"
	TransactionTypeYieldPayment       TransactionType = "yield_payment"
	TransactionTypeAdjustmentIncrease TransactionType = "adjustment_increase"
	TransactionTypeAdjustmentDecrease TransactionType = "adjustment_decrease"
)

// TransactionTypes lists every known type.
var TransactionTypes = []TransactionType{
	TransactionTypeLoan,
	TransactionTypeMonthlyPayment,
	TransactionTypeBonus,
	TransactionTypeWithdrawal,
	TransactionTypeYieldDeposit,
	TransactionTypeYieldPayment,
	TransactionTypeAdjustmentIncrease,
	TransactionTypeAdjustmentDecrease,
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	for _, known := range TransactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTransactionType converts s into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", ErrInvalidTransactionType
	}
	return t, nil
}

// Transaction is an immutable ledger entry. Corrections are new entries.
type Transaction struct {
	ID              string
	AccountID       string
	Amount          decimal.Decimal
	Type            TransactionType
	Description     string
	EffectiveDate   time.Time
	BalanceAfter    decimal.Decimal
	BonusPercentage *decimal.Decimal
	ReferenceID     *string
	CreatedAt       time.Time
}

// ValidateTransactionAmount enforces the sign convention of each type.
// Loan and monthly payment entries may carry either sign.
func ValidateTransactionAmount(t TransactionType, amount decimal.Decimal) error {
	if !t.Valid() {
		return ErrInvalidTransactionType
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if err := validateMagnitude(amount.Abs()); err != nil {
		return err
	}

	switch t {
	case TransactionTypeWithdrawal, TransactionTypeAdjustmentDecrease:
		if !amount.IsNegative() {
			return ErrAmountSign
		}
	case TransactionTypeBonus, TransactionTypeYieldDeposit, TransactionTypeYieldPayment, TransactionTypeAdjustmentIncrease:
		if !amount.IsPositive() {
			return ErrAmountSign
		}
	}

	return nil
}

// ValidateBonusPercentage allows a percentage only on bonus entries.
func ValidateBonusPercentage(t TransactionType, pct *decimal.Decimal) error {
	if pct == nil {
		return nil
	}
	if t != TransactionTypeBonus {
		return ErrInvalidBonusPercentage
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidBonusPercentage
	}
	if !pct.Equal(pct.Round(PercentageScale)) {
		return ErrPercentagePrecision
	}
	return nil
}

// TransactionOrder selects how a ledger query is sorted.
type TransactionOrder string

const (
	// OrderByCreated sorts newest-created first, effective date second.
	OrderByCreated TransactionOrder = "created"
	// OrderByEffectiveDate sorts by effective date first, creation second.
	OrderByEffectiveDate TransactionOrder = "effective"
)

// ParseTransactionOrder defaults an empty string to OrderByCreated.
func ParseTransactionOrder(s string) (TransactionOrder, error) {
	switch TransactionOrder(s) {
	case "", OrderByCreated:
		return OrderByCreated, nil
	case OrderByEffectiveDate:
		return OrderByEffectiveDate, nil
	default:
		return "", ErrInvalidTransactionOrder
	}
}

// TransactionFilter narrows a ledger query. From and To are inclusive
// effective dates.
type TransactionFilter struct {
	AccountID string
	Type      *TransactionType
	From      *time.Time
	To        *time.Time
	Order     TransactionOrder
	Limit     int
	Offset    int
}
