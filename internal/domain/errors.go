package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the use cases matches exactly one of
// them with errors.Is; the transport layer maps kinds to responses.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrValidation        = errors.New("validation failed")
	ErrStorage           = errors.New("storage failure")
)

var (
	// Loan account errors
	ErrAccountNotFound = fmt.Errorf("loan account %w", ErrNotFound)
	ErrAccountExists   = fmt.Errorf("%w: owner already has a loan account", ErrConflict)

	// Deposit errors
	ErrDepositNotFound  = fmt.Errorf("yield deposit %w", ErrNotFound)
	ErrDepositNotActive = fmt.Errorf("active yield deposit %w", ErrNotFound)
	ErrDepositCompleted = fmt.Errorf("%w: yield deposit is completed", ErrConflict)

	// Payout errors
	ErrDuplicatePayout = fmt.Errorf("%w: payout already recorded for this deposit and date", ErrConflict)
	ErrBatchInProgress = fmt.Errorf("%w: payout batch already running", ErrConflict)

	// Withdrawal errors
	ErrWithdrawalNotFound       = fmt.Errorf("withdrawal request %w", ErrNotFound)
	ErrInvalidStatusTransition  = fmt.Errorf("%w: invalid withdrawal status transition", ErrConflict)
	ErrWithdrawalExceedsBalance = fmt.Errorf("%w: withdrawal exceeds account balance", ErrInsufficientFunds)
	ErrUnderCollateralized      = fmt.Errorf("%w: active deposit principal does not cover withdrawal", ErrInsufficientFunds)
)

// Validation errors
var (
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrZeroAmount              = fmt.Errorf("%w: amount must not be zero", ErrValidation)
	ErrAmountSign              = fmt.Errorf("%w: amount sign does not match transaction type", ErrValidation)
	ErrAmountTooLarge          = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrAmountPrecision         = fmt.Errorf("%w: amount has more than two decimal places", ErrValidation)
	ErrInvalidRate             = fmt.Errorf("%w: rate out of range", ErrValidation)
	ErrRatePrecision           = fmt.Errorf("%w: rate has more than six decimal places", ErrValidation)
	ErrPercentagePrecision     = fmt.Errorf("%w: bonus percentage has more than two decimal places", ErrValidation)
	ErrInvalidTransactionType  = fmt.Errorf("%w: unknown transaction type", ErrValidation)
	ErrInvalidBonusPercentage  = fmt.Errorf("%w: bonus percentage must be between 0 and 100 on bonus entries", ErrValidation)
	ErrInvalidDepositStatus    = fmt.Errorf("%w: unknown deposit status", ErrValidation)
	ErrPrincipalIncrease       = fmt.Errorf("%w: deposit principal can only decrease", ErrValidation)
	ErrNegativePrincipal       = fmt.Errorf("%w: deposit principal must not be negative", ErrValidation)
	ErrActiveWithoutPrincipal  = fmt.Errorf("%w: an active deposit needs a positive principal", ErrValidation)
	ErrEmptyPatch              = fmt.Errorf("%w: patch has no fields", ErrValidation)
	ErrInvalidDate             = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidOwner            = fmt.Errorf("%w: owner id is required", ErrValidation)
	ErrInvalidActor            = fmt.Errorf("%w: actor id is too long", ErrValidation)
	ErrInvalidID               = fmt.Errorf("%w: id is required", ErrValidation)
	ErrInvalidTransactionOrder = fmt.Errorf("%w: unknown transaction order", ErrValidation)
	ErrInvalidDateRange        = fmt.Errorf("%w: from date is after to date", ErrValidation)
)

// StorageError reports a failed read or a unit of work that did not commit.
// The unit of work is always rolled back when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// IsClassified reports whether err already belongs to one of the error kinds.
func IsClassified(err error) bool {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrInsufficientFunds, ErrValidation, ErrStorage} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
