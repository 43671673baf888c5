package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAmount        = "1000000000000" // 1 trillion
	MaxOwnerIDLength = 64
	MaxActorIDLength = 64

	// Scales of the rate and percentage columns.
	RateScale       = 6
	PercentageScale = 2

	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	maxAmount = decimal.RequireFromString(MaxAmount)
	one       = decimal.NewFromInt(1)
)

// ValidateAmount validates a positive money amount given by a caller.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateMagnitude(amount)
}

func validateMagnitude(amount decimal.Decimal) error {
	if amount.GreaterThan(maxAmount) {
		return ErrAmountTooLarge
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateYieldRate accepts annual rates in (0, 1].
func ValidateYieldRate(rate decimal.Decimal) error {
	if !rate.IsPositive() || rate.GreaterThan(one) {
		return ErrInvalidRate
	}
	return validateRateScale(rate)
}

// ValidateMonthlyRate accepts monthly rates in [0, 1].
func ValidateMonthlyRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return ErrInvalidRate
	}
	return validateRateScale(rate)
}

func validateRateScale(rate decimal.Decimal) error {
	if !rate.Equal(rate.Round(RateScale)) {
		return ErrRatePrecision
	}
	return nil
}

// ValidateOwnerID validates an owner reference.
func ValidateOwnerID(ownerID string) error {
	_, err := NormalizeOwnerID(ownerID)
	return err
}

// NormalizeOwnerID trims ownerID and validates what is left. Owner ids are
// stored in their trimmed form.
func NormalizeOwnerID(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" || len(ownerID) > MaxOwnerIDLength {
		return "", ErrInvalidOwner
	}
	return ownerID, nil
}

// ValidateActorID bounds an actor id recorded in created_by, processed_by
// and reviewed_by.
func ValidateActorID(actorID string) error {
	if len(actorID) > MaxActorIDLength {
		return ErrInvalidActor
	}
	return nil
}

// ValidateID rejects blank identifiers.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
