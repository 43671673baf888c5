package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"positive", "100.50", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-1", ErrInvalidAmount},
		{"too large", "1000000000000.01", ErrAmountTooLarge},
		{"sub-cent precision", "10.001", ErrAmountPrecision},
		{"trailing zeros are fine", "10.500", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation kind, got %v", err)
			}
		})
	}
}

func TestValidateYieldRate(t *testing.T) {
	t.Parallel()

	valid := []string{"0.12", "1", "0.0001", "0.123456", "0.1234560"}
	for _, r := range valid {
		if err := ValidateYieldRate(decimal.RequireFromString(r)); err != nil {
			t.Fatalf("rate %s: expected no error, got %v", r, err)
		}
	}

	invalid := []string{"0", "-0.1", "1.01"}
	for _, r := range invalid {
		if err := ValidateYieldRate(decimal.RequireFromString(r)); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("rate %s: expected ErrInvalidRate, got %v", r, err)
		}
	}

	// NUMERIC(10,6) would round these silently.
	tooFine := []string{"0.1234567", "0.0000001"}
	for _, r := range tooFine {
		err := ValidateYieldRate(decimal.RequireFromString(r))
		if !errors.Is(err, ErrRatePrecision) || !errors.Is(err, ErrValidation) {
			t.Fatalf("rate %s: expected ErrRatePrecision, got %v", r, err)
		}
	}
}

func TestValidateMonthlyRate(t *testing.T) {
	t.Parallel()

	if err := ValidateMonthlyRate(decimal.Zero); err != nil {
		t.Fatalf("expected zero monthly rate to be allowed, got %v", err)
	}
	if err := ValidateMonthlyRate(decimal.RequireFromString("-0.01")); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if err := ValidateMonthlyRate(decimal.RequireFromString("0.015625")); err != nil {
		t.Fatalf("expected six decimal places to be allowed, got %v", err)
	}
	if err := ValidateMonthlyRate(decimal.RequireFromString("0.0156251")); !errors.Is(err, ErrRatePrecision) {
		t.Fatalf("expected ErrRatePrecision, got %v", err)
	}
}

func TestValidateOwnerID(t *testing.T) {
	t.Parallel()

	if err := ValidateOwnerID("user-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateOwnerID("   "); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner, got %v", err)
	}
	if err := ValidateOwnerID(strings.Repeat("x", MaxOwnerIDLength+1)); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner for long id, got %v", err)
	}
}

func TestNormalizeOwnerID(t *testing.T) {
	t.Parallel()

	got, err := NormalizeOwnerID("  user-1\n")
	if err != nil || got != "user-1" {
		t.Fatalf("expected trimmed user-1, got %q, %v", got, err)
	}
	// Surrounding blanks do not count towards the length limit.
	padded := " " + strings.Repeat("x", MaxOwnerIDLength) + " "
	if got, err := NormalizeOwnerID(padded); err != nil || len(got) != MaxOwnerIDLength {
		t.Fatalf("expected padded id to fit, got %d chars, %v", len(got), err)
	}
	if _, err := NormalizeOwnerID("\t"); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner, got %v", err)
	}
}

func TestValidateActorID(t *testing.T) {
	t.Parallel()

	if err := ValidateActorID(strings.Repeat("a", MaxActorIDLength)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateActorID(strings.Repeat("a", MaxActorIDLength+1)); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, DefaultPageSize, 0},
		{"caps limit", 1000, 5, MaxPageSize, 5},
		{"negative offset", 10, -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
