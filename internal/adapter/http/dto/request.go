package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// CreateAccountRequest represents a request to open a loan account.
type CreateAccountRequest struct {
	OwnerID         string `json:"owner_id"`
	PrincipalAmount string `json:"principal_amount"`
	MonthlyRate     string `json:"monthly_rate"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	principal, err := parseDecimal("principal_amount", r.PrincipalAmount)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}
	rate, err := parseDecimal("monthly_rate", r.MonthlyRate)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		OwnerID:         r.OwnerID,
		PrincipalAmount: principal,
		MonthlyRate:     rate,
	}, nil
}

// PostTransactionRequest represents a posting against a loan account.
type PostTransactionRequest struct {
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	Description     string  `json:"description,omitempty"`
	EffectiveDate   string  `json:"effective_date,omitempty"`
	BonusPercentage *string `json:"bonus_percentage,omitempty"`
	ReferenceID     *string `json:"reference_id,omitempty"`
}

// ToUseCaseInput converts to use case input for accountID.
func (r *PostTransactionRequest) ToUseCaseInput(accountID string) (usecase.PostTransactionInput, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return usecase.PostTransactionInput{}, err
	}
	txType, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return usecase.PostTransactionInput{}, err
	}
	effective, err := parseOptionalDate(r.EffectiveDate)
	if err != nil {
		return usecase.PostTransactionInput{}, err
	}

	input := usecase.PostTransactionInput{
		AccountID:   accountID,
		Amount:      amount,
		Type:        txType,
		Description: r.Description,
		ReferenceID: r.ReferenceID,
	}
	if effective != nil {
		input.EffectiveDate = *effective
	}
	if r.BonusPercentage != nil {
		pct, err := parseDecimal("bonus_percentage", *r.BonusPercentage)
		if err != nil {
			return usecase.PostTransactionInput{}, err
		}
		input.BonusPercentage = &pct
	}

	return input, nil
}

// CreateDepositRequest represents a request to register a yield deposit.
type CreateDepositRequest struct {
	OwnerID         string `json:"owner_id"`
	PrincipalAmount string `json:"principal_amount"`
	AnnualYieldRate string `json:"annual_yield_rate"`
	StartDate       string `json:"start_date"`
	Notes           string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input recorded as created by actorID.
func (r *CreateDepositRequest) ToUseCaseInput(actorID string) (usecase.CreateDepositInput, error) {
	principal, err := parseDecimal("principal_amount", r.PrincipalAmount)
	if err != nil {
		return usecase.CreateDepositInput{}, err
	}
	rate, err := parseDecimal("annual_yield_rate", r.AnnualYieldRate)
	if err != nil {
		return usecase.CreateDepositInput{}, err
	}
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return usecase.CreateDepositInput{}, err
	}

	return usecase.CreateDepositInput{
		OwnerID:         r.OwnerID,
		PrincipalAmount: principal,
		AnnualYieldRate: rate,
		StartDate:       start,
		Notes:           r.Notes,
		CreatedBy:       actorID,
	}, nil
}

// UpdateDepositRequest is an administrative patch. Absent fields are left
// untouched.
type UpdateDepositRequest struct {
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	PrincipalAmount *string `json:"principal_amount,omitempty"`
}

// ToDomainPatch converts to a deposit patch.
func (r *UpdateDepositRequest) ToDomainPatch() (domain.DepositPatch, error) {
	var patch domain.DepositPatch
	if r.Status != nil {
		status := domain.DepositStatus(*r.Status)
		patch.Status = &status
	}
	patch.Notes = r.Notes
	if r.PrincipalAmount != nil {
		amount, err := parseDecimal("principal_amount", *r.PrincipalAmount)
		if err != nil {
			return domain.DepositPatch{}, err
		}
		patch.PrincipalAmount = &amount
	}
	return patch, nil
}

// ProcessPayoutRequest pays one deposit for a date.
type ProcessPayoutRequest struct {
	PayoutDate string `json:"payout_date"`
}

// ToUseCaseInput converts to use case input processed by actorID.
func (r *ProcessPayoutRequest) ToUseCaseInput(depositID, actorID string) (usecase.ProcessPayoutInput, error) {
	date, err := domain.ParseDate(r.PayoutDate)
	if err != nil {
		return usecase.ProcessPayoutInput{}, err
	}
	return usecase.ProcessPayoutInput{DepositID: depositID, PayoutDate: date, ProcessedBy: actorID}, nil
}

// RunPayoutsRequest starts a batch. An empty as_of means today (UTC).
type RunPayoutsRequest struct {
	AsOf   string `json:"as_of,omitempty"`
	DryRun bool   `json:"dry_run"`
}

// ToUseCaseInput converts to use case input processed by actorID.
func (r *RunPayoutsRequest) ToUseCaseInput(actorID string) (usecase.RunDuePayoutsInput, error) {
	asOf, err := parseOptionalDate(r.AsOf)
	if err != nil {
		return usecase.RunDuePayoutsInput{}, err
	}

	input := usecase.RunDuePayoutsInput{DryRun: r.DryRun, ProcessedBy: actorID}
	if asOf != nil {
		input.AsOf = *asOf
	}
	return input, nil
}

// CreateWithdrawalRequest files a withdrawal against a loan account.
type CreateWithdrawalRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWithdrawalRequest) ToUseCaseInput() (usecase.RequestWithdrawalInput, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return usecase.RequestWithdrawalInput{}, err
	}

	return usecase.RequestWithdrawalInput{
		AccountID: r.AccountID,
		Amount:    amount,
		Notes:     r.Notes,
	}, nil
}

// RejectWithdrawalRequest carries the rejection reason.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ParseDateParam parses an optional YYYY-MM-DD query or body value.
func ParseDateParam(s string) (*time.Time, error) {
	return parseOptionalDate(s)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a decimal string", domain.ErrValidation, field)
	}
	return d, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
