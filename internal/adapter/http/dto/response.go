package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// AccountResponse represents a loan account in API responses.
type AccountResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	PrincipalAmount  string    `json:"principal_amount"`
	CurrentBalance   string    `json:"current_balance"`
	MonthlyRate      string    `json:"monthly_rate"`
	TotalBonuses     string    `json:"total_bonuses"`
	TotalWithdrawals string    `json:"total_withdrawals"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.LoanAccount) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		OwnerID:          a.OwnerID,
		PrincipalAmount:  money(a.PrincipalAmount),
		CurrentBalance:   money(a.CurrentBalance),
		MonthlyRate:      a.MonthlyRate.String(),
		TotalBonuses:     money(a.TotalBonuses),
		TotalWithdrawals: money(a.TotalWithdrawals),
		Version:          a.Version,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.LoanAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents an account's current balance.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	Amount          string    `json:"amount"`
	Type            string    `json:"type"`
	Description     string    `json:"description,omitempty"`
	EffectiveDate   string    `json:"effective_date"`
	BalanceAfter    string    `json:"balance_after"`
	BonusPercentage *string   `json:"bonus_percentage,omitempty"`
	ReferenceID     *string   `json:"reference_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:            t.ID,
		AccountID:     t.AccountID,
		Amount:        money(t.Amount),
		Type:          string(t.Type),
		Description:   t.Description,
		EffectiveDate: formatDate(t.EffectiveDate),
		BalanceAfter:  money(t.BalanceAfter),
		ReferenceID:   t.ReferenceID,
		CreatedAt:     t.CreatedAt,
	}
	if t.BonusPercentage != nil {
		pct := t.BonusPercentage.String()
		resp.BonusPercentage = &pct
	}
	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// PostTransactionResponse is the outcome of a posting.
type PostTransactionResponse struct {
	TransactionID string               `json:"transaction_id"`
	NewBalance    string               `json:"new_balance"`
	Transaction   *TransactionResponse `json:"transaction"`
}

// PostTransactionFromResult converts a posting result to response.
func PostTransactionFromResult(r *usecase.PostTransactionResult) *PostTransactionResponse {
	return &PostTransactionResponse{
		TransactionID: r.TransactionID,
		NewBalance:    money(r.NewBalance),
		Transaction:   TransactionFromDomain(r.Transaction),
	}
}

// DepositResponse represents a yield deposit in API responses.
type DepositResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	PrincipalAmount string    `json:"principal_amount"`
	AnnualYieldRate string    `json:"annual_yield_rate"`
	StartDate       string    `json:"start_date"`
	Status          string    `json:"status"`
	LastPayoutDate  *string   `json:"last_payout_date,omitempty"`
	TotalPaidOut    string    `json:"total_paid_out"`
	CreatedBy       string    `json:"created_by"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DepositFromDomain converts a domain deposit to response.
func DepositFromDomain(d *domain.YieldDeposit) *DepositResponse {
	return &DepositResponse{
		ID:              d.ID,
		OwnerID:         d.OwnerID,
		PrincipalAmount: money(d.PrincipalAmount),
		AnnualYieldRate: d.AnnualYieldRate.String(),
		StartDate:       formatDate(d.StartDate),
		Status:          string(d.Status),
		LastPayoutDate:  formatDatePtr(d.LastPayoutDate),
		TotalPaidOut:    money(d.TotalPaidOut),
		CreatedBy:       d.CreatedBy,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.YieldDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// ListDepositsResponse represents an owner's deposits in LIFO order.
type ListDepositsResponse struct {
	Deposits []*DepositResponse `json:"deposits"`
	Total    int64              `json:"total"`
}

// PayoutResponse represents a recorded yield payout.
type PayoutResponse struct {
	ID            string    `json:"id"`
	DepositID     string    `json:"deposit_id"`
	Amount        string    `json:"amount"`
	PayoutDate    string    `json:"payout_date"`
	TransactionID string    `json:"transaction_id"`
	ProcessedBy   string    `json:"processed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// PayoutFromDomain converts a domain payout to response.
func PayoutFromDomain(p *domain.YieldPayout) *PayoutResponse {
	return &PayoutResponse{
		ID:            p.ID,
		DepositID:     p.DepositID,
		Amount:        money(p.Amount),
		PayoutDate:    formatDate(p.PayoutDate),
		TransactionID: p.TransactionID,
		ProcessedBy:   p.ProcessedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// PayoutsFromDomain converts domain payouts to responses.
func PayoutsFromDomain(payouts []*domain.YieldPayout) []*PayoutResponse {
	result := make([]*PayoutResponse, len(payouts))
	for i, p := range payouts {
		result[i] = PayoutFromDomain(p)
	}
	return result
}

// ListPayoutsResponse represents a deposit's payout history.
type ListPayoutsResponse struct {
	Payouts []*PayoutResponse `json:"payouts"`
	Total   int64             `json:"total"`
}

// ScheduleResponse represents a deposit's payout position.
type ScheduleResponse struct {
	DepositID       string  `json:"deposit_id"`
	AsOf            string  `json:"as_of"`
	NextAnniversary string  `json:"next_anniversary"`
	DueDate         *string `json:"due_date,omitempty"`
	ProjectedAmount string  `json:"projected_amount"`
}

// ScheduleFromUseCase converts a schedule preview to response.
func ScheduleFromUseCase(s *usecase.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		DepositID:       s.DepositID,
		AsOf:            formatDate(s.AsOf),
		NextAnniversary: formatDate(s.NextAnniversary),
		DueDate:         formatDatePtr(s.DueDate),
		ProjectedAmount: money(s.ProjectedAmount),
	}
}

// BatchDetailResponse reports one deposit of a batch run.
type BatchDetailResponse struct {
	DepositID     string  `json:"deposit_id"`
	Status        string  `json:"status"`
	PayoutDate    *string `json:"payout_date,omitempty"`
	Amount        string  `json:"amount"`
	PayoutID      string  `json:"payout_id,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// BatchResultResponse summarises a batch run.
type BatchResultResponse struct {
	AsOf      string                `json:"as_of"`
	DryRun    bool                  `json:"dry_run"`
	Processed int                   `json:"processed"`
	Skipped   int                   `json:"skipped"`
	Errors    int                   `json:"errors"`
	Details   []BatchDetailResponse `json:"details"`
}

// BatchResultFromUseCase converts a batch result to response.
func BatchResultFromUseCase(r *usecase.BatchResult) *BatchResultResponse {
	details := make([]BatchDetailResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = BatchDetailResponse{
			DepositID:     d.DepositID,
			Status:        d.Status,
			PayoutDate:    formatDatePtr(d.PayoutDate),
			Amount:        money(d.Amount),
			PayoutID:      d.PayoutID,
			TransactionID: d.TransactionID,
			Reason:        d.Reason,
		}
	}

	return &BatchResultResponse{
		AsOf:      formatDate(r.AsOf),
		DryRun:    r.DryRun,
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Errors:    r.Errors,
		Details:   details,
	}
}

// WithdrawalResponse represents a withdrawal request.
type WithdrawalResponse struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	AccountID  string     `json:"account_id"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// WithdrawalFromDomain converts a domain withdrawal request to response.
func WithdrawalFromDomain(w *domain.WithdrawalRequest) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:         w.ID,
		OwnerID:    w.OwnerID,
		AccountID:  w.AccountID,
		Amount:     money(w.Amount),
		Status:     string(w.Status),
		Notes:      w.Notes,
		ReviewedBy: w.ReviewedBy,
		ReviewedAt: w.ReviewedAt,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// WithdrawalsFromDomain converts domain withdrawal requests to responses.
func WithdrawalsFromDomain(requests []*domain.WithdrawalRequest) []*WithdrawalResponse {
	result := make([]*WithdrawalResponse, len(requests))
	for i, w := range requests {
		result[i] = WithdrawalFromDomain(w)
	}
	return result
}

// ListWithdrawalsResponse represents a page of withdrawal requests.
type ListWithdrawalsResponse struct {
	Withdrawals []*WithdrawalResponse `json:"withdrawals"`
	Total       int64                 `json:"total"`
}

// AllocationResponse reports how much one deposit contributed.
type AllocationResponse struct {
	DepositID      string `json:"deposit_id"`
	OriginalAmount string `json:"original_amount"`
	ReducedBy      string `json:"reduced_by"`
	NewAmount      string `json:"new_amount"`
}

// WithdrawalResultResponse is the outcome of a completed withdrawal.
type WithdrawalResultResponse struct {
	RequestID     string               `json:"request_id"`
	NewBalance    string               `json:"new_balance"`
	Allocations   []AllocationResponse `json:"allocations"`
	Shortfall     string               `json:"shortfall"`
	TransactionID string               `json:"transaction_id"`
}

// WithdrawalResultFromUseCase converts a completion result to response.
func WithdrawalResultFromUseCase(r *usecase.WithdrawalResult) *WithdrawalResultResponse {
	allocations := make([]AllocationResponse, len(r.Allocations))
	for i, a := range r.Allocations {
		allocations[i] = AllocationResponse{
			DepositID:      a.DepositID,
			OriginalAmount: money(a.OriginalAmount),
			ReducedBy:      money(a.ReducedBy),
			NewAmount:      money(a.NewAmount),
		}
	}

	return &WithdrawalResultResponse{
		RequestID:     r.RequestID,
		NewBalance:    money(r.NewBalance),
		Allocations:   allocations,
		Shortfall:     money(r.Shortfall),
		TransactionID: r.TransactionID,
	}
}

// ReconciliationResultResponse compares one account's stored balance with
// its ledger.
type ReconciliationResultResponse struct {
	AccountID         string    `json:"account_id"`
	RecordedBalance   string    `json:"recorded_balance"`
	CalculatedBalance string    `json:"calculated_balance"`
	Difference        string    `json:"difference"`
	IsReconciled      bool      `json:"is_reconciled"`
	LastChecked       time.Time `json:"last_checked"`
}

// ReconciliationResultFromUseCase converts a reconciliation result.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   money(r.RecordedBalance),
		CalculatedBalance: money(r.CalculatedBalance),
		Difference:        money(r.Difference),
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse represents a report across all accounts.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	LedgerConsistent   bool                            `json:"ledger_consistent"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// money renders an amount in cents.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
