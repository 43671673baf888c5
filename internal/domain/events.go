package domain

import "time"

// Event types
const (
	EventTypeAccountCreated      = "account.created"
	EventTypeTransactionPosted   = "transaction.posted"
	EventTypeDepositCreated      = "deposit.created"
	EventTypeDepositUpdated      = "deposit.updated"
	EventTypePayoutProcessed     = "payout.processed"
	EventTypeWithdrawalRequested = "withdrawal.requested"
	EventTypeWithdrawalApproved  = "withdrawal.approved"
	EventTypeWithdrawalRejected  = "withdrawal.rejected"
	EventTypeWithdrawalCompleted = "withdrawal.completed"
)

// Aggregate types
const (
	AggregateTypeAccount    = "loan_account"
	AggregateTypeDeposit    = "yield_deposit"
	AggregateTypeWithdrawal = "withdrawal_request"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
