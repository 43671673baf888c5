package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YieldPayout records one annual payout of a deposit. There is at most one
// payout per deposit and payout date.
type YieldPayout struct {
	ID            string
	DepositID     string
	Amount        decimal.Decimal
	PayoutDate    time.Time
	TransactionID string
	ProcessedBy   string
	CreatedAt     time.Time
}
