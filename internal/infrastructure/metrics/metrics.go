package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated    prometheus.Counter
	TransactionsPosted *prometheus.CounterVec

	// Deposit metrics
	DepositsCreated prometheus.Counter
	DepositsUpdated prometheus.Counter

	// Payout metrics
	PayoutsProcessed    prometheus.Counter
	PayoutAmount        prometheus.Histogram
	PayoutErrors        *prometheus.CounterVec
	PayoutBatchRuns     *prometheus.CounterVec
	PayoutBatchDuration prometheus.Histogram

	// Withdrawal metrics
	WithdrawalsCompleted prometheus.Counter
	WithdrawalAmount     prometheus.Histogram
	AllocationShortfalls prometheus.Counter

	// Outbox metrics
	OutboxEventsPublished *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationDiscrepancies prometheus.Gauge
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_accounts_created_total",
			Help: "Total number of loan accounts created",
		}),
		TransactionsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldledger_transactions_posted_total",
				Help: "Total ledger transactions posted by type",
			},
			[]string{"type"},
		),

		DepositsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_deposits_created_total",
			Help: "Total number of yield deposits created",
		}),
		DepositsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_deposits_updated_total",
			Help: "Total number of administrative deposit updates",
		}),

		PayoutsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_payouts_processed_total",
			Help: "Total number of yield payouts processed",
		}),
		PayoutAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "yieldledger_payout_amount",
			Help:    "Yield payout amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),
		PayoutErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldledger_payout_errors_total",
				Help: "Total payout failures by error kind",
			},
			[]string{"kind"},
		),
		PayoutBatchRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldledger_payout_batch_runs_total",
				Help: "Total payout batch runs by mode",
			},
			[]string{"mode"},
		),
		PayoutBatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "yieldledger_payout_batch_duration_seconds",
			Help:    "Duration of payout batch runs",
			Buckets: prometheus.DefBuckets,
		}),

		WithdrawalsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_withdrawals_completed_total",
			Help: "Total number of withdrawals completed",
		}),
		WithdrawalAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "yieldledger_withdrawal_amount",
			Help:    "Completed withdrawal amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),
		AllocationShortfalls: factory.NewCounter(prometheus.CounterOpts{
			Name: "yieldledger_allocation_shortfalls_total",
			Help: "Withdrawals debited beyond the active deposit principal",
		}),

		OutboxEventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldledger_outbox_events_total",
				Help: "Outbox events handled by the publisher by status",
			},
			[]string{"status"},
		),

		ReconciliationDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "yieldledger_reconciliation_discrepancies",
			Help: "Accounts whose balance disagreed with the ledger in the last report",
		}),
	}
}
