package payoutjob

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// Runner runs one payout batch.
type Runner interface {
	RunDuePayouts(ctx context.Context, input usecase.RunDuePayoutsInput) (*usecase.BatchResult, error)
}

// Job runs the payout batch on a fixed interval for the current UTC date.
type Job struct {
	runner   Runner
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// Config for Job.
type Config struct {
	Runner   Runner
	Interval time.Duration
	Logger   zerolog.Logger
}

// New creates a new Job.
func New(cfg Config) *Job {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}

	return &Job{
		runner:   cfg.Runner,
		interval: cfg.Interval,
		logger:   cfg.Logger.With().Str("component", "payout_job").Logger(),
		now:      time.Now,
	}
}

// Start runs a batch immediately and then on every tick until ctx is done.
func (j *Job) Start(ctx context.Context) error {
	j.logger.Info().Dur("interval", j.interval).Msg("payout job started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("payout job shutting down")
			return ctx.Err()
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *Job) runOnce(ctx context.Context) {
	asOf := domain.DateOf(j.now().UTC())

	result, err := j.runner.RunDuePayouts(ctx, usecase.RunDuePayoutsInput{
		AsOf:        asOf,
		ProcessedBy: usecase.SystemActor,
	})
	if errors.Is(err, domain.ErrBatchInProgress) {
		j.logger.Info().Time("as_of", asOf).Msg("payout batch already running elsewhere")
		return
	}
	if err != nil {
		j.logger.Error().Err(err).Time("as_of", asOf).Msg("payout batch failed")
		return
	}

	event := j.logger.Info()
	if result.Errors > 0 {
		event = j.logger.Warn()
	}
	event.
		Time("as_of", asOf).
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("errors", result.Errors).
		Msg("payout batch finished")

	for _, d := range result.Details {
		if d.Status == usecase.BatchStatusError {
			j.logger.Warn().
				Str("deposit_id", d.DepositID).
				Str("reason", d.Reason).
				Msg("payout failed")
		}
	}
}
