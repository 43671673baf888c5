package usecase

import (
	"context"
	"time"

	"github.com/iho/yieldledger/internal/domain"
)

// withinTx runs fn in a single unit of work bounded by
// DefaultTransactionTimeout. The unit is rolled back unless fn succeeds and
// the commit goes through.
func withinTx(ctx context.Context, txManager TxManager, op string, fn func(ctx context.Context, tx Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := txManager.Begin(txCtx)
	if err != nil {
		return storageError(op, err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := fn(txCtx, tx); err != nil {
		return storageError(op, err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return storageError(op, err)
	}

	return nil
}

// storageError passes classified errors through and wraps everything else.
func storageError(op string, err error) error {
	if err == nil || domain.IsClassified(err) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

// emitter writes outbox events inside the caller's unit of work. A nil
// repository disables events.
type emitter struct {
	outboxRepo OutboxRepository
	idGen      IDGenerator
}

func (e emitter) emit(ctx context.Context, tx Tx, aggregateType, aggregateID, eventType string, payload map[string]any, now time.Time) error {
	if e.outboxRepo == nil {
		return nil
	}

	return e.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            e.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
		Published:     false,
	})
}
