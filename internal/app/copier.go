package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/ariqM1/fullstack-jam/internal/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// storeWriteTimeout bounds terminal status writes, which must not use the
// job context (a cancelled job still has to record its failure).
const storeWriteTimeout = 5 * time.Second

// Copier runs background copy jobs. Each job inserts association rows one at
// a time with a fixed delay between rows, skips duplicates, and periodically
// writes its progress counter to the operation store. Jobs for different
// operations run concurrently; a single job is strictly serial.
type Copier struct {
	assocs        domain.AssociationRepository
	store         domain.OperationStore
	clock         clockwork.Clock
	rowDelay      time.Duration
	progressEvery int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCopier creates a copier. rowDelay is the pause between inserts;
// progressEvery is how many rows pass between progress writes.
func NewCopier(assocs domain.AssociationRepository, store domain.OperationStore, clock clockwork.Clock, rowDelay time.Duration, progressEvery int) *Copier {
	if progressEvery < 1 {
		progressEvery = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Copier{
		assocs:        assocs,
		store:         store,
		clock:         clock,
		rowDelay:      rowDelay,
		progressEvery: progressEvery,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Launch starts a copy job in the background and returns immediately. The
// job is detached from any request context; it stops only when it finishes
// or the copier is stopped.
func (c *Copier) Launch(operationID, targetID uuid.UUID, companyIDs []int64) {
	c.wg.Add(1)
	metrics.CopyOperationsInFlight.Inc()

	go func() {
		defer c.wg.Done()
		defer metrics.CopyOperationsInFlight.Dec()

		start := c.clock.Now()
		c.run(operationID, targetID, companyIDs)
		metrics.CopyOperationDuration.Observe(c.clock.Since(start).Seconds())
	}()
}

// Stop cancels all running jobs and waits for them to record their terminal
// status.
func (c *Copier) Stop() {
	c.cancel()
	c.wg.Wait()
}

func (c *Copier) run(operationID, targetID uuid.UUID, companyIDs []int64) {
	log := slog.With("operation_id", operationID.String(), "target_collection", targetID.String())

	remaining, err := c.withoutExisting(targetID, companyIDs)
	if err != nil {
		c.fail(operationID, log, "failed to check target collection", err)
		return
	}

	if err := c.writeStore(func(ctx context.Context) error {
		return c.store.SetInProgress(ctx, operationID, int64(len(remaining)))
	}); err != nil {
		log.Error("Failed to mark operation in progress", "error", err)
		return
	}

	log.Info("Copy started", "requested", len(companyIDs), "remaining", len(remaining))

	for i, companyID := range remaining {
		if err := c.ctx.Err(); err != nil {
			c.cancelled(operationID, log, int64(i))
			return
		}

		inserted, err := c.assocs.Insert(c.ctx, targetID, companyID)
		if err != nil {
			if c.ctx.Err() != nil {
				c.cancelled(operationID, log, int64(i))
				return
			}
			c.fail(operationID, log, fmt.Sprintf("failed to insert company %d", companyID), err)
			return
		}

		if inserted {
			metrics.CopyRowsInserted.Inc()
		} else {
			// Concurrent copy won the race for this pair; not a failure.
			metrics.CopyRowsSkipped.Inc()
		}

		progress := int64(i + 1)
		if progress%int64(c.progressEvery) == 0 {
			if err := c.store.SetProgress(c.ctx, operationID, progress); err != nil {
				log.Warn("Failed to write progress", "progress", progress, "error", err)
			}
		}

		if c.rowDelay > 0 && i < len(remaining)-1 {
			select {
			case <-c.ctx.Done():
			case <-c.clock.After(c.rowDelay):
			}
		}
	}

	err = c.writeStore(func(ctx context.Context) error {
		if err := c.store.SetProgress(ctx, operationID, int64(len(remaining))); err != nil {
			return err
		}
		return c.store.SetCompleted(ctx, operationID)
	})
	if err != nil {
		log.Error("Failed to mark operation completed", "error", err)
		return
	}

	metrics.CopyOperationsFinished.WithLabelValues("completed").Inc()
	log.Info("Copy completed", "inserted", len(remaining))
}

// withoutExisting drops companies already present in the target, preserving
// the input order.
func (c *Copier) withoutExisting(targetID uuid.UUID, companyIDs []int64) ([]int64, error) {
	if len(companyIDs) == 0 {
		return nil, nil
	}

	existing, err := c.assocs.ExistingIn(c.ctx, targetID, companyIDs)
	if err != nil {
		return nil, err
	}

	skip := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		skip[id] = struct{}{}
	}

	remaining := make([]int64, 0, len(companyIDs)-len(existing))
	for _, id := range companyIDs {
		if _, ok := skip[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	return remaining, nil
}

func (c *Copier) fail(operationID uuid.UUID, log *slog.Logger, message string, cause error) {
	metrics.CopyOperationsFinished.WithLabelValues("failed").Inc()
	log.Error("Copy failed", "message", message, "error", cause)

	err := c.writeStore(func(ctx context.Context) error {
		return c.store.SetFailed(ctx, operationID, fmt.Sprintf("%s: %v", message, cause))
	})
	if err != nil {
		log.Error("Failed to mark operation failed", "error", err)
	}
}

func (c *Copier) cancelled(operationID uuid.UUID, log *slog.Logger, progress int64) {
	metrics.CopyOperationsFinished.WithLabelValues("cancelled").Inc()
	log.Warn("Copy cancelled", "progress", progress)

	err := c.writeStore(func(ctx context.Context) error {
		if err := c.store.SetProgress(ctx, operationID, progress); err != nil {
			return err
		}
		return c.store.SetFailed(ctx, operationID, "copy cancelled: server shutting down")
	})
	if err != nil {
		log.Error("Failed to mark operation cancelled", "error", err)
	}
}

// writeStore runs a store write on a fresh context so terminal status lands
// even after the job context is cancelled.
func (c *Copier) writeStore(write func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeWriteTimeout)
	defer cancel()
	return write(ctx)
}
