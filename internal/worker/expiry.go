package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"discounts/internal/discount"
	"discounts/pkg/logger"
)

// ExpiryWorker is a River worker that deactivates discounts past their
// validity window. The sweep is idempotent, so overlapping one-shot and
// periodic runs are harmless; the second one simply finds nothing left.
type ExpiryWorker struct {
	river.WorkerDefaults[discount.SweepArgs]

	discounts discount.Service
}

// NewExpiryWorker constructs an ExpiryWorker using the provided discount service.
func NewExpiryWorker(discounts discount.Service) *ExpiryWorker {
	return &ExpiryWorker{discounts: discounts}
}

// Work runs a single expiry sweep.
func (w *ExpiryWorker) Work(ctx context.Context, job *river.Job[discount.SweepArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID))

	expired, err := w.discounts.ExpireOutdated(ctx, time.Now().UTC())
	if err != nil {
		logger.Error(ctx, "error sweeping expired discounts", zap.Error(err))

		return fmt.Errorf("could not sweep expired discounts: %w", err)
	}

	logger.Debug(ctx, "expiry sweep finished", zap.Int64("expired", expired))

	return nil
}
