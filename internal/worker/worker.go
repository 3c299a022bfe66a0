// Package worker wires the background job runtime. It registers the expiry
// sweep worker with River and schedules the recurring sweep that catches
// discounts whose one-shot sweep job was lost or suppressed.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"

	"discounts/internal/discount"
	"discounts/pkg/logger"
)

// DefaultSweepInterval is the fallback cadence of the recurring expiry sweep.
const DefaultSweepInterval = 5 * time.Minute

// Options configures the job runtime.
type Options struct {
	// MaxWorkers bounds concurrent jobs on the default queue. Zero means 10.
	MaxWorkers int
	// SweepInterval is how often the recurring expiry sweep runs. Zero means
	// DefaultSweepInterval.
	SweepInterval time.Duration
}

func Start(ctx context.Context, dbPool *pgxpool.Pool, discounts discount.Service, opts Options) (*river.Client[pgx.Tx], error) {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 10
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewExpiryWorker(discounts))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(opts.SweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return discount.SweepArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
		Logger: slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
