package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// Implementations are responsible for persisting the job into the underlying
// queue backend; AddJob should be atomic with respect to any surrounding
// transaction when the backend supports it. The args parameter carries the
// job payload and opts can customize insertion behavior (queue name, delay,
// priority). The boolean result reports whether a job was actually inserted,
// which is false when a uniqueness constraint suppressed a duplicate.
type JobStorage interface {
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
