package discount

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// DefaultSweepUniquePeriod is the fallback deduplication window for expiry
// sweep jobs.
const DefaultSweepUniquePeriod = 15 * time.Minute

// SweepArgs is the payload of an expiry sweep job submitted to River. The
// job carries no data of its own; the sweep always operates on whatever is
// expired at run time. Uniqueness keeps bursts of publishes from piling up
// redundant sweeps.
type SweepArgs struct {
	// uniquePeriod defines the lookback window during which another sweep
	// job is considered a duplicate across the specified states.
	uniquePeriod time.Duration
}

// Kind returns the River job kind used to register and dispatch the sweep worker.
func (args SweepArgs) Kind() string { return "SweepExpiredDiscountsJob" }

// InsertOpts returns the River options that control how the job is enqueued.
// Completed jobs are deliberately left out of the unique states so a new
// sweep can always be scheduled after the previous one finished.
func (args SweepArgs) InsertOpts() river.InsertOpts {
	period := args.uniquePeriod
	if period <= 0 {
		period = DefaultSweepUniquePeriod
	}

	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: period,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
