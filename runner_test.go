package effect

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestRunnerReturnsResultsInJobOrder verifies ordering is by job, not by
// completion.
func TestRunnerReturnsResultsInJobOrder(t *testing.T) {
	t.Parallel()

	jobs := []Job[string, string, testEnv]{
		{Name: "slow", Factory: func() Effect[string, string, testEnv] {
			return sleepThen(40*time.Millisecond, Ok[string, string]("slow done"))
		}},
		{Name: "fast", Factory: func() Effect[string, string, testEnv] {
			return Pure[string, string, testEnv]("fast done")
		}},
	}

	results := NewRunner[string, string, testEnv](testEnv{}).RunAll(context.Background(), jobs)
	require.Len(t, results, 2)
	require.Equal(t, "slow", results[0].Name)
	require.Equal(t, "slow done", results[0].Res.Value())
	require.Equal(t, "fast", results[1].Name)
	require.Equal(t, "fast done", results[1].Res.Value())
}

// TestRunnerHonoursConcurrencyLimit verifies at most the configured number of
// jobs run at once.
func TestRunnerHonoursConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var inflight, peak atomic.Int64
	jobs := make([]Job[int, string, testEnv], 6)
	for i := range jobs {
		jobs[i] = Job[int, string, testEnv]{
			Name: "job",
			Factory: func() Effect[int, string, testEnv] {
				return FromAsync(func(ctx context.Context, env testEnv) Result[int, string] {
					n := inflight.Add(1)
					defer inflight.Add(-1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(15 * time.Millisecond)
					return Ok[int, string](i)
				})
			},
		}
	}

	runner := NewRunner[int, string, testEnv](testEnv{}, WithLimit[string](2))
	results := runner.RunAll(context.Background(), jobs)

	require.Len(t, results, 6)
	require.LessOrEqual(t, peak.Load(), int64(2))
}

// TestRunnerAppliesPerJobRetryPolicies verifies a flaky job with a retry
// budget succeeds while a single-attempt job fails with exhaustion metadata.
func TestRunnerAppliesPerJobRetryPolicies(t *testing.T) {
	t.Parallel()

	var flakyCalls atomic.Int64
	policy := NewRetry(3).Immediate().Policy()

	jobs := []Job[string, string, testEnv]{
		{
			Name:  "flaky",
			Retry: &policy,
			Factory: func() Effect[string, string, testEnv] {
				return FromFunc(func(env testEnv) Result[string, string] {
					if flakyCalls.Add(1) <= 2 {
						return Err[string]("transient")
					}
					return Ok[string, string]("ok")
				})
			},
		},
		{
			Name: "doomed",
			Factory: func() Effect[string, string, testEnv] {
				return Fail[string, string, testEnv]("permanent")
			},
		},
	}

	results := NewRunner[string, string, testEnv](testEnv{}).RunAll(context.Background(), jobs)

	require.True(t, results[0].Res.IsOk())
	require.Equal(t, "ok", results[0].Res.Value())
	require.Equal(t, int64(3), flakyCalls.Load())

	require.False(t, results[1].Res.IsOk())
	require.Equal(t, "permanent", results[1].Res.Error().Err)
	require.Equal(t, 1, results[1].Res.Error().Attempts)
}

// TestRunnerLabelsJobsForObservers verifies each job reaches observers under
// its own name.
func TestRunnerLabelsJobsForObservers(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver[string]{}
	policy := NewRetry(1).Immediate().Policy()

	var calls atomic.Int64
	jobs := []Job[int, string, testEnv]{{
		Name:  "import-orders",
		Retry: &policy,
		Factory: func() Effect[int, string, testEnv] {
			return FromFunc(func(env testEnv) Result[int, string] {
				if calls.Add(1) == 1 {
					return Err[int]("busy")
				}
				return Ok[int, string](1)
			})
		},
	}}

	runner := NewRunner[int, string, testEnv](testEnv{}, WithJobOptions(WithObserver[string](obs)))
	results := runner.RunAll(context.Background(), jobs)

	require.True(t, results[0].Res.IsOk())
	require.Equal(t, "import-orders", obs.lastOp)
	require.Len(t, obs.retries, 1)
	require.Equal(t, 1, obs.successes)
}

// TestRunnerDuplicatesEnvironmentPerJob verifies each job gets its own
// environment handle.
func TestRunnerDuplicatesEnvironmentPerJob(t *testing.T) {
	t.Parallel()

	env := countingEnv{clones: new(atomic.Int64)}
	jobs := []Job[int, string, countingEnv]{
		{Name: "a", Factory: func() Effect[int, string, countingEnv] { return Pure[int, string, countingEnv](1) }},
		{Name: "b", Factory: func() Effect[int, string, countingEnv] { return Pure[int, string, countingEnv](2) }},
	}

	NewRunner[int, string, countingEnv](env).RunAll(context.Background(), jobs)
	require.Equal(t, int64(2), env.clones.Load())
}

// TestRunnerPanicsOnMalformedJobs verifies the documented misuse panics.
func TestRunnerPanicsOnMalformedJobs(t *testing.T) {
	t.Parallel()

	runner := NewRunner[int, string, testEnv](testEnv{})

	require.Panics(t, func() {
		runner.RunAll(context.Background(), []Job[int, string, testEnv]{{Name: ""}})
	})
	require.Panics(t, func() {
		runner.RunAll(context.Background(), []Job[int, string, testEnv]{{Name: "no-factory"}})
	})
}
