package effect

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is a named unit of work for the Runner: a factory producing a fresh
// effect per attempt and an optional per-job retry policy. A nil Retry means
// a single attempt.
type Job[O, E, Env any] struct {
	Name    string
	Factory func() Effect[O, E, Env]
	Retry   *RetryPolicy
}

// JobResult pairs a job's name with its settled result. Jobs always settle
// through the Retry driver, so the error side carries exhaustion metadata
// even for single-attempt jobs.
type JobResult[O, E any] struct {
	Name string
	Res  Result[O, RetryExhausted[E]]
}

// Runner executes batches of named jobs against a shared environment with a
// bounded number of jobs in flight. It is the process-local convenience
// layer over the retry driver: per-job policies, observer wiring, and an
// ordered report — useful for startup task sets, fan-out maintenance work,
// and tests.
//
// The environment is duplicated per job as in Box, so every job holds its
// own handle.
type Runner[O, E, Env any] struct {
	env   Env
	limit int
	opts  []RetryOption[E]
}

// RunnerOption configures a Runner.
type RunnerOption[E any] func(*runnerConfig[E])

type runnerConfig[E any] struct {
	limit int
	opts  []RetryOption[E]
}

// WithLimit caps how many jobs run concurrently. Non-positive means
// unlimited.
func WithLimit[E any](n int) RunnerOption[E] {
	return func(c *runnerConfig[E]) {
		c.limit = n
	}
}

// WithJobOptions attaches retry options (observers, hooks) to every job the
// runner executes. Each job is additionally labelled with its own name for
// observers.
func WithJobOptions[E any](opts ...RetryOption[E]) RunnerOption[E] {
	return func(c *runnerConfig[E]) {
		c.opts = append(c.opts, opts...)
	}
}

// NewRunner constructs a Runner over the given environment.
func NewRunner[O, E, Env any](env Env, opts ...RunnerOption[E]) *Runner[O, E, Env] {
	var cfg runnerConfig[E]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Runner[O, E, Env]{
		env:   env,
		limit: cfg.limit,
		opts:  cfg.opts,
	}
}

// RunAll executes every job and returns their results in job order,
// whatever each job's outcome. It panics on malformed jobs (empty name or
// nil factory), which are programming errors, not runtime failures.
func (r *Runner[O, E, Env]) RunAll(ctx context.Context, jobs []Job[O, E, Env]) []JobResult[O, E] {
	for _, job := range jobs {
		if job.Name == "" {
			panic("effect: runner job name must not be empty")
		}
		if job.Factory == nil {
			panic(fmt.Sprintf("effect: runner job %q has nil factory", job.Name))
		}
	}

	results := make([]JobResult[O, E], len(jobs))

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			var policy RetryPolicy
			if job.Retry != nil {
				policy = *job.Retry
			}
			opts := append(append([]RetryOption[E]{}, r.opts...), Named[E](job.Name))
			eff := Retry(policy, job.Factory, opts...)
			results[i] = JobResult[O, E]{Name: job.Name, Res: eff(ctx, cloneEnv(r.env))}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
