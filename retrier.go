package effect

import (
	"context"
	"fmt"
	"time"
)

// RetryEvent describes one scheduled retry. It is handed to hooks and
// observers just before the driver sleeps for Delay and re-invokes the
// factory.
type RetryEvent[E any] struct {
	// Attempt is the 1-indexed retry number (the first retry is 1).
	Attempt int

	// Err is the error that triggered this retry.
	Err E

	// Delay is the computed backoff delay before the retry runs.
	Delay time.Duration
}

// RetryHook observes retry events. Hooks must be fast and non-blocking;
// they never affect control flow.
type RetryHook[E any] func(ctx context.Context, ev RetryEvent[E])

// RetryExhausted is the terminal error of the Retry driver: the final
// underlying error together with how much work was spent reaching it.
type RetryExhausted[E any] struct {
	// Err is the error of the final attempt.
	Err E

	// Attempts is the total number of invocations (initial + retries).
	Attempts int

	// Elapsed is the total time spent sleeping between attempts.
	Elapsed time.Duration
}

func (e RetryExhausted[E]) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts (waited %s): %v", e.Attempts, e.Elapsed, e.Err)
}

// RetryOption configures a retry driver call site.
type RetryOption[E any] func(*retryConfig[E])

type retryConfig[E any] struct {
	op    string
	hooks []RetryHook[E]
	obs   []RetryObserver[E]
}

// Named labels the retried operation for observers and journals.
func Named[E any](op string) RetryOption[E] {
	return func(c *retryConfig[E]) {
		c.op = op
	}
}

// OnRetry registers a hook fired before each retry attempt. For three total
// attempts (two retries) the hook fires exactly twice; it never fires before
// the initial attempt.
func OnRetry[E any](h RetryHook[E]) RetryOption[E] {
	return func(c *retryConfig[E]) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// WithObserver registers a RetryObserver for the call site.
func WithObserver[E any](obs RetryObserver[E]) RetryOption[E] {
	return func(c *retryConfig[E]) {
		if obs != nil {
			c.obs = append(c.obs, obs)
		}
	}
}

func newRetryConfig[E any](opts []RetryOption[E]) retryConfig[E] {
	var cfg retryConfig[E]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c retryConfig[E]) notifyRetry(ctx context.Context, ev RetryEvent[E]) {
	for _, h := range c.hooks {
		h(ctx, ev)
	}
	for _, o := range c.obs {
		o.OnRetry(ctx, c.op, ev)
	}
}

func (c retryConfig[E]) notifySuccess(ctx context.Context, attempts int, waited time.Duration) {
	for _, o := range c.obs {
		o.OnSuccess(ctx, c.op, attempts, waited)
	}
}

func (c retryConfig[E]) notifyExhausted(ctx context.Context, attempts int, waited time.Duration, err E) {
	for _, o := range c.obs {
		o.OnExhausted(ctx, c.op, attempts, waited, err)
	}
}

// Retry wraps an effect factory in a retry loop driven by policy. The
// factory is invoked once per attempt because effects are single-shot.
//
// Exhausting the budget fails with RetryExhausted carrying the final error,
// the total attempt count, and the total time spent waiting. Context
// cancellation during a backoff sleep ends the loop early with the same
// exhausted shape.
func Retry[O, E, Env any](
	policy RetryPolicy,
	factory func() Effect[O, E, Env],
	opts ...RetryOption[E],
) Effect[O, RetryExhausted[E], Env] {
	cfg := newRetryConfig(opts)
	return func(ctx context.Context, env Env) Result[O, RetryExhausted[E]] {
		var waited time.Duration
		attempts := 0

		for retryN := 0; ; retryN++ {
			attempts++
			res := factory()(ctx, env)
			if res.IsOk() {
				cfg.notifySuccess(ctx, attempts, waited)
				return Ok[O, RetryExhausted[E]](res.Value())
			}

			if retryN == policy.MaxRetries {
				cfg.notifyExhausted(ctx, attempts, waited, res.Error())
				return Err[O](RetryExhausted[E]{Err: res.Error(), Attempts: attempts, Elapsed: waited})
			}

			delay := policy.Delay(retryN + 1)
			cfg.notifyRetry(ctx, RetryEvent[E]{Attempt: retryN + 1, Err: res.Error(), Delay: delay})

			if !sleepCtx(ctx, delay) {
				cfg.notifyExhausted(ctx, attempts, waited, res.Error())
				return Err[O](RetryExhausted[E]{Err: res.Error(), Attempts: attempts, Elapsed: waited})
			}
			waited += delay
		}
	}
}

// RetryIf is the eligibility-filtered retry driver: an error is retried only
// while retryable accepts it. Unlike Retry, the terminal error is the plain
// underlying E, both on exhaustion and on immediate rejection. The
// asymmetry is deliberate: call sites that filter errors usually dispatch on
// the domain error itself and would only unwrap the metadata again.
func RetryIf[O, E, Env any](
	policy RetryPolicy,
	factory func() Effect[O, E, Env],
	retryable func(E) bool,
	opts ...RetryOption[E],
) Effect[O, E, Env] {
	cfg := newRetryConfig(opts)
	return func(ctx context.Context, env Env) Result[O, E] {
		var waited time.Duration
		attempts := 0

		for retryN := 0; ; retryN++ {
			attempts++
			res := factory()(ctx, env)
			if res.IsOk() {
				cfg.notifySuccess(ctx, attempts, waited)
				return res
			}

			if retryN == policy.MaxRetries || (retryable != nil && !retryable(res.Error())) {
				cfg.notifyExhausted(ctx, attempts, waited, res.Error())
				return res
			}

			delay := policy.Delay(retryN + 1)
			cfg.notifyRetry(ctx, RetryEvent[E]{Attempt: retryN + 1, Err: res.Error(), Delay: delay})

			if !sleepCtx(ctx, delay) {
				cfg.notifyExhausted(ctx, attempts, waited, res.Error())
				return res
			}
			waited += delay
		}
	}
}

// sleepCtx waits for d or until the context is cancelled. It reports
// whether the full delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
