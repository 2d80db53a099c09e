package effect

import (
	"time"

	"github.com/petrijr/effect/internal/backoff"
)

// BackoffKind selects the delay-growth strategy of a RetryPolicy.
type BackoffKind int

const (
	BackoffConstant    = BackoffKind(backoff.Constant)
	BackoffLinear      = BackoffKind(backoff.Linear)
	BackoffExponential = BackoffKind(backoff.Exponential)
	BackoffFibonacci   = BackoffKind(backoff.Fibonacci)
)

// RetryPolicy is a pure-data description of a retry budget: how the delay
// grows, where it starts, how many retries are allowed, and how much random
// jitter is applied. It carries no behaviour and can be inspected and tested
// without running anything.
//
// MaxRetries counts retries, not total attempts:
//
//	MaxRetries = 0 => a single attempt, no retries
//	MaxRetries = 3 => initial attempt + up to 3 retries (4 attempts total)
type RetryPolicy struct {
	// Kind is the backoff growth strategy.
	Kind BackoffKind

	// BaseDelay is the delay unit the strategy grows from. Zero disables
	// sleeping between attempts.
	BaseDelay time.Duration

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// MaxDelay, when positive, caps every computed delay.
	MaxDelay time.Duration

	// Jitter, when positive, scales each computed delay by a uniformly
	// sampled factor in [1−Jitter, 1+Jitter]. Values are clamped to [0, 1].
	Jitter float64
}

// Delay returns the (capped, jittered) delay before the given retry
// attempt. The first retry is attempt 1.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := backoff.Delay(backoff.Strategy(p.Kind), p.BaseDelay, attempt)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d = backoff.Jitter(d, p.Jitter)
	}
	return d
}

// RetryBuilder provides a fluent way to construct RetryPolicy values for the
// Retry and RetryIf drivers.
type RetryBuilder struct {
	policy RetryPolicy
}

// NewRetry creates a RetryBuilder allowing the given number of retries.
//
// maxRetries < 0 is treated as 0 (a single attempt).
func NewRetry(maxRetries int) RetryBuilder {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryBuilder{
		policy: RetryPolicy{
			MaxRetries: maxRetries,
		},
	}
}

// WithConstantBackoff configures a fixed delay between retries.
func (r RetryBuilder) WithConstantBackoff(delay time.Duration) RetryBuilder {
	p := r.policy
	p.Kind = BackoffConstant
	p.BaseDelay = delay
	return RetryBuilder{policy: p}
}

// WithLinearBackoff configures delays of base, 2×base, 3×base, ...
func (r RetryBuilder) WithLinearBackoff(base time.Duration) RetryBuilder {
	p := r.policy
	p.Kind = BackoffLinear
	p.BaseDelay = base
	return RetryBuilder{policy: p}
}

// WithExponentialBackoff configures delays of base, 2×base, 4×base, ...
func (r RetryBuilder) WithExponentialBackoff(base time.Duration) RetryBuilder {
	p := r.policy
	p.Kind = BackoffExponential
	p.BaseDelay = base
	return RetryBuilder{policy: p}
}

// WithFibonacciBackoff configures delays of base, base, 2×base, 3×base,
// 5×base, ...
func (r RetryBuilder) WithFibonacciBackoff(base time.Duration) RetryBuilder {
	p := r.policy
	p.Kind = BackoffFibonacci
	p.BaseDelay = base
	return RetryBuilder{policy: p}
}

// WithMaxDelay caps every computed delay at max. A non-positive max removes
// the cap.
func (r RetryBuilder) WithMaxDelay(max time.Duration) RetryBuilder {
	p := r.policy
	if max < 0 {
		max = 0
	}
	p.MaxDelay = max
	return RetryBuilder{policy: p}
}

// WithJitter applies random jitter to every delay. The fraction is clamped
// to [0, 1]; 0.2 means each delay is scaled by a factor in [0.8, 1.2].
func (r RetryBuilder) WithJitter(frac float64) RetryBuilder {
	p := r.policy
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	p.Jitter = frac
	return RetryBuilder{policy: p}
}

// Immediate disables any sleep between retries. Retries still respect
// MaxRetries.
func (r RetryBuilder) Immediate() RetryBuilder {
	p := r.policy
	p.Kind = BackoffConstant
	p.BaseDelay = 0
	p.MaxDelay = 0
	p.Jitter = 0
	return RetryBuilder{policy: p}
}

// Policy returns the underlying RetryPolicy to be passed to Retry or
// RetryIf.
func (r RetryBuilder) Policy() RetryPolicy {
	return r.policy
}
