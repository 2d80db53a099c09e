// Package backoff computes retry delays from a pure-data description of the
// growth strategy. It has no notion of sleeping or retrying; callers feed it
// a 1-indexed retry attempt number and receive a duration.
package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy selects how the delay grows with the retry attempt number.
type Strategy int

const (
	// Constant keeps the delay fixed at the base delay.
	Constant Strategy = iota
	// Linear grows the delay as base × attempt.
	Linear
	// Exponential grows the delay as base × 2^(attempt−1).
	Exponential
	// Fibonacci grows the delay as base × fib(attempt), with fib(1) = fib(2) = 1.
	Fibonacci
)

// maxShift bounds the exponential doubling so the multiplier cannot
// overflow int64.
const maxShift = 62

// Delay returns the raw delay for the given 1-indexed retry attempt. The
// first retry is attempt 1. Non-positive attempts and base delays yield
// zero. When the multiplied delay would overflow, the maximum representable
// duration is returned; callers cap it with their own maximum.
func Delay(s Strategy, base time.Duration, attempt int) time.Duration {
	if attempt < 1 || base <= 0 {
		return 0
	}

	switch s {
	case Linear:
		return scale(base, int64(attempt))
	case Exponential:
		if attempt-1 >= maxShift {
			return math.MaxInt64
		}
		return scale(base, int64(1)<<uint(attempt-1))
	case Fibonacci:
		return scale(base, fib(attempt))
	default:
		return base
	}
}

// Jitter perturbs d by a uniformly sampled factor in [1−frac, 1+frac] and
// clamps the outcome to non-negative. A fraction outside [0, 1] is clamped
// first; a zero fraction returns d unchanged.
func Jitter(d time.Duration, frac float64) time.Duration {
	frac = math.Min(math.Max(frac, 0), 1)
	if frac == 0 || d <= 0 {
		return d
	}

	factor := 1 + (rand.Float64()*2-1)*frac
	out := time.Duration(float64(d) * factor)
	if out < 0 {
		return 0
	}
	return out
}

// scale multiplies base by factor with overflow saturation.
func scale(base time.Duration, factor int64) time.Duration {
	if factor <= 0 {
		return 0
	}
	if int64(base) > math.MaxInt64/factor {
		return math.MaxInt64
	}
	return base * time.Duration(factor)
}

// fib returns the attempt-th Fibonacci number (1, 1, 2, 3, 5, ...),
// saturating instead of overflowing.
func fib(attempt int) int64 {
	var a, b int64 = 1, 1
	for i := 2; i < attempt; i++ {
		if a > math.MaxInt64-b {
			return math.MaxInt64
		}
		a, b = b, a+b
	}
	if attempt == 1 {
		return 1
	}
	return b
}
