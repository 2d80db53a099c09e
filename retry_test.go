package effect

import (
	"testing"
	"time"
)

// Ensure negative maxRetries is normalized to 0 (a single attempt).
func TestNewRetry_NegativeMaxRetriesDefaultsToZero(t *testing.T) {
	p := NewRetry(-5).Policy()
	if p.MaxRetries != 0 {
		t.Fatalf("expected MaxRetries=0 for NewRetry(-5), got %d", p.MaxRetries)
	}

	p = NewRetry(0).Policy()
	if p.MaxRetries != 0 {
		t.Fatalf("expected MaxRetries=0 for NewRetry(0), got %d", p.MaxRetries)
	}
}

// Ensure WithConstantBackoff wires kind and base delay.
func TestRetryBuilder_WithConstantBackoff(t *testing.T) {
	p := NewRetry(3).WithConstantBackoff(50 * time.Millisecond).Policy()

	if p.Kind != BackoffConstant {
		t.Fatalf("expected BackoffConstant, got %d", p.Kind)
	}
	if p.BaseDelay != 50*time.Millisecond {
		t.Fatalf("expected BaseDelay=50ms, got %s", p.BaseDelay)
	}
	if p.MaxRetries != 3 {
		t.Fatalf("expected MaxRetries=3, got %d", p.MaxRetries)
	}
}

// Ensure the full fluent chain wires every field.
func TestRetryBuilder_FullChain(t *testing.T) {
	p := NewRetry(5).
		WithExponentialBackoff(100 * time.Millisecond).
		WithMaxDelay(2 * time.Second).
		WithJitter(0.2).
		Policy()

	if p.Kind != BackoffExponential {
		t.Fatalf("expected BackoffExponential, got %d", p.Kind)
	}
	if p.BaseDelay != 100*time.Millisecond {
		t.Fatalf("expected BaseDelay=100ms, got %s", p.BaseDelay)
	}
	if p.MaxDelay != 2*time.Second {
		t.Fatalf("expected MaxDelay=2s, got %s", p.MaxDelay)
	}
	if p.Jitter != 0.2 {
		t.Fatalf("expected Jitter=0.2, got %f", p.Jitter)
	}
}

// Ensure WithJitter clamps fractions to [0, 1].
func TestRetryBuilder_JitterClamped(t *testing.T) {
	if j := NewRetry(1).WithJitter(-0.5).Policy().Jitter; j != 0 {
		t.Fatalf("expected negative jitter clamped to 0, got %f", j)
	}
	if j := NewRetry(1).WithJitter(3.0).Policy().Jitter; j != 1 {
		t.Fatalf("expected oversized jitter clamped to 1, got %f", j)
	}
}

// Ensure Immediate clears any previously configured delays.
func TestRetryBuilder_ImmediateClearsDelays(t *testing.T) {
	p := NewRetry(2).
		WithLinearBackoff(time.Second).
		WithMaxDelay(5 * time.Second).
		WithJitter(0.5).
		Immediate().
		Policy()

	if p.BaseDelay != 0 || p.MaxDelay != 0 || p.Jitter != 0 {
		t.Fatalf("expected Immediate to clear delays, got %+v", p)
	}
	if p.MaxRetries != 2 {
		t.Fatalf("expected MaxRetries preserved, got %d", p.MaxRetries)
	}
}

// Ensure Delay grows per strategy and respects MaxDelay.
func TestRetryPolicy_DelayGrowthAndCap(t *testing.T) {
	p := NewRetry(10).WithExponentialBackoff(10 * time.Millisecond).Policy()
	for attempt, want := range map[int]time.Duration{
		1: 10 * time.Millisecond,
		2: 20 * time.Millisecond,
		3: 40 * time.Millisecond,
		4: 80 * time.Millisecond,
	} {
		if got := p.Delay(attempt); got != want {
			t.Fatalf("attempt %d: expected %s, got %s", attempt, want, got)
		}
	}

	capped := NewRetry(10).
		WithExponentialBackoff(10 * time.Millisecond).
		WithMaxDelay(25 * time.Millisecond).
		Policy()
	if got := capped.Delay(4); got != 25*time.Millisecond {
		t.Fatalf("expected capped delay 25ms, got %s", got)
	}
}

// Ensure fibonacci delays follow base × fib(n).
func TestRetryPolicy_FibonacciDelays(t *testing.T) {
	p := NewRetry(10).WithFibonacciBackoff(10 * time.Millisecond).Policy()

	want := []time.Duration{
		10 * time.Millisecond,
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
		50 * time.Millisecond,
		80 * time.Millisecond,
	}
	for i, w := range want {
		if got := p.Delay(i + 1); got != w {
			t.Fatalf("attempt %d: expected %s, got %s", i+1, w, got)
		}
	}
}

// Ensure jittered delays stay within the configured band.
func TestRetryPolicy_JitterBounds(t *testing.T) {
	p := NewRetry(3).
		WithConstantBackoff(100 * time.Millisecond).
		WithJitter(0.3).
		Policy()

	lo := 70 * time.Millisecond
	hi := 130 * time.Millisecond
	for i := 0; i < 100; i++ {
		d := p.Delay(1)
		if d < lo || d > hi {
			t.Fatalf("jittered delay %s outside [%s, %s]", d, lo, hi)
		}
	}
}
