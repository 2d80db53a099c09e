package effect

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// RetryObserver receives callbacks from the retry drivers for logging,
// metrics, and journaling.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay the retry loop. Observers are opaque
// side channels: nothing they do affects control flow or results.
type RetryObserver[E any] interface {
	// OnRetry is called before each retry attempt, after the backoff delay
	// has been computed but before the driver sleeps. op is the call-site
	// label set with Named, empty when unset.
	OnRetry(ctx context.Context, op string, ev RetryEvent[E])

	// OnSuccess is called once when an attempt succeeds. attempts is the
	// total invocation count, waited the total backoff time slept.
	OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration)

	// OnExhausted is called once when the driver gives up, whether the
	// budget ran out, the eligibility predicate rejected the error, or the
	// context was cancelled mid-backoff.
	OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E)
}

// NoopRetryObserver is a RetryObserver that does nothing.
type NoopRetryObserver[E any] struct{}

func (NoopRetryObserver[E]) OnRetry(ctx context.Context, op string, ev RetryEvent[E]) {}
func (NoopRetryObserver[E]) OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration) {
}
func (NoopRetryObserver[E]) OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E) {
}

// CompositeRetryObserver fans out events to multiple observers.
type CompositeRetryObserver[E any] struct {
	observers []RetryObserver[E]
}

// NewCompositeRetryObserver creates an observer that forwards events to each
// non-nil observer in obs.
func NewCompositeRetryObserver[E any](obs ...RetryObserver[E]) RetryObserver[E] {
	filtered := make([]RetryObserver[E], 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopRetryObserver[E]{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeRetryObserver[E]{observers: filtered}
}

func (c *CompositeRetryObserver[E]) OnRetry(ctx context.Context, op string, ev RetryEvent[E]) {
	for _, o := range c.observers {
		o.OnRetry(ctx, op, ev)
	}
}

func (c *CompositeRetryObserver[E]) OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration) {
	for _, o := range c.observers {
		o.OnSuccess(ctx, op, attempts, waited)
	}
}

func (c *CompositeRetryObserver[E]) OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E) {
	for _, o := range c.observers {
		o.OnExhausted(ctx, op, attempts, waited, err)
	}
}

// LoggingRetryObserver writes structured logs using log/slog.
type LoggingRetryObserver[E any] struct {
	Logger *slog.Logger
}

// NewLoggingRetryObserver creates an observer that logs retry lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingRetryObserver[E any](logger *slog.Logger) RetryObserver[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingRetryObserver[E]{Logger: logger}
}

func (o *LoggingRetryObserver[E]) OnRetry(ctx context.Context, op string, ev RetryEvent[E]) {
	o.Logger.WarnContext(ctx, "retry_scheduled",
		slog.String("op", op),
		slog.Int("attempt", ev.Attempt),
		slog.Duration("delay", ev.Delay),
		slog.Any("error", ev.Err),
	)
}

func (o *LoggingRetryObserver[E]) OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration) {
	o.Logger.DebugContext(ctx, "retry_succeeded",
		slog.String("op", op),
		slog.Int("attempts", attempts),
		slog.Duration("waited", waited),
	)
}

func (o *LoggingRetryObserver[E]) OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E) {
	o.Logger.ErrorContext(ctx, "retry_exhausted",
		slog.String("op", op),
		slog.Int("attempts", attempts),
		slog.Duration("waited", waited),
		slog.Any("error", err),
	)
}

// RetryMetrics collects simple counters and aggregate backoff time. It
// implements RetryObserver and can be combined with a LoggingRetryObserver
// via NewCompositeRetryObserver.
type RetryMetrics[E any] struct {
	NoopRetryObserver[E]

	retries     atomic.Int64
	successes   atomic.Int64
	exhausted   atomic.Int64
	totalWaited atomic.Int64 // nanoseconds
}

// RetryMetricsSnapshot is an immutable snapshot of RetryMetrics.
type RetryMetricsSnapshot struct {
	Retries     int64
	Successes   int64
	Exhausted   int64
	TotalWaited time.Duration
}

func (m *RetryMetrics[E]) OnRetry(ctx context.Context, op string, ev RetryEvent[E]) {
	m.retries.Add(1)
	m.totalWaited.Add(ev.Delay.Nanoseconds())
}

func (m *RetryMetrics[E]) OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration) {
	m.successes.Add(1)
}

func (m *RetryMetrics[E]) OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E) {
	m.exhausted.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *RetryMetrics[E]) Snapshot() RetryMetricsSnapshot {
	return RetryMetricsSnapshot{
		Retries:     m.retries.Load(),
		Successes:   m.successes.Load(),
		Exhausted:   m.exhausted.Load(),
		TotalWaited: time.Duration(m.totalWaited.Load()),
	}
}
