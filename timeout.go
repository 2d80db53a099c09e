package effect

import (
	"context"
	"fmt"
	"time"
)

// TimeoutError is the error type of WithTimeout: either the deadline
// elapsed before the effect settled, or the effect itself failed first.
type TimeoutError[E any] struct {
	// Duration is the configured deadline.
	Duration time.Duration

	err      E
	timedOut bool
}

// NewTimeout returns the deadline-elapsed variant.
func NewTimeout[E any](d time.Duration) TimeoutError[E] {
	return TimeoutError[E]{Duration: d, timedOut: true}
}

// NewInner returns the variant wrapping the underlying effect's error.
func NewInner[E any](d time.Duration, err E) TimeoutError[E] {
	return TimeoutError[E]{Duration: d, err: err}
}

// IsTimeout reports whether the deadline elapsed before settlement.
func (t TimeoutError[E]) IsTimeout() bool {
	return t.timedOut
}

// Inner returns the underlying error and whether one is present. It is
// absent for the deadline-elapsed variant.
func (t TimeoutError[E]) Inner() (E, bool) {
	return t.err, !t.timedOut
}

func (t TimeoutError[E]) Error() string {
	if t.timedOut {
		return fmt.Sprintf("timed out after %s", t.Duration)
	}
	return fmt.Sprintf("failed within %s: %v", t.Duration, t.err)
}

// WithTimeout races e against a deadline. If the deadline elapses first the
// result is the deadline variant of TimeoutError; a failure of e before the
// deadline yields the inner variant; a success passes through.
//
// The effect runs on its own goroutine. When the deadline wins, that
// goroutine is no longer awaited; a leaf effect that honours ctx will
// observe cancellation and unwind, one that does not simply finishes into a
// discarded buffer. To bound every attempt of a retried effect, wrap the
// factory's effect rather than the Retry driver itself.
func WithTimeout[O, E, Env any](e Effect[O, E, Env], d time.Duration) Effect[O, TimeoutError[E], Env] {
	return func(ctx context.Context, env Env) Result[O, TimeoutError[E]] {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		ch := make(chan Result[O, E], 1)
		go func() {
			ch <- e(ctx, env)
		}()

		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case res := <-ch:
			if res.IsOk() {
				return Ok[O, TimeoutError[E]](res.Value())
			}
			return Err[O](NewInner(d, res.Error()))
		case <-t.C:
			return Err[O](NewTimeout[E](d))
		}
	}
}
