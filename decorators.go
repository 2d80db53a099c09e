package effect

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Sleep returns an effect that waits for the given duration and succeeds
// with Unit. It is context-aware: if the context is cancelled during the
// wait, the effect returns early (still successfully — a pure delay has no
// error of its own). Composed after a Fail, it is the sleep-then-fail leg of
// the manual-timeout Race pattern.
func Sleep[E, Env any](d time.Duration) Effect[Unit, E, Env] {
	return func(ctx context.Context, env Env) Result[Unit, E] {
		sleepCtx(ctx, d)
		return Ok[Unit, E](Unit{})
	}
}

// Instrument wraps e in a logging span: a debug line when the effect starts
// and a debug or error line when it settles, both carrying the span name, a
// generated span id, and the elapsed time. If logger is nil, slog.Default()
// is used. The wrapped effect's result is returned untouched.
func Instrument[O, E, Env any](name string, logger *slog.Logger, e Effect[O, E, Env]) Effect[O, E, Env] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, env Env) Result[O, E] {
		spanID := uuid.NewString()
		logger.DebugContext(ctx, "effect_start",
			slog.String("span", name),
			slog.String("span_id", spanID),
		)

		start := time.Now()
		res := e(ctx, env)
		elapsed := time.Since(start)

		if res.IsOk() {
			logger.DebugContext(ctx, "effect_settled",
				slog.String("span", name),
				slog.String("span_id", spanID),
				slog.Duration("duration", elapsed),
			)
		} else {
			logger.ErrorContext(ctx, "effect_settled",
				slog.String("span", name),
				slog.String("span_id", spanID),
				slog.Duration("duration", elapsed),
				slog.Any("error", res.Error()),
			)
		}
		return res
	}
}

// RateLimited gates e behind a token-bucket limiter: the effect waits for a
// token before running. A wait failure (cancelled context, or a wait that
// would exceed the context deadline) is converted into the effect's error
// type via errFn.
func RateLimited[O, E, Env any](l *rate.Limiter, errFn func(error) E, e Effect[O, E, Env]) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		if err := l.Wait(ctx); err != nil {
			return Err[O](errFn(err))
		}
		return e(ctx, env)
	}
}
