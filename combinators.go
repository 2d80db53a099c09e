package effect

import "context"

// Combinators compose effects without running them. Each returns a new
// effect wrapping the previous one; failure propagation is strictly
// fail-fast — the only combinator that reacts to a failure is OrElse.
//
// Type-changing combinators are free functions rather than methods because
// Go methods cannot introduce new type parameters.

// Map transforms the success value of e with f. A failure passes through
// unchanged and f is never called.
func Map[O1, O2, E, Env any](e Effect[O1, E, Env], f func(O1) O2) Effect[O2, E, Env] {
	return func(ctx context.Context, env Env) Result[O2, E] {
		res := e(ctx, env)
		if !res.IsOk() {
			return Err[O2](res.Error())
		}
		return Ok[O2, E](f(res.Value()))
	}
}

// MapErr transforms the error of e with f. A success passes through
// unchanged. MapErr is the bridge for chaining effects whose error types
// differ.
func MapErr[O, E1, E2, Env any](e Effect[O, E1, Env], f func(E1) E2) Effect[O, E2, Env] {
	return func(ctx context.Context, env Env) Result[O, E2] {
		res := e(ctx, env)
		if res.IsOk() {
			return Ok[O, E2](res.Value())
		}
		return Err[O](f(res.Error()))
	}
}

// AndThen runs e and, on success, feeds its value into f to obtain the next
// effect, which is then run under the same environment. On failure the
// continuation is never invoked and the error propagates.
func AndThen[O1, O2, E, Env any](e Effect[O1, E, Env], f func(O1) Effect[O2, E, Env]) Effect[O2, E, Env] {
	return func(ctx context.Context, env Env) Result[O2, E] {
		res := e(ctx, env)
		if !res.IsOk() {
			return Err[O2](res.Error())
		}
		return f(res.Value())(ctx, env)
	}
}

// OrElse runs e and, on failure, feeds the error into f to obtain a recovery
// effect. A success passes through and f is never invoked. The recovery
// effect may use a different error type.
func OrElse[O, E1, E2, Env any](e Effect[O, E1, Env], f func(E1) Effect[O, E2, Env]) Effect[O, E2, Env] {
	return func(ctx context.Context, env Env) Result[O, E2] {
		res := e(ctx, env)
		if res.IsOk() {
			return Ok[O, E2](res.Value())
		}
		return f(res.Error())(ctx, env)
	}
}

// Tap runs a side effect derived from the success value and returns the
// original value. A failure of the tap effect propagates and replaces the
// success: side effects here are not fire-and-forget, they are part of the
// chain. Use OrElse around the tap effect to ignore its failures.
func Tap[O, E, Env any](e Effect[O, E, Env], f func(O) Effect[Unit, E, Env]) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		res := e(ctx, env)
		if !res.IsOk() {
			return res
		}
		if tres := f(res.Value())(ctx, env); !tres.IsOk() {
			return Err[O](tres.Error())
		}
		return res
	}
}

// Check converts a success into a failure when pred rejects the value. The
// error is produced lazily via errFn.
func Check[O, E, Env any](e Effect[O, E, Env], pred func(O) bool, errFn func() E) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		res := e(ctx, env)
		if !res.IsOk() {
			return res
		}
		if !pred(res.Value()) {
			return Err[O](errFn())
		}
		return res
	}
}

// With runs e and, on success, derives a second effect from its value, runs
// it sequentially, and succeeds with both values paired. Either failure
// short-circuits.
func With[O1, O2, E, Env any](e Effect[O1, E, Env], f func(O1) Effect[O2, E, Env]) Effect[Tuple2[O1, O2], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple2[O1, O2], E] {
		res := e(ctx, env)
		if !res.IsOk() {
			return Err[Tuple2[O1, O2]](res.Error())
		}
		second := f(res.Value())(ctx, env)
		if !second.IsOk() {
			return Err[Tuple2[O1, O2]](second.Error())
		}
		return Ok[Tuple2[O1, O2], E](Tuple2[O1, O2]{V1: res.Value(), V2: second.Value()})
	}
}
