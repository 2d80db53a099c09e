package effect

import "context"

// Effect is a not-yet-run computation that, given a context and an
// environment of type Env, settles to a Result carrying either a success
// value of type O or a typed error of type E.
//
// The environment is a read-only bag of capabilities (database handles,
// clients, configuration) supplied by the caller at run time. It should be a
// cheap handle: running an effect, boxing it, or fanning it out in parallel
// may copy the environment, and each copy must refer to the same underlying
// state rather than duplicate it. Environments that need an explicit
// duplication step can implement EnvCloner.
//
// Effects are single-shot: run an effect at most once. Combinators consume
// the effects they wrap, and the retry drivers take a factory precisely
// because a fresh effect is needed per attempt.
type Effect[O, E, Env any] func(ctx context.Context, env Env) Result[O, E]

// Run executes the effect against the given environment.
func (e Effect[O, E, Env]) Run(ctx context.Context, env Env) Result[O, E] {
	return e(ctx, env)
}

// Pure returns an effect that always succeeds with v, independent of the
// environment.
func Pure[O, E, Env any](v O) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		return Ok[O, E](v)
	}
}

// Fail returns an effect that always fails with e.
func Fail[O, E, Env any](e E) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		return Err[O](e)
	}
}

// FromFunc lifts a synchronous function of the environment into an effect.
func FromFunc[O, E, Env any](fn func(env Env) Result[O, E]) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		return fn(env)
	}
}

// FromAsync lifts a context-aware function into an effect. This is the
// constructor for leaf effects that block, wait, or perform real I/O; the
// function is expected to honour ctx cancellation.
func FromAsync[O, E, Env any](fn func(ctx context.Context, env Env) Result[O, E]) Effect[O, E, Env] {
	return Effect[O, E, Env](fn)
}

// FromResult lifts an already-settled Result into an effect.
func FromResult[O, E, Env any](r Result[O, E]) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		return r
	}
}

// Lift adapts a function written in the usual Go (value, error) convention
// into an effect whose error type is the plain error interface.
func Lift[O, Env any](fn func(ctx context.Context, env Env) (O, error)) Effect[O, error, Env] {
	return func(ctx context.Context, env Env) Result[O, error] {
		v, err := fn(ctx, env)
		if err != nil {
			return Err[O](err)
		}
		return Ok[O, error](v)
	}
}

// FromValidation lifts the outcome of an error-accumulating validation into
// an effect. A non-empty errs slice fails the effect with every violation;
// an empty slice succeeds with value.
func FromValidation[O, E, Env any](value O, errs []E) Effect[O, []E, Env] {
	if len(errs) > 0 {
		return Fail[O, []E, Env](errs)
	}
	return Pure[O, []E, Env](value)
}
