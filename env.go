package effect

import "context"

// Environment projection. Ask and Asks read the ambient environment; Local
// runs an effect under a narrowed or adapted environment, so a component
// written against a small capability set can be embedded in a caller with a
// larger one.

// Ask returns an effect that succeeds with the environment itself.
func Ask[E, Env any]() Effect[Env, E, Env] {
	return func(ctx context.Context, env Env) Result[Env, E] {
		return Ok[Env, E](env)
	}
}

// Asks returns an effect that succeeds with a projection of the environment.
func Asks[O, E, Env any](f func(Env) O) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		return Ok[O, E](f(env))
	}
}

// Local adapts e, which needs an Inner environment, to run under an Outer
// environment via the projection f. The projection is applied once per run.
func Local[O, E, Inner, Outer any](f func(Outer) Inner, e Effect[O, E, Inner]) Effect[O, E, Outer] {
	return func(ctx context.Context, outer Outer) Result[O, E] {
		return e(ctx, f(outer))
	}
}
