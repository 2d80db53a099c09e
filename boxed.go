package effect

import "context"

// EnvCloner is the optional duplication capability for environments. An
// environment that implements it controls how it is duplicated when an
// effect crosses an ownership boundary (boxing, parallel fan-out). The clone
// must be a cheap handle copy sharing the underlying state, never a deep
// copy of that state.
//
// Environments that do not implement EnvCloner are duplicated by plain value
// copy, which has the same handle semantics for pointer-shaped types.
type EnvCloner[Env any] interface {
	CloneEnv() Env
}

// cloneEnv duplicates an environment for a run that outlives the caller's
// scope.
func cloneEnv[Env any](env Env) Env {
	if c, ok := any(env).(EnvCloner[Env]); ok {
		return c.CloneEnv()
	}
	return env
}

// Boxed is a uniformly typed wrapper around an effect. Distinct combinator
// chains over the same (O, E, Env) triple box to the same Boxed type, which
// makes Boxed the element type for heterogeneous collections, recursive
// effect-producing functions, and the parallel executors.
//
// Running a Boxed created with Box duplicates the environment once at the
// run boundary, so every parallel branch holds its own environment handle.
type Boxed[O, E, Env any] struct {
	run Effect[O, E, Env]
	dup bool
}

// Box erases e into a Boxed that duplicates the environment on each run.
func Box[O, E, Env any](e Effect[O, E, Env]) Boxed[O, E, Env] {
	return Boxed[O, E, Env]{run: e, dup: true}
}

// BoxLocal erases e without environment duplication. Use it for
// single-goroutine payloads whose environment must not be copied.
func BoxLocal[O, E, Env any](e Effect[O, E, Env]) Boxed[O, E, Env] {
	return Boxed[O, E, Env]{run: e}
}

// Run executes the boxed effect, duplicating the environment first when the
// box was created with Box.
func (b Boxed[O, E, Env]) Run(ctx context.Context, env Env) Result[O, E] {
	if b.dup {
		env = cloneEnv(env)
	}
	return b.run(ctx, env)
}
