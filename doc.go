// Package effect provides a composable, typed-effect execution substrate
// for Go.
//
// An Effect is a description of a computation that may fail with a typed
// error and depends on an injected environment of capabilities. Effects are
// built once, composed freely, and run exactly once — retrying, racing,
// fanning out, and resource scoping are handled by the package so callers
// never hand-roll goroutine bookkeeping for them. It runs fully in Go on
// plain goroutines and integrates cleanly into existing codebases.
//
// # Core Concepts
//
// The programming model is intentionally small and idiomatic:
//
//  1. Effect and Result
//  2. Combinators
//  3. Boxed effects and parallel executors
//  4. Retry policies and drivers
//  5. Bracket
//
// # Effect and Result
//
// An Effect[O, E, Env] is a function from a context and an environment to a
// Result[O, E] — a success of type O or a typed error of type E. Leaf
// effects are built from plain functions:
//
//	fetch := effect.FromAsync(func(ctx context.Context, env Env) effect.Result[User, ApiErr] {
//	    ...
//	})
//
// All real I/O lives inside caller-supplied leaves; the package only
// orchestrates when and how many of them run and how their results combine.
//
// # Combinators
//
// Map, MapErr, AndThen, OrElse, Tap, Check, With, and Zip2..Zip8 compose
// effects sequentially without running them. Sequential composition is
// strictly fail-fast: the first error wins and later steps never run.
// Ask, Asks, and Local project the environment so a component written
// against a narrow capability set embeds into a wider one.
//
// # Boxed effects and parallel executors
//
// Box erases a combinator chain into a uniform Boxed value, the element type
// of the parallel executors. Four strategies cover the useful shapes of
// fan-out:
//
//   - ParAll: wait for everything, return all outputs or all errors
//   - ParAllLimit: ParAll with a cap on in-flight effects
//   - ParTryAll: return the first failure immediately
//   - Race: return the first settlement, success or failure
//
// Par2..Par4 are the fixed-arity variants for heterogeneous output types.
//
// # Retry policies and drivers
//
// RetryPolicy is pure data — strategy, base delay, retry budget, jitter —
// built fluently with NewRetry. The Retry driver re-invokes an effect
// factory according to the policy and reports exhaustion as RetryExhausted;
// RetryIf filters retryable errors and reports the bare error instead.
// Observers (logging, metrics, a durable SQLite journal) watch the loop
// without influencing it. WithTimeout bounds any effect with a deadline.
//
// # Bracket
//
// Bracket guarantees the release phase of an acquire/use/release triple runs
// whenever acquire succeeded, regardless of how the use phase ends. This is
// the package's resource-safety primitive; BracketSimple is the variant
// whose release cannot fail.
//
// # Chains and the Runner
//
// Chain names a sequence of dependent steps over one threaded value, with
// per-step retry policies. Runner executes batches of named jobs with
// bounded concurrency and ordered results. Both are convenience layers over
// the primitives above.
//
// For runnable programs, see the /examples directory.
package effect
