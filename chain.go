package effect

import (
	"context"
	"fmt"
)

// Chain provides a fluent API for defining a named sequence of dependent
// steps over a single threaded value:
//
//	checkout := effect.NewChain[Order, CheckoutErr, Env]("Checkout").
//	    Step("reserveStock", reserveStock).
//	    StepWithRetry("capturePayment", capturePayment,
//	        effect.NewRetry(3).WithExponentialBackoff(100*time.Millisecond).Policy()).
//	    Step("scheduleShipment", scheduleShipment)
//
//	res := checkout.Run(ctx, env, order)
//
// Steps run strictly in order and fail fast: the first failing step settles
// the chain and later steps never run. A step's retry policy re-runs only
// that step; the chain's error type is unchanged because retried steps
// report their bare underlying error on exhaustion.
type Chain[T, E, Env any] struct {
	name  string
	steps []chainStep[T, E, Env]
}

type chainStep[T, E, Env any] struct {
	name  string
	fn    func(T) Effect[T, E, Env]
	retry *RetryPolicy
}

// NewChain creates a new chain builder with the given name.
func NewChain[T, E, Env any](name string) *Chain[T, E, Env] {
	return &Chain[T, E, Env]{name: name}
}

// Name returns the chain name.
func (c *Chain[T, E, Env]) Name() string {
	return c.name
}

// Step appends a basic step to the chain.
func (c *Chain[T, E, Env]) Step(name string, fn func(T) Effect[T, E, Env]) *Chain[T, E, Env] {
	if name == "" {
		panic("effect: chain step name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("effect: chain step %q has nil function", name))
	}

	c.steps = append(c.steps, chainStep[T, E, Env]{name: name, fn: fn})
	return c
}

// StepWithRetry appends a step that uses the given retry policy.
func (c *Chain[T, E, Env]) StepWithRetry(name string, fn func(T) Effect[T, E, Env], retry RetryPolicy) *Chain[T, E, Env] {
	if name == "" {
		panic("effect: chain step name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("effect: chain step %q has nil function", name))
	}

	// Copy so callers can mutate their RetryPolicy after the call without
	// affecting the stored definition.
	r := retry

	c.steps = append(c.steps, chainStep[T, E, Env]{name: name, fn: fn, retry: &r})
	return c
}

// AsEffect freezes the chain into a single effect seeded with the given
// value. Retry options (observers, hooks) apply to every retried step; each
// step is additionally labelled "<chain>/<step>" for observers.
func (c *Chain[T, E, Env]) AsEffect(seed T, opts ...RetryOption[E]) Effect[T, E, Env] {
	steps := c.steps
	name := c.name
	return func(ctx context.Context, env Env) Result[T, E] {
		current := seed
		for _, step := range steps {
			var eff Effect[T, E, Env]
			if step.retry != nil {
				in := current
				stepOpts := append(append([]RetryOption[E]{}, opts...), Named[E](name+"/"+step.name))
				eff = RetryIf(*step.retry, func() Effect[T, E, Env] { return step.fn(in) }, nil, stepOpts...)
			} else {
				eff = step.fn(current)
			}

			res := eff(ctx, env)
			if !res.IsOk() {
				return res
			}
			current = res.Value()
		}
		return Ok[T, E](current)
	}
}

// Run executes the chain against the environment, threading seed through
// every step.
func (c *Chain[T, E, Env]) Run(ctx context.Context, env Env, seed T, opts ...RetryOption[E]) Result[T, E] {
	return c.AsEffect(seed, opts...)(ctx, env)
}
