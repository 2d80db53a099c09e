package effect

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Parallel executors over boxed effects. All of them fan out onto goroutines
// and rely on the effects themselves to honour ctx cancellation; an effect
// that ignores its context keeps running in the background after the
// executor has returned, and its result is discarded.

// ParAll starts every effect concurrently and waits for all of them to
// settle. If all succeed it returns the outputs in input order. If one or
// more fail it returns every error, in the input order of the failing
// positions; successes are discarded. Use it when visibility of all failures
// matters more than early termination.
func ParAll[O, E, Env any](ctx context.Context, env Env, effs []Boxed[O, E, Env]) Result[[]O, []E] {
	results := make([]Result[O, E], len(effs))

	var wg sync.WaitGroup
	for i, b := range effs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = b.Run(ctx, env)
		}()
	}
	wg.Wait()

	return gather(results)
}

// ParAllLimit is ParAll with at most limit effects in flight at once. Excess
// effects wait for a slot. Ordering and error accumulation are identical to
// ParAll. A limit below one is treated as one.
//
// If ctx is cancelled while effects are still queued, the remaining effects
// are run anyway (with the cancelled context) so that every position
// settles; well-behaved effects fail fast at that point.
func ParAllLimit[O, E, Env any](ctx context.Context, env Env, limit int, effs []Boxed[O, E, Env]) Result[[]O, []E] {
	if limit < 1 {
		limit = 1
	}

	sem := semaphore.NewWeighted(int64(limit))
	results := make([]Result[O, E], len(effs))

	var wg sync.WaitGroup
	for i, b := range effs {
		acquired := sem.Acquire(ctx, 1) == nil

		wg.Add(1)
		go func() {
			defer wg.Done()
			if acquired {
				defer sem.Release(1)
			}
			results[i] = b.Run(ctx, env)
		}()
	}
	wg.Wait()

	return gather(results)
}

// gather splits settled results into the all-success or all-errors shape,
// preserving input order.
func gather[O, E any](results []Result[O, E]) Result[[]O, []E] {
	outs := make([]O, 0, len(results))
	var errs []E
	for _, r := range results {
		if r.IsOk() {
			outs = append(outs, r.Value())
		} else {
			errs = append(errs, r.Error())
		}
	}
	if len(errs) > 0 {
		return Err[[]O](errs)
	}
	return Ok[[]O, []E](outs)
}

// ParTryAll starts every effect concurrently and fails fast: the first
// settled failure is returned immediately, without waiting for slower
// effects. Effects still in flight are signalled via a cancelled child
// context but are not forcibly terminated; their eventual results are
// discarded. On success it returns the outputs in input order.
func ParTryAll[O, E, Env any](ctx context.Context, env Env, effs []Boxed[O, E, Env]) Result[[]O, E] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type settled struct {
		idx int
		res Result[O, E]
	}

	// Buffered so that losing goroutines can settle after we have returned.
	ch := make(chan settled, len(effs))
	for i, b := range effs {
		go func() {
			ch <- settled{idx: i, res: b.Run(ctx, env)}
		}()
	}

	outs := make([]O, len(effs))
	for range effs {
		s := <-ch
		if !s.res.IsOk() {
			return Err[[]O](s.res.Error())
		}
		outs[s.idx] = s.res.Value()
	}
	return Ok[[]O, E](outs)
}

// Race starts every effect concurrently and returns whichever settles first,
// success or failure. First-to-finish, not first-to-succeed: racing a slow
// query against a sleep-then-fail effect yields a manual timeout. Panics if
// effs is empty, since no settlement is possible.
func Race[O, E, Env any](ctx context.Context, env Env, effs []Boxed[O, E, Env]) Result[O, E] {
	if len(effs) == 0 {
		panic("effect: Race requires at least one effect")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan Result[O, E], len(effs))
	for _, b := range effs {
		go func() {
			ch <- b.Run(ctx, env)
		}()
	}
	return <-ch
}

// Par2 fans out two heterogeneously typed effects without boxing, waits for
// both, and accumulates errors like ParAll: on any failure it returns the
// errors of the failing positions in input order. The environment is
// duplicated per branch as in Box.
func Par2[T1, T2, E, Env any](
	ctx context.Context,
	env Env,
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
) Result[Tuple2[T1, T2], []E] {
	var (
		r1 Result[T1, E]
		r2 Result[T2, E]
		wg sync.WaitGroup
	)
	wg.Add(2)
	go func() { defer wg.Done(); r1 = e1(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r2 = e2(ctx, cloneEnv(env)) }()
	wg.Wait()

	var errs []E
	if !r1.IsOk() {
		errs = append(errs, r1.Error())
	}
	if !r2.IsOk() {
		errs = append(errs, r2.Error())
	}
	if len(errs) > 0 {
		return Err[Tuple2[T1, T2]](errs)
	}
	return Ok[Tuple2[T1, T2], []E](Tuple2[T1, T2]{r1.Value(), r2.Value()})
}

// Par3 is the three-effect variant of Par2.
func Par3[T1, T2, T3, E, Env any](
	ctx context.Context,
	env Env,
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
) Result[Tuple3[T1, T2, T3], []E] {
	var (
		r1 Result[T1, E]
		r2 Result[T2, E]
		r3 Result[T3, E]
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() { defer wg.Done(); r1 = e1(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r2 = e2(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r3 = e3(ctx, cloneEnv(env)) }()
	wg.Wait()

	var errs []E
	if !r1.IsOk() {
		errs = append(errs, r1.Error())
	}
	if !r2.IsOk() {
		errs = append(errs, r2.Error())
	}
	if !r3.IsOk() {
		errs = append(errs, r3.Error())
	}
	if len(errs) > 0 {
		return Err[Tuple3[T1, T2, T3]](errs)
	}
	return Ok[Tuple3[T1, T2, T3], []E](Tuple3[T1, T2, T3]{r1.Value(), r2.Value(), r3.Value()})
}

// Par4 is the four-effect variant of Par2.
func Par4[T1, T2, T3, T4, E, Env any](
	ctx context.Context,
	env Env,
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
) Result[Tuple4[T1, T2, T3, T4], []E] {
	var (
		r1 Result[T1, E]
		r2 Result[T2, E]
		r3 Result[T3, E]
		r4 Result[T4, E]
		wg sync.WaitGroup
	)
	wg.Add(4)
	go func() { defer wg.Done(); r1 = e1(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r2 = e2(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r3 = e3(ctx, cloneEnv(env)) }()
	go func() { defer wg.Done(); r4 = e4(ctx, cloneEnv(env)) }()
	wg.Wait()

	var errs []E
	if !r1.IsOk() {
		errs = append(errs, r1.Error())
	}
	if !r2.IsOk() {
		errs = append(errs, r2.Error())
	}
	if !r3.IsOk() {
		errs = append(errs, r3.Error())
	}
	if !r4.IsOk() {
		errs = append(errs, r4.Error())
	}
	if len(errs) > 0 {
		return Err[Tuple4[T1, T2, T3, T4]](errs)
	}
	return Ok[Tuple4[T1, T2, T3, T4], []E](Tuple4[T1, T2, T3, T4]{r1.Value(), r2.Value(), r3.Value(), r4.Value()})
}
