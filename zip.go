package effect

import "context"

// Unit is the output type of effects that are run purely for their side
// effects (taps, releases, sleeps).
type Unit = struct{}

// TupleN holds the positional outputs of N zipped or fanned-out effects.

type Tuple2[T1, T2 any] struct {
	V1 T1
	V2 T2
}

type Tuple3[T1, T2, T3 any] struct {
	V1 T1
	V2 T2
	V3 T3
}

type Tuple4[T1, T2, T3, T4 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

type Tuple5[T1, T2, T3, T4, T5 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
}

type Tuple6[T1, T2, T3, T4, T5, T6 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
}

type Tuple7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
}

type Tuple8[T1, T2, T3, T4, T5, T6, T7, T8 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
	V8 T8
}

// Zip2 runs two independently constructed effects sequentially and succeeds
// with both outputs. The first failing position short-circuits; later
// positions never run. Zip3..Zip8 extend the same contract to higher
// arities. For concurrent fan-out use Par2..Par4 or ParAll instead.
func Zip2[T1, T2, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
) Effect[Tuple2[T1, T2], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple2[T1, T2], E] {
		r1 := e1(ctx, env)
		if !r1.IsOk() {
			return Err[Tuple2[T1, T2]](r1.Error())
		}
		r2 := e2(ctx, env)
		if !r2.IsOk() {
			return Err[Tuple2[T1, T2]](r2.Error())
		}
		return Ok[Tuple2[T1, T2], E](Tuple2[T1, T2]{r1.Value(), r2.Value()})
	}
}

// Zip3 is the three-effect variant of Zip2.
func Zip3[T1, T2, T3, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
) Effect[Tuple3[T1, T2, T3], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple3[T1, T2, T3], E] {
		r12 := Zip2(e1, e2)(ctx, env)
		if !r12.IsOk() {
			return Err[Tuple3[T1, T2, T3]](r12.Error())
		}
		r3 := e3(ctx, env)
		if !r3.IsOk() {
			return Err[Tuple3[T1, T2, T3]](r3.Error())
		}
		t := r12.Value()
		return Ok[Tuple3[T1, T2, T3], E](Tuple3[T1, T2, T3]{t.V1, t.V2, r3.Value()})
	}
}

// Zip4 is the four-effect variant of Zip2.
func Zip4[T1, T2, T3, T4, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
) Effect[Tuple4[T1, T2, T3, T4], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple4[T1, T2, T3, T4], E] {
		r123 := Zip3(e1, e2, e3)(ctx, env)
		if !r123.IsOk() {
			return Err[Tuple4[T1, T2, T3, T4]](r123.Error())
		}
		r4 := e4(ctx, env)
		if !r4.IsOk() {
			return Err[Tuple4[T1, T2, T3, T4]](r4.Error())
		}
		t := r123.Value()
		return Ok[Tuple4[T1, T2, T3, T4], E](Tuple4[T1, T2, T3, T4]{t.V1, t.V2, t.V3, r4.Value()})
	}
}

// Zip5 is the five-effect variant of Zip2.
func Zip5[T1, T2, T3, T4, T5, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
	e5 Effect[T5, E, Env],
) Effect[Tuple5[T1, T2, T3, T4, T5], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple5[T1, T2, T3, T4, T5], E] {
		r := Zip4(e1, e2, e3, e4)(ctx, env)
		if !r.IsOk() {
			return Err[Tuple5[T1, T2, T3, T4, T5]](r.Error())
		}
		r5 := e5(ctx, env)
		if !r5.IsOk() {
			return Err[Tuple5[T1, T2, T3, T4, T5]](r5.Error())
		}
		t := r.Value()
		return Ok[Tuple5[T1, T2, T3, T4, T5], E](Tuple5[T1, T2, T3, T4, T5]{t.V1, t.V2, t.V3, t.V4, r5.Value()})
	}
}

// Zip6 is the six-effect variant of Zip2.
func Zip6[T1, T2, T3, T4, T5, T6, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
	e5 Effect[T5, E, Env],
	e6 Effect[T6, E, Env],
) Effect[Tuple6[T1, T2, T3, T4, T5, T6], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple6[T1, T2, T3, T4, T5, T6], E] {
		r := Zip5(e1, e2, e3, e4, e5)(ctx, env)
		if !r.IsOk() {
			return Err[Tuple6[T1, T2, T3, T4, T5, T6]](r.Error())
		}
		r6 := e6(ctx, env)
		if !r6.IsOk() {
			return Err[Tuple6[T1, T2, T3, T4, T5, T6]](r6.Error())
		}
		t := r.Value()
		return Ok[Tuple6[T1, T2, T3, T4, T5, T6], E](Tuple6[T1, T2, T3, T4, T5, T6]{t.V1, t.V2, t.V3, t.V4, t.V5, r6.Value()})
	}
}

// Zip7 is the seven-effect variant of Zip2.
func Zip7[T1, T2, T3, T4, T5, T6, T7, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
	e5 Effect[T5, E, Env],
	e6 Effect[T6, E, Env],
	e7 Effect[T7, E, Env],
) Effect[Tuple7[T1, T2, T3, T4, T5, T6, T7], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple7[T1, T2, T3, T4, T5, T6, T7], E] {
		r := Zip6(e1, e2, e3, e4, e5, e6)(ctx, env)
		if !r.IsOk() {
			return Err[Tuple7[T1, T2, T3, T4, T5, T6, T7]](r.Error())
		}
		r7 := e7(ctx, env)
		if !r7.IsOk() {
			return Err[Tuple7[T1, T2, T3, T4, T5, T6, T7]](r7.Error())
		}
		t := r.Value()
		return Ok[Tuple7[T1, T2, T3, T4, T5, T6, T7], E](Tuple7[T1, T2, T3, T4, T5, T6, T7]{t.V1, t.V2, t.V3, t.V4, t.V5, t.V6, r7.Value()})
	}
}

// Zip8 is the eight-effect variant of Zip2.
func Zip8[T1, T2, T3, T4, T5, T6, T7, T8, E, Env any](
	e1 Effect[T1, E, Env],
	e2 Effect[T2, E, Env],
	e3 Effect[T3, E, Env],
	e4 Effect[T4, E, Env],
	e5 Effect[T5, E, Env],
	e6 Effect[T6, E, Env],
	e7 Effect[T7, E, Env],
	e8 Effect[T8, E, Env],
) Effect[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8], E, Env] {
	return func(ctx context.Context, env Env) Result[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8], E] {
		r := Zip7(e1, e2, e3, e4, e5, e6, e7)(ctx, env)
		if !r.IsOk() {
			return Err[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]](r.Error())
		}
		r8 := e8(ctx, env)
		if !r8.IsOk() {
			return Err[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]](r8.Error())
		}
		t := r.Value()
		return Ok[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8], E](Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]{t.V1, t.V2, t.V3, t.V4, t.V5, t.V6, t.V7, r8.Value()})
	}
}
