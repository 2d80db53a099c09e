package effect

import "context"

// Bracket composes the acquire/use/release protocol for resource safety.
//
// If acquire fails, release never runs and the acquire error propagates. If
// acquire succeeds, use always runs and release always runs afterwards,
// whatever the use phase did — release is installed with defer, so it also
// runs when the use phase panics (the panic then continues unwinding).
//
// The returned result is the use phase's result, with one exception: when
// use succeeded but release failed, the release error is returned instead of
// being discarded. A leaked release failure after a successful use is the
// one case the caller could otherwise never observe.
//
// The resource must be a cheap, copyable handle, since both the use and
// release phases receive it.
func Bracket[Res, O, E, Env any](
	acquire Effect[Res, E, Env],
	use func(Res) Effect[O, E, Env],
	release func(Res) Effect[Unit, E, Env],
) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) (out Result[O, E]) {
		ares := acquire(ctx, env)
		if !ares.IsOk() {
			return Err[O](ares.Error())
		}
		res := ares.Value()

		defer func() {
			rres := release(res)(ctx, env)
			if !rres.IsOk() && out.IsOk() {
				out = Err[O](rres.Error())
			}
		}()

		return use(res)(ctx, env)
	}
}

// BracketSimple is Bracket with a release phase that cannot fail: a plain
// function consuming the resource. The returned result is always the use
// phase's result.
func BracketSimple[Res, O, E, Env any](
	acquire Effect[Res, E, Env],
	use func(Res) Effect[O, E, Env],
	release func(Res),
) Effect[O, E, Env] {
	return func(ctx context.Context, env Env) Result[O, E] {
		ares := acquire(ctx, env)
		if !ares.IsOk() {
			return Err[O](ares.Error())
		}
		res := ares.Value()
		defer release(res)

		return use(res)(ctx, env)
	}
}
