package effect

// Result is the settled outcome of an Effect: either a success carrying a
// value of type O, or a failure carrying a typed error of type E.
//
// Unlike the usual (T, error) pair, the error side is a plain typed value.
// It does not need to implement the error interface, which lets callers keep
// rich domain error types (structs, enums, slices of violations) without
// stringly-typed wrapping.
type Result[O, E any] struct {
	value O
	err   E
	ok    bool
}

// Ok returns a successful Result carrying v.
func Ok[O, E any](v O) Result[O, E] {
	return Result[O, E]{value: v, ok: true}
}

// Err returns a failed Result carrying e.
func Err[O, E any](e E) Result[O, E] {
	return Result[O, E]{err: e}
}

// IsOk reports whether the Result is a success.
func (r Result[O, E]) IsOk() bool {
	return r.ok
}

// Value returns the success value. For a failed Result it returns the zero
// value of O.
func (r Result[O, E]) Value() O {
	return r.value
}

// Error returns the typed error. For a successful Result it returns the zero
// value of E.
func (r Result[O, E]) Error() E {
	return r.err
}

// Get unpacks the Result into its success value, error, and success flag.
func (r Result[O, E]) Get() (O, E, bool) {
	return r.value, r.err, r.ok
}
