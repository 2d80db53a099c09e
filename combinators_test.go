package effect

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMapTransformsSuccessOnly verifies Map applies on success and is never
// invoked on failure.
func TestMapTransformsSuccessOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	calls := 0
	upper := func(s string) string { calls++; return strings.ToUpper(s) }

	res := Map(Pure[string, string, testEnv]("hello"), upper).Run(ctx, testEnv{})
	require.True(t, res.IsOk())
	require.Equal(t, "HELLO", res.Value())
	require.Equal(t, 1, calls)

	bad := Map(Fail[string, string, testEnv]("down"), upper).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "down", bad.Error())
	require.Equal(t, 1, calls)
}

// TestMapErrTransformsErrorOnly verifies the error-side mapping and that
// successes pass through untouched.
func TestMapErrTransformsErrorOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wrap := func(e string) string { return "wrapped: " + e }

	bad := MapErr(Fail[int, string, testEnv]("db down"), wrap).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "wrapped: db down", bad.Error())

	ok := MapErr(Pure[int, string, testEnv](1), wrap).Run(ctx, testEnv{})
	require.True(t, ok.IsOk())
	require.Equal(t, 1, ok.Value())
}

// TestAndThenChainsAndShortCircuits verifies sequencing on success and that
// the continuation is never invoked once a failure occurred.
func TestAndThenChainsAndShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	contCalls := 0
	double := func(n int) Effect[int, string, testEnv] {
		contCalls++
		return Pure[int, string, testEnv](n * 2)
	}

	res := AndThen(Pure[int, string, testEnv](21), double).Run(ctx, testEnv{})
	require.True(t, res.IsOk())
	require.Equal(t, 42, res.Value())
	require.Equal(t, 1, contCalls)

	bad := AndThen(Fail[int, string, testEnv]("nope"), double).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "nope", bad.Error())
	require.Equal(t, 1, contCalls)
}

// TestOrElseRecoversFailuresOnly verifies recovery runs on failure, may
// change the error type, and never runs on success.
func TestOrElseRecoversFailuresOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recoveries := 0
	fallback := func(e string) Effect[int, int, testEnv] {
		recoveries++
		return Pure[int, int, testEnv](len(e))
	}

	res := OrElse(Fail[int, string, testEnv]("boom"), fallback).Run(ctx, testEnv{})
	require.True(t, res.IsOk())
	require.Equal(t, 4, res.Value())
	require.Equal(t, 1, recoveries)

	ok := OrElse(Pure[int, string, testEnv](9), fallback).Run(ctx, testEnv{})
	require.True(t, ok.IsOk())
	require.Equal(t, 9, ok.Value())
	require.Equal(t, 1, recoveries)
}

// TestTapKeepsValueAndPropagatesTapFailure verifies the two halves of the
// Tap contract: the original value survives a successful tap, and a failing
// tap replaces the success.
func TestTapKeepsValueAndPropagatesTapFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var seen []int
	logIt := func(n int) Effect[Unit, string, testEnv] {
		return FromFunc(func(env testEnv) Result[Unit, string] {
			seen = append(seen, n)
			return Ok[Unit, string](Unit{})
		})
	}

	res := Tap(Pure[int, string, testEnv](7), logIt).Run(ctx, testEnv{})
	require.True(t, res.IsOk())
	require.Equal(t, 7, res.Value())
	require.Equal(t, []int{7}, seen)

	failTap := func(n int) Effect[Unit, string, testEnv] {
		return Fail[Unit, string, testEnv]("audit log unavailable")
	}
	bad := Tap(Pure[int, string, testEnv](7), failTap).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "audit log unavailable", bad.Error())
}

// TestCheckRejectsFailingPredicate verifies the predicate gate and lazy error
// construction.
func TestCheckRejectsFailingPredicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	errCalls := 0
	tooSmall := func() string { errCalls++; return "too small" }
	positive := func(n int) bool { return n > 0 }

	ok := Check(Pure[int, string, testEnv](5), positive, tooSmall).Run(ctx, testEnv{})
	require.True(t, ok.IsOk())
	require.Equal(t, 5, ok.Value())
	require.Zero(t, errCalls)

	bad := Check(Pure[int, string, testEnv](-1), positive, tooSmall).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "too small", bad.Error())
	require.Equal(t, 1, errCalls)
}

// TestWithPairsSequentialResults verifies With pairs both outputs and that
// either failure short-circuits.
func TestWithPairsSequentialResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	res := With(Pure[int, string, testEnv](2), func(n int) Effect[string, string, testEnv] {
		return Pure[string, string, testEnv](strings.Repeat("x", n))
	}).Run(ctx, testEnv{})
	require.True(t, res.IsOk())
	require.Equal(t, Tuple2[int, string]{V1: 2, V2: "xx"}, res.Value())

	bad := With(Pure[int, string, testEnv](2), func(n int) Effect[string, string, testEnv] {
		return Fail[string, string, testEnv]("second failed")
	}).Run(ctx, testEnv{})
	require.False(t, bad.IsOk())
	require.Equal(t, "second failed", bad.Error())
}
