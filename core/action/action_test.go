package action

import (
	"errors"
	"reflect"
	"testing"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet(name string) string
}

func newCall(t *testing.T, name string) *call.Call {
	t.Helper()

	m, err := call.NewMember(reflect.TypeOf((*greeter)(nil)).Elem(), "Greet")
	require.NoError(t, err)

	c, err := call.New(m, []any{name}, reflect.Value{})
	require.NoError(t, err)

	return c
}

func TestKinds(t *testing.T) {
	noop := func(*call.Call) error { return nil }

	testCases := []struct {
		name       string
		action     Action
		kind       Kind
		hasResult  bool
		suppresses bool
	}{
		{name: "zero", action: Action{}, kind: KindNone},
		{name: "return", action: Return("x"), kind: KindReturn, hasResult: true},
		{name: "return func", action: ReturnFunc(func(*call.Call) []any { return nil }), kind: KindReturn, hasResult: true},
		{name: "callback", action: Invoke(noop), kind: KindCallback},
		{name: "throw", action: Throw(errors.New("x")), kind: KindThrow, hasResult: true},
		{name: "suppress base", action: SuppressBase(), kind: KindSuppressBase, suppresses: true},
		{name: "return and does", action: Return("x").AndDoes(noop), kind: KindReturn, hasResult: true},
		{name: "return and suppress", action: Return("x").AndSuppressBase(), kind: KindReturn, hasResult: true, suppresses: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.action.Kind())
			assert.Equal(t, tc.hasResult, tc.action.HasResult())
			assert.Equal(t, tc.suppresses, tc.action.SuppressesBase())
		})
	}
}

func TestReturn(t *testing.T) {
	a := Return("Hi")

	values, err, ok := a.Result(newCall(t, "Alice"))
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, []any{"Hi"}, values)

	values[0] = "mutated"
	fixed, ok := a.FixedValues()
	require.True(t, ok)
	require.Equal(t, []any{"Hi"}, fixed)
}

func TestReturnFuncIsLazy(t *testing.T) {
	calls := 0
	a := ReturnFunc(func(c *call.Call) []any {
		calls++
		return []any{"Hi " + call.Arg[string](c, 0)}
	})
	require.Equal(t, 0, calls)

	values, _, _ := a.Result(newCall(t, "Bob"))
	require.Equal(t, []any{"Hi Bob"}, values)
	require.Equal(t, 1, calls)

	_, ok := a.FixedValues()
	require.False(t, ok)
}

func TestReturnSequence(t *testing.T) {
	a := ReturnSequence("one", "two")
	c := newCall(t, "x")

	var got []any
	for i := 0; i < 4; i++ {
		values, _, _ := a.Result(c)
		got = append(got, values[0])
	}

	require.Equal(t, []any{"one", "two", "two", "two"}, got)
}

func TestThrowFixedInstanceKeepsIdentity(t *testing.T) {
	errFixed := errors.New("fixed")
	a := Throw(errFixed)

	_, err1, _ := a.Result(newCall(t, "a"))
	_, err2, _ := a.Result(newCall(t, "b"))
	require.Same(t, errFixed, err1)
	require.Same(t, err1, err2)
}

type callError struct{ name string }

func (e *callError) Error() string { return "failed for " + e.name }

func TestThrowFuncBuildsPerCall(t *testing.T) {
	built := 0
	a := ThrowFunc(func(c *call.Call) error {
		built++
		return &callError{name: call.Arg[string](c, 0)}
	})

	_, err1, _ := a.Result(newCall(t, "a"))
	_, err2, _ := a.Result(newCall(t, "b"))
	require.Equal(t, 2, built)
	require.NotSame(t, err1, err2)
	require.EqualError(t, err2, "failed for b")

	a = ThrowNew(func() error { return &callError{name: "new"} })
	_, err1, _ = a.Result(newCall(t, "a"))
	_, err2, _ = a.Result(newCall(t, "a"))
	require.NotSame(t, err1, err2)
}

func TestRunCallbacksStopsAtFirstError(t *testing.T) {
	errStop := errors.New("stop")
	var order []string

	a := Invoke(func(*call.Call) error {
		order = append(order, "first")
		return errStop
	}).AndDoes(func(*call.Call) error {
		order = append(order, "second")
		return nil
	})

	require.ErrorIs(t, a.RunCallbacks(newCall(t, "x")), errStop)
	require.Equal(t, []string{"first"}, order)
}

func TestAndDoesDoesNotShareCallbacks(t *testing.T) {
	noop := func(*call.Call) error { return nil }
	base := Invoke(noop)

	a := base.AndDoes(noop)
	b := base.AndDoes(noop)
	require.Len(t, a.callbacks, 2)
	require.Len(t, b.callbacks, 2)
	require.Len(t, base.callbacks, 1)
}

func TestValidate(t *testing.T) {
	noop := func(*call.Call) error { return nil }

	testCases := []struct {
		name   string
		action Action
		err    error
	}{
		{name: "return", action: Return("x")},
		{name: "return nothing", action: Return()},
		{name: "callback", action: Invoke(noop)},
		{name: "suppress base", action: SuppressBase()},
		{name: "zero", action: Action{}, err: ErrEmptyAction},
		{name: "nil value func", action: ReturnFunc(nil), err: ErrNilFunc},
		{name: "nil callback", action: Invoke(nil), err: ErrNilFunc},
		{name: "nil error", action: Throw(nil), err: ErrNilError},
		{name: "nil error func", action: ThrowFunc(nil), err: ErrNilFunc},
		{name: "nil error factory", action: ThrowNew(nil), err: ErrNilFunc},
		{name: "nil extra callback", action: Return("x").AndDoes(nil), err: ErrNilFunc},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.action.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}
