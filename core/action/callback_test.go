package action

import (
	"errors"
	"testing"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/stretchr/testify/require"
)

func TestCallbackSequence(t *testing.T) {
	var log []string
	record := func(s string) CallbackFunc {
		return func(*call.Call) error {
			log = append(log, s)
			return nil
		}
	}

	cb := First(record("first")).
		Then(record("second")).
		ThenKeepDoing(record("rest")).
		AndAlways(record("always"))

	c := newCall(t, "x")
	for i := 0; i < 4; i++ {
		require.NoError(t, cb.Call(c))
	}

	require.Equal(t, []string{
		"first", "always",
		"second", "always",
		"rest", "always",
		"rest", "always",
	}, log)
}

func TestCallbackThenThrow(t *testing.T) {
	errSecond := errors.New("second call fails")
	calls := 0

	cb := First(func(*call.Call) error {
		calls++
		return nil
	}).ThenThrow(errSecond)

	c := newCall(t, "x")
	require.NoError(t, cb.Call(c))
	require.ErrorIs(t, cb.Call(c), errSecond)
	require.NoError(t, cb.Call(c))
	require.Equal(t, 1, calls)
}

func TestAlways(t *testing.T) {
	calls := 0
	cb := Always(func(*call.Call) error {
		calls++
		return nil
	})

	c := newCall(t, "x")
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(c))
	}
	require.Equal(t, 3, calls)
}
