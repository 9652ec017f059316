package history

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/core/routing"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet(name string) string
	Wave()
}

func newCall(t *testing.T, method string, args ...any) *call.Call {
	t.Helper()

	m, err := call.NewMember(reflect.TypeOf((*greeter)(nil)).Elem(), method)
	require.NoError(t, err)

	c, err := call.New(m, args, reflect.Value{})
	require.NoError(t, err)

	return c
}

func TestRecord(t *testing.T) {
	log := NewLog()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	log.now = func() time.Time { return at }

	alice := newCall(t, "Greet", "Alice")
	wave := newCall(t, "Wave")

	log.Record(alice, routing.Return([]any{"Hi"}))
	log.Record(wave, routing.Forward())

	entries := log.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, uint64(1), entries[0].Seq)
	require.Same(t, alice, entries[0].Call)
	require.Equal(t, routing.OutcomeReturn, entries[0].Outcome.Kind)
	require.Equal(t, at, entries[0].At)
	require.Equal(t, uint64(2), entries[1].Seq)
	require.Equal(t, routing.OutcomeForward, entries[1].Outcome.Kind)

	require.Equal(t, []*call.Call{alice, wave}, log.Calls())
	require.Equal(t, 2, log.Len())
}

func TestCount(t *testing.T) {
	log := NewLog()

	for _, name := range []string{"Alice", "Bob", "Alice"} {
		c := newCall(t, "Greet", name)
		log.Record(c, routing.Return(nil))
	}
	log.Record(newCall(t, "Wave"), routing.Return(nil))

	greet := newCall(t, "Greet", "x").Member()

	testCases := []struct {
		name   string
		policy matcher.Policy
		want   int
	}{
		{name: "any", policy: matcher.AnyArguments(), want: 3},
		{name: "alice", policy: matcher.ExactArguments([]any{"Alice"}), want: 2},
		{name: "carol", policy: matcher.ExactArguments([]any{"Carol"}), want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, log.Count(greet, tc.policy))
		})
	}
}

func TestClear(t *testing.T) {
	log := NewLog()
	log.Record(newCall(t, "Wave"), routing.Return(nil))

	log.Clear()
	require.Zero(t, log.Len())
	require.Empty(t, log.Entries())

	log.Record(newCall(t, "Wave"), routing.Return(nil))
	require.Equal(t, uint64(2), log.Entries()[0].Seq)
}

func TestConcurrentRecord(t *testing.T) {
	log := NewLog()
	c := newCall(t, "Wave")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Record(c, routing.Return(nil))
		}()
	}
	wg.Wait()

	require.Equal(t, 100, log.Len())
}
