package mock

import (
	"context"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/stretchr/testify/require"
)

// Greeter is a sample interface with plain, variadic and result-less members.
type Greeter interface {
	Greet(name string) string
	GreetAll(greeting string, names ...string) string
	Reset()
}

var _ Greeter = (*MockGreeter)(nil)

// MockGreeter is a substitute for Greeter.
type MockGreeter struct {
	*core.Substitute
}

// NewMockGreeter returns a Greeter substitute.
func NewMockGreeter(t testing.TB, opts ...core.Option) *MockGreeter {
	s, err := core.New[Greeter](opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &MockGreeter{Substitute: s}
}

func (m *MockGreeter) Greet(name string) string {
	return core.Out[string](m.Invoke("Greet", name), 0)
}

func (m *MockGreeter) GreetAll(greeting string, names ...string) string {
	return core.Out[string](m.Invoke("GreetAll", greeting, names), 0)
}

func (m *MockGreeter) Reset() {
	m.Invoke("Reset")
}
