package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/stretchr/testify/require"
)

// ErrDivisionByZero is returned by BasicCalculator.Divide.
var ErrDivisionByZero = errors.New("division by zero")

// Calculator is a sample interface with a real implementation, for partial substitutes.
type Calculator interface {
	Add(a, b int) int
	Divide(a, b int) (int, error)
	Mode() string
}

// BasicCalculator implements Calculator and counts the calls that reached it.
type BasicCalculator struct {
	Calls int
}

func (c *BasicCalculator) Add(a, b int) int {
	c.Calls++
	return a + b
}

func (c *BasicCalculator) Divide(a, b int) (int, error) {
	c.Calls++
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func (c *BasicCalculator) Mode() string {
	c.Calls++
	return "decimal"
}

var _ Calculator = (*MockCalculator)(nil)

// MockCalculator is a substitute for Calculator.
type MockCalculator struct {
	*core.Substitute
}

// NewMockCalculator returns a Calculator substitute.
func NewMockCalculator(t testing.TB, opts ...core.Option) *MockCalculator {
	s, err := core.New[Calculator](opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &MockCalculator{Substitute: s}
}

// NewPartialCalculator returns a Calculator substitute that forwards unconfigured calls to base.
func NewPartialCalculator(t testing.TB, base Calculator, opts ...core.Option) *MockCalculator {
	return NewMockCalculator(t, append([]core.Option{core.WithBase(base)}, opts...)...)
}

func (m *MockCalculator) Add(a, b int) int {
	return core.Out[int](m.Invoke("Add", a, b), 0)
}

func (m *MockCalculator) Divide(a, b int) (int, error) {
	r := m.Invoke("Divide", a, b)
	return core.Out[int](r, 0), r.Err()
}

func (m *MockCalculator) Mode() string {
	return core.Out[string](m.Invoke("Mode"), 0)
}
