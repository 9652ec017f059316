package core

import (
	"fmt"

	"github.com/anoideaopen/substitute/core/call"
)

// Results are the values a substituted call returns.
type Results struct {
	values []any
}

// Values returns a copy of the result values.
func (r Results) Values() []any { return append([]any(nil), r.values...) }

// Len returns the number of results.
func (r Results) Len() int { return len(r.values) }

// Get returns the i-th result.
func (r Results) Get(i int) any { return r.values[i] }

// Err returns the last result if it is a non-nil error.
func (r Results) Err() error {
	if len(r.values) == 0 {
		return nil
	}

	err, _ := r.values[len(r.values)-1].(error)

	return err
}

// Out returns the i-th result as T. A nil result is the zero T.
func Out[T any](r Results, i int) T {
	var zero T

	v := r.Get(i)
	if v == nil {
		return zero
	}

	out, ok := v.(T)
	if !ok {
		panic(fmt.Errorf("%w: result %d is %T, not %T", call.ErrArgumentType, i, v, zero))
	}

	return out
}
