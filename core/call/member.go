package call

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/substitute/core/future"
	"github.com/anoideaopen/substitute/core/reflectx"
)

var (
	// ErrInvalidOwner is returned when a member is requested for a nil type.
	ErrInvalidOwner = errors.New("invalid member owner")

	// ErrResultMismatch is returned when values cannot be used as the results of a member.
	ErrResultMismatch = errors.New("results do not match member signature")
)

// Member identifies one method of a substituted type.
//
// Two members are the same member when they belong to the same owner type and have the same
// name; the function type is carried along to produce and check argument and result values.
type Member struct {
	owner reflect.Type
	name  string
	fn    reflect.Type
}

// NewMember returns the member 'name' of type owner.
//
// For interface types the method type is taken as is. For concrete types the receiver is
// stripped, so the member always describes the arguments an intercepted call carries.
func NewMember(owner reflect.Type, name string) (Member, error) {
	if owner == nil {
		return Member{}, ErrInvalidOwner
	}

	method, ok := owner.MethodByName(name)
	if !ok {
		return Member{}, fmt.Errorf("%w: %s.%s", reflectx.ErrMethodNotFound, owner.String(), name)
	}

	fn := method.Type
	if owner.Kind() != reflect.Interface {
		in := make([]reflect.Type, 0, fn.NumIn()-1)
		for i := 1; i < fn.NumIn(); i++ {
			in = append(in, fn.In(i))
		}
		fn = reflect.FuncOf(in, reflectx.Results(fn), fn.IsVariadic())
	}

	return Member{owner: owner, name: name, fn: fn}, nil
}

// Owner returns the substituted type the member belongs to.
func (m Member) Owner() reflect.Type { return m.owner }

// Name returns the method name.
func (m Member) Name() string { return m.name }

// Type returns the method's function type without receiver.
func (m Member) Type() reflect.Type { return m.fn }

// IsZero reports whether m is the zero Member.
func (m Member) IsZero() bool { return m.owner == nil }

// Equal reports whether m and o identify the same member.
func (m Member) Equal(o Member) bool {
	return m.owner == o.owner && m.name == o.name
}

// ID returns a stable textual identity, e.g. "mock.Greeter.Greet".
func (m Member) ID() string {
	if m.owner == nil {
		return m.name
	}

	return m.owner.String() + "." + m.name
}

func (m Member) String() string {
	return m.ID()
}

// NumArgs returns the number of arguments of the member. A variadic tail counts as one.
func (m Member) NumArgs() int {
	if m.fn == nil {
		return 0
	}

	return m.fn.NumIn()
}

// NumResults returns the number of results of the member.
func (m Member) NumResults() int {
	if m.fn == nil {
		return 0
	}

	return m.fn.NumOut()
}

// Results returns the result types of the member.
func (m Member) Results() []reflect.Type {
	if m.fn == nil {
		return nil
	}

	return reflectx.Results(m.fn)
}

// ReturnsError reports whether the last result of the member is an error.
func (m Member) ReturnsError() bool {
	return m.fn != nil && reflectx.FuncReturnsError(m.fn)
}

// ZeroResults returns the zero value of every result.
func (m Member) ZeroResults() []any {
	return reflectx.ZeroValues(m.Results())
}

// ErrorResults returns zero results with err in the trailing error position.
// It reports false if the member has no trailing error result.
func (m Member) ErrorResults(err error) ([]any, bool) {
	if !m.ReturnsError() {
		return nil, false
	}

	values := m.ZeroResults()
	values[len(values)-1] = err

	return values, true
}

// NormalizeResults converts values to the member's result types. Missing trailing values are
// filled with zero values; surplus or non-assignable values are an error. A plain value given
// for a *future.Future[T] result becomes a future resolved with it.
func (m Member) NormalizeResults(values []any) ([]any, error) {
	results := m.Results()
	if len(values) > len(results) {
		return nil, fmt.Errorf(
			"%w: %d values for %d results of %s",
			ErrResultMismatch,
			len(values),
			len(results),
			m.ID(),
		)
	}

	out := reflectx.ZeroValues(results)
	for i, v := range values {
		if future.IsFuture(results[i]) && v != nil && !reflectx.Assignable(v, results[i]) {
			settled, err := future.Settled(results[i], v, nil)
			if err != nil {
				return nil, fmt.Errorf("%w: result %d of %s: %w", ErrResultMismatch, i, m.ID(), err)
			}
			out[i] = settled
			continue
		}

		converted, err := reflectx.Convert(v, results[i])
		if err != nil {
			return nil, fmt.Errorf("%w: result %d of %s: %w", ErrResultMismatch, i, m.ID(), err)
		}
		out[i] = converted
	}

	return out, nil
}
