// Package action describes what a route does when it resolves a call.
//
// An Action has independently settable parts: callbacks that run first, an optional result
// (values to return or an error to throw) and a flag that keeps the real implementation of a
// partial substitute from running. The constructors set one part; AndDoes and AndSuppressBase
// add the others.
package action

import (
	"errors"
	"sync"

	"github.com/anoideaopen/substitute/core/call"
)

var (
	// ErrNilFunc is reported by Validate for actions built from a nil function.
	ErrNilFunc = errors.New("action function is nil")

	// ErrNilError is reported by Validate for Throw(nil).
	ErrNilError = errors.New("thrown error is nil")

	// ErrEmptyAction is reported by Validate for an action that does nothing.
	ErrEmptyAction = errors.New("action does nothing")
)

// Kind is the primary kind of an Action.
type Kind int

// Action kinds.
const (
	KindNone Kind = iota
	KindReturn
	KindCallback
	KindThrow
	KindSuppressBase
)

func (k Kind) String() string {
	switch k {
	case KindReturn:
		return "return"
	case KindCallback:
		return "callback"
	case KindThrow:
		return "throw"
	case KindSuppressBase:
		return "suppress-base"
	case KindNone:
		fallthrough
	default:
		return "none"
	}
}

// ValueFunc produces the result values for a call.
type ValueFunc func(c *call.Call) []any

// ErrorFunc produces the error to throw for a call.
type ErrorFunc func(c *call.Call) error

// CallbackFunc is a side effect run for a call. A non-nil error is thrown to the caller.
type CallbackFunc func(c *call.Call) error

// Action is the behaviour bound to a route. The zero Action does nothing.
type Action struct {
	values    ValueFunc
	fixed     []any
	hasFixed  bool
	throw     ErrorFunc
	callbacks []CallbackFunc
	noBase    bool
	invalid   error
}

// Return returns the given values. Missing trailing results are zero values.
func Return(values ...any) Action {
	fixed := append([]any(nil), values...)
	return Action{
		fixed:    fixed,
		hasFixed: true,
		values: func(*call.Call) []any {
			return append([]any(nil), fixed...)
		},
	}
}

// ReturnFunc returns the values computed by fn for each call.
func ReturnFunc(fn ValueFunc) Action {
	if fn == nil {
		return Action{invalid: ErrNilFunc}
	}
	return Action{values: fn}
}

// ReturnSequence returns values[0] as the first result of the first matching call, values[1]
// for the second one and so on; the last value repeats once the sequence is exhausted.
func ReturnSequence(values ...any) Action {
	var (
		mu   sync.Mutex
		next int
	)
	seq := append([]any(nil), values...)

	return Action{
		values: func(*call.Call) []any {
			if len(seq) == 0 {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			v := seq[next]
			if next < len(seq)-1 {
				next++
			}

			return []any{v}
		},
	}
}

// Invoke runs cb for each matching call.
func Invoke(cb CallbackFunc) Action {
	if cb == nil {
		return Action{invalid: ErrNilFunc}
	}
	return Action{callbacks: []CallbackFunc{cb}}
}

// Throw throws err for each matching call. The same error value is thrown every time.
func Throw(err error) Action {
	if err == nil {
		return Action{invalid: ErrNilError}
	}
	return Action{throw: func(*call.Call) error { return err }}
}

// ThrowFunc throws the error built by fn, once per matching call.
func ThrowFunc(fn ErrorFunc) Action {
	if fn == nil {
		return Action{invalid: ErrNilFunc}
	}
	return Action{throw: fn}
}

// ThrowNew throws a new error built by newErr for each matching call.
func ThrowNew(newErr func() error) Action {
	if newErr == nil {
		return Action{invalid: ErrNilFunc}
	}
	return Action{throw: func(*call.Call) error { return newErr() }}
}

// SuppressBase keeps the real implementation of a partial substitute from running for
// matching calls.
func SuppressBase() Action {
	return Action{noBase: true}
}

// AndDoes returns a copy of a that also runs cb before its result is produced.
func (a Action) AndDoes(cb CallbackFunc) Action {
	if cb == nil {
		a.invalid = ErrNilFunc
		return a
	}
	a.callbacks = append(append([]CallbackFunc(nil), a.callbacks...), cb)
	return a
}

// AndSuppressBase returns a copy of a that also suppresses the base implementation.
func (a Action) AndSuppressBase() Action {
	a.noBase = true
	return a
}

// Kind returns the primary kind: throw and return win over callbacks, callbacks over
// suppression.
func (a Action) Kind() Kind {
	switch {
	case a.throw != nil:
		return KindThrow
	case a.values != nil:
		return KindReturn
	case len(a.callbacks) > 0:
		return KindCallback
	case a.noBase:
		return KindSuppressBase
	default:
		return KindNone
	}
}

// IsZero reports whether the action does nothing.
func (a Action) IsZero() bool {
	return a.Kind() == KindNone
}

// Validate reports an action built from a nil function or error, and an action that does
// nothing.
func (a Action) Validate() error {
	if a.invalid != nil {
		return a.invalid
	}
	if a.IsZero() {
		return ErrEmptyAction
	}

	return nil
}

// HasResult reports whether the action returns values or throws.
func (a Action) HasResult() bool {
	return a.throw != nil || a.values != nil
}

// SuppressesBase reports whether the action suppresses the base implementation.
func (a Action) SuppressesBase() bool {
	return a.noBase
}

// FixedValues returns the values passed to Return, if the action was built by it.
func (a Action) FixedValues() ([]any, bool) {
	if !a.hasFixed || a.throw != nil {
		return nil, false
	}

	return append([]any(nil), a.fixed...), true
}

// RunCallbacks runs the callbacks in order and returns the first error.
func (a Action) RunCallbacks(c *call.Call) error {
	for _, cb := range a.callbacks {
		if err := cb(c); err != nil {
			return err
		}
	}

	return nil
}

// Result evaluates the result part. ok is false when the action has no result.
// A throwing action returns the error and nil values.
func (a Action) Result(c *call.Call) (values []any, err error, ok bool) { //nolint:revive
	switch {
	case a.throw != nil:
		return nil, a.throw(c), true
	case a.values != nil:
		return a.values(c), nil, true
	default:
		return nil, nil, false
	}
}
