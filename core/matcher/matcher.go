// Package matcher decides whether a configured route applies to the arguments of a call.
//
// A Matcher checks one argument. A Policy combines them for a whole call: either any
// arguments at all, or one matcher per argument position.
package matcher

import (
	"bytes"
	"reflect"

	"github.com/anoideaopen/substitute/core/call"
	"google.golang.org/protobuf/proto"
)

// Matcher checks a single argument value.
type Matcher interface {
	// Match reports whether the argument satisfies the matcher.
	Match(arg any) bool
	// String describes the matcher for messages.
	String() string
}

type equalMatcher struct {
	expected any
}

// Equal matches arguments equal to expected. Protobuf messages are compared with proto.Equal,
// byte slices with bytes.Equal and everything else with reflect.DeepEqual. An untyped nil
// matches every nil argument; a typed nil only matches nils of its type.
func Equal(expected any) Matcher {
	return &equalMatcher{expected: expected}
}

func (m *equalMatcher) Match(arg any) bool {
	return equal(m.expected, arg)
}

func (m *equalMatcher) String() string {
	return call.FormatArg(m.expected)
}

func equal(expected, actual any) bool {
	if expectedMsg, ok := expected.(proto.Message); ok {
		actualMsg, ok := actual.(proto.Message)
		if !ok {
			return false
		}
		return proto.Equal(expectedMsg, actualMsg)
	}

	if expectedBytes, ok := expected.([]byte); ok {
		actualBytes, ok := actual.([]byte)
		return ok && bytes.Equal(expectedBytes, actualBytes)
	}

	if expected == nil || actual == nil {
		return isNil(expected) && isNil(actual)
	}
	if isNil(expected) && isNil(actual) {
		return reflect.TypeOf(expected) == reflect.TypeOf(actual)
	}

	return reflect.DeepEqual(expected, actual)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

type anyMatcher struct {
	typ reflect.Type
}

// Any matches every argument that holds a T. A nil argument matches when T's zero value is nil.
func Any[T any]() Matcher {
	return &anyMatcher{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

func (m *anyMatcher) Match(arg any) bool {
	if arg == nil {
		switch m.typ.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return true
		default:
			return false
		}
	}

	t := reflect.TypeOf(arg)
	if m.typ.Kind() == reflect.Interface {
		return t.Implements(m.typ)
	}

	return t == m.typ
}

func (m *anyMatcher) String() string {
	return "any " + m.typ.String()
}

type anyValueMatcher struct{}

// AnyValue matches every argument.
func AnyValue() Matcher {
	return anyValueMatcher{}
}

func (anyValueMatcher) Match(any) bool { return true }

func (anyValueMatcher) String() string { return "any" }

type funcMatcher struct {
	desc string
	fn   func(arg any) bool
}

// Func matches arguments for which fn returns true. A panic in fn counts as no match.
func Func(desc string, fn func(arg any) bool) Matcher {
	return &funcMatcher{desc: desc, fn: fn}
}

func (m *funcMatcher) Match(arg any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return m.fn(arg)
}

func (m *funcMatcher) String() string {
	return m.desc
}

// Is matches arguments that hold a T satisfying pred. A nil argument is passed as the zero T
// when T's zero value is nil.
func Is[T any](pred func(T) bool) Matcher {
	var zero T
	typeMatcher := Any[T]()

	return Func("is "+reflect.TypeOf((*T)(nil)).Elem().String(), func(arg any) bool {
		if !typeMatcher.Match(arg) {
			return false
		}
		if arg == nil {
			return pred(zero)
		}
		return pred(arg.(T)) //nolint:forcetypeassert
	})
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return Func("not "+m.String(), func(arg any) bool {
		return !m.Match(arg)
	})
}
