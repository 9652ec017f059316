package call

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/anoideaopen/substitute/core/reflectx"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ErrArgumentType is raised by Arg when an argument does not hold the requested type.
var ErrArgumentType = errors.New("argument has unexpected type")

// Call is one intercepted invocation: the member, the arguments it was invoked with and, for
// partial substitutes, the bound method of the real implementation.
//
// A Call is immutable once created; Args returns a copy.
type Call struct {
	member Member
	args   []any
	base   reflect.Value
}

// New creates a Call. The arguments are validated against the member signature and copied.
// base may be the zero reflect.Value when there is no real implementation.
func New(member Member, args []any, base reflect.Value) (*Call, error) {
	if member.IsZero() {
		return nil, ErrInvalidOwner
	}

	if err := reflectx.ValidateArguments(member.Type(), args...); err != nil {
		return nil, fmt.Errorf("%w: call %s", err, member.ID())
	}

	return &Call{
		member: member,
		args:   append([]any(nil), args...),
		base:   base,
	}, nil
}

// Member returns the invoked member.
func (c *Call) Member() Member { return c.member }

// Args returns a copy of the arguments.
func (c *Call) Args() []any { return append([]any(nil), c.args...) }

// NumArgs returns the number of arguments.
func (c *Call) NumArgs() int { return len(c.args) }

// Arg returns the i-th argument.
func (c *Call) Arg(i int) any { return c.args[i] }

// HasBase reports whether the call can be forwarded to a real implementation.
func (c *Call) HasBase() bool { return c.base.IsValid() }

// Forward invokes the real implementation with the call's arguments.
func (c *Call) Forward() ([]any, error) {
	if !c.HasBase() {
		return nil, fmt.Errorf("%w: no base implementation for %s", reflectx.ErrMethodNotFound, c.member.ID())
	}

	return reflectx.CallValue(c.base, c.args...)
}

// String renders the call as Owner.Method(arg, ...).
func (c *Call) String() string {
	var sb strings.Builder

	if c.member.owner != nil {
		sb.WriteString(c.member.owner.Name())
		sb.WriteByte('.')
	}
	sb.WriteString(c.member.name)
	sb.WriteByte('(')
	for i, arg := range c.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(FormatArg(arg))
	}
	sb.WriteByte(')')

	return sb.String()
}

// FormatArg renders a single argument for messages: strings quoted, nil pointers as their
// type, protobuf messages as compact protojson, everything else with %v.
func FormatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	}

	if rv := reflect.ValueOf(arg); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return fmt.Sprintf("%T(nil)", arg)
	}

	switch v := arg.(type) {
	case proto.Message:
		raw, err := protojson.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Arg returns the i-th argument of c as T. A nil argument yields the zero T. An argument of
// another type panics with ErrArgumentType: it is a mistake in the test's callback.
func Arg[T any](c *Call, i int) T {
	var zero T

	arg := c.Arg(i)
	if arg == nil {
		return zero
	}

	v, ok := arg.(T)
	if !ok {
		panic(fmt.Errorf("%w: argument %d of %s is %T, not %T", ErrArgumentType, i, c.member.ID(), arg, zero))
	}

	return v
}

// ArgOfType returns the first argument that holds a T.
func ArgOfType[T any](c *Call) (T, bool) {
	for _, arg := range c.args {
		if v, ok := arg.(T); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}
