package reflectx

import (
	"fmt"
	"reflect"
)

// valueOf converts a captured argument to a reflect.Value of the parameter type t.
//
// A nil argument is accepted for every type that has a nil zero value (pointers, interfaces,
// maps, slices, channels and functions) and becomes reflect.Zero(t). Any other argument must be
// assignable, or at least convertible without loss of kind, to t.
func valueOf(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if Nillable(t) {
			return reflect.Zero(t), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: nil for type '%s'", ErrInvalidArgumentValue, t.String())
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(t):
		if v.Type() != t {
			out := reflect.New(t).Elem()
			out.Set(v)
			return out, nil
		}
		return v, nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf(
		"%w: '%v' of type '%s' for type '%s'",
		ErrInvalidArgumentValue,
		arg,
		v.Type().String(),
		t.String(),
	)
}

// Nillable reports whether the zero value of t is nil.
func Nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// Assignable reports whether v can be used where a value of type t is expected.
func Assignable(v any, t reflect.Type) bool {
	_, err := valueOf(v, t)
	return err == nil
}

// Convert returns v converted to type t as an interface value. It is the conversion Call
// applies to each argument, exposed for result normalization.
func Convert(v any, t reflect.Type) (any, error) {
	rv, err := valueOf(v, t)
	if err != nil {
		return nil, err
	}

	return rv.Interface(), nil
}

// ZeroValues returns the zero values of the given types as interface values.
func ZeroValues(types []reflect.Type) []any {
	values := make([]any, len(types))
	for i, t := range types {
		values[i] = reflect.Zero(t).Interface()
	}

	return values
}
