package core

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/substitute/core/router"
	"github.com/anoideaopen/substitute/core/session"
)

// ErrNotStub is reported by When for values that neither are a *Substitute nor embed one.
var ErrNotStub = errors.New("value does not embed *core.Substitute")

var substituteType = reflect.TypeOf((*Substitute)(nil))

// Routable is implemented by *Substitute and so by every stub embedding it.
type Routable interface {
	CallRouter() *router.Router
}

// When starts configuring the call fn makes on sub. The route applies to calls with the same
// arguments, or to the arguments set with Session.WithArgs.
//
// fn receives a copy of sub whose calls are captured for configuration, so calls made on sub
// by other goroutines meanwhile are routed and recorded as usual.
//
//	err := core.When(greeter, func(g *mock.Greeter) { g.Greet("Alice") }).Return("Hi Alice")
func When[T Routable](sub T, fn func(T)) *session.Session {
	return session.New(sub.CallRouter(), recordingTrigger(sub, fn), session.SpecificArguments)
}

// WhenForAnyArgs starts configuring the member fn calls on sub, for any arguments.
func WhenForAnyArgs[T Routable](sub T, fn func(T)) *session.Session {
	return session.New(sub.CallRouter(), recordingTrigger(sub, fn), session.AnyArguments)
}

func recordingTrigger[T Routable](sub T, fn func(T)) session.Trigger {
	return func(rec *router.Recording) error {
		shadow, err := recordingCopy(sub, rec)
		if err != nil {
			return err
		}
		fn(shadow)

		return nil
	}
}

// recordingCopy returns a copy of the stub sub whose embedded substitute captures calls in
// rec.
func recordingCopy[T Routable](sub T, rec *router.Recording) (T, error) {
	var zero T

	if s, ok := any(sub).(*Substitute); ok {
		if s == nil {
			return zero, fmt.Errorf("%w: nil %T", ErrNotStub, sub)
		}
		return any(s.recording(rec)).(T), nil
	}

	v := reflect.ValueOf(sub)
	var cp reflect.Value
	switch {
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		cp = reflect.New(v.Elem().Type())
		cp.Elem().Set(v.Elem())
	case v.Kind() == reflect.Struct:
		cp = reflect.New(v.Type())
		cp.Elem().Set(v)
	default:
		return zero, fmt.Errorf("%w: %T", ErrNotStub, sub)
	}

	field, ok := substituteField(cp.Elem())
	if !ok || field.IsNil() {
		return zero, fmt.Errorf("%w: %T", ErrNotStub, sub)
	}
	live, _ := field.Interface().(*Substitute)
	field.Set(reflect.ValueOf(live.recording(rec)))

	if v.Kind() == reflect.Struct {
		shadow, _ := cp.Elem().Interface().(T)
		return shadow, nil
	}
	shadow, _ := cp.Interface().(T)

	return shadow, nil
}

func substituteField(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.IsExported() && f.Type == substituteType {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}
