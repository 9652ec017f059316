// Package future provides a settle-once container for asynchronous results.
//
// Substitutes return futures from members whose result is a *Future[T]: a configured value
// settles the future with that value, a configured error settles it as failed, so the call
// itself never fails synchronously.
package future

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotFuture is returned by Settled for types that are not *Future[T].
	ErrNotFuture = errors.New("type is not a future")

	// ErrValueType is returned when a value does not fit the future's type parameter.
	ErrValueType = errors.New("value does not match future type")

	// ErrNilFailure is the error of a future failed with a nil error.
	ErrNilFailure = errors.New("future failed with nil error")
)

// Future is an asynchronous result of type T that settles exactly once, either with a value
// or with an error. The zero Future is pending. A Future is safe for concurrent use.
type Future[T any] struct {
	initOnce   sync.Once
	settleOnce sync.Once
	done       chan struct{}
	value      T
	err        error
}

// New returns a pending future.
func New[T any]() *Future[T] {
	f := &Future[T]{}
	f.init()

	return f
}

// Resolved returns a future settled with v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Resolve(v)

	return f
}

// Failed returns a future settled with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)

	return f
}

// Resolve settles the future with v. It reports false if the future was already settled.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(v, nil)
}

// Fail settles the future with err. It reports false if the future was already settled.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}

	var zero T
	return f.settle(zero, err)
}

// Done returns a channel closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	f.init()
	return f.done
}

// IsSettled reports whether the future has settled.
func (f *Future[T]) IsSettled() bool {
	select {
	case <-f.Done():
		return true
	default:
		return false
	}
}

// Err returns the failure of a settled future. It returns nil while the future is pending or
// when it resolved with a value.
func (f *Future[T]) Err() error {
	if !f.IsSettled() {
		return nil
	}

	return f.err
}

// Await blocks until the future settles or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.Done():
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) String() string {
	switch {
	case f == nil:
		return "future(nil)"
	case !f.IsSettled():
		return "future(pending)"
	case f.err != nil:
		return fmt.Sprintf("future(failed: %v)", f.err)
	default:
		return fmt.Sprintf("future(%v)", f.value)
	}
}

func (f *Future[T]) init() {
	f.initOnce.Do(func() {
		f.done = make(chan struct{})
	})
}

func (f *Future[T]) settle(v T, err error) bool {
	f.init()

	settled := false
	f.settleOnce.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
		settled = true
	})

	return settled
}

// settleAny settles the future from an untyped value. A nil value resolves with the zero T.
func (f *Future[T]) settleAny(value any, err error) error {
	if err != nil {
		f.Fail(err)
		return nil
	}

	if value == nil {
		var zero T
		f.Resolve(zero)
		return nil
	}

	v, ok := value.(T)
	if !ok {
		var zero T
		return fmt.Errorf("%w: %T is not %s", ErrValueType, value, reflect.TypeOf(&zero).Elem())
	}

	f.Resolve(v)

	return nil
}

type settler interface {
	settleAny(value any, err error) error
}

var settlerType = reflect.TypeOf((*settler)(nil)).Elem()

// IsFuture reports whether t is a *Future[T] for some T.
func IsFuture(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Pointer && t.Implements(settlerType)
}

// Settled returns a new *Future[T] of type t, failed with err if it is not nil and resolved
// with value otherwise.
//
// Parameters:
//   - t: the future type, as reported by IsFuture.
//   - value: the resolved value; nil resolves with the zero value of T.
//   - err: the failure.
//
// Returns:
//   - any: the settled *Future[T].
//   - error: ErrNotFuture or ErrValueType.
func Settled(t reflect.Type, value any, err error) (any, error) {
	if !IsFuture(t) {
		return nil, fmt.Errorf("%w: %v", ErrNotFuture, t)
	}

	f, _ := reflect.New(t.Elem()).Interface().(settler)
	if settleErr := f.settleAny(value, err); settleErr != nil {
		return nil, settleErr
	}

	return f, nil
}
