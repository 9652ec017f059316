package reflectx

import (
	"fmt"
	"reflect"
)

// ValidateArguments checks that args can be passed to a function of type fn: one argument per
// parameter, a variadic tail given as one slice, each argument assignable or convertible to its
// parameter (see valueOf). Argument values are not inspected beyond their types.
func ValidateArguments(fn reflect.Type, args ...any) error {
	if fn.NumIn() != len(args) {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrIncorrectArgumentCount, fn.String(), fn.NumIn(), len(args))
	}

	for i, arg := range args {
		if _, err := valueOf(arg, fn.In(i)); err != nil {
			return fmt.Errorf("%w: argument %d of %s", err, i, fn.String())
		}
	}

	return nil
}
