package reflectx

import (
	"errors"
	"fmt"
	"reflect"
)

// Error types.
var (
	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
	ErrMethodNotFound         = errors.New("method not found")
)

// CallValue invokes the bound method methodVal with already typed arguments and returns its
// outputs. Each argument is converted to the corresponding parameter type (see valueOf); a nil
// argument becomes the zero value of the parameter. For variadic methods the last argument must
// hold the whole variadic slice, which is how intercepted calls carry it.
func CallValue(methodVal reflect.Value, args ...any) ([]any, error) {
	if !methodVal.IsValid() {
		return nil, ErrMethodNotFound
	}

	methodType := methodVal.Type()
	if methodType.NumIn() != len(args) {
		return nil, fmt.Errorf(
			"%w: found %d but expected %d",
			ErrIncorrectArgumentCount,
			len(args),
			methodType.NumIn(),
		)
	}

	var (
		in  = make([]reflect.Value, len(args))
		err error
	)
	for i, arg := range args {
		if in[i], err = valueOf(arg, methodType.In(i)); err != nil {
			return nil, fmt.Errorf("%w: argument %d", err, i)
		}
	}

	var out []reflect.Value
	if methodType.IsVariadic() {
		out = methodVal.CallSlice(in)
	} else {
		out = methodVal.Call(in)
	}

	output := make([]any, len(out))
	for i, res := range out {
		output[i] = res.Interface()
	}

	return output, nil
}
