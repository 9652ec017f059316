package reflectx

import (
	"reflect"
	"sort"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// TypeMethods returns the sorted names of the methods of t. For interface types these are
// the methods of the interface's method set.
func TypeMethods(t reflect.Type) []string {
	methodNames := make([]string, 0)
	if t == nil {
		return methodNames
	}

	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		methodNames = append(methodNames, method.Name)
	}

	sort.Strings(methodNames)

	return methodNames
}

// FuncReturnsError checks if the last result of the function type fn is of type error.
func FuncReturnsError(fn reflect.Type) bool {
	numOut := fn.NumOut()
	if numOut == 0 {
		return false
	}

	return fn.Out(numOut-1) == errorType
}

// Results returns the result types of the function type fn.
func Results(fn reflect.Type) []reflect.Type {
	out := make([]reflect.Type, fn.NumOut())
	for i := range out {
		out[i] = fn.Out(i)
	}

	return out
}
