package matcher

import (
	"strings"
)

// Policy decides whether a route applies to the arguments of a call.
//
// The zero Policy is SpecificArguments with no matchers, which accepts only calls without
// arguments.
type Policy struct {
	anyArgs  bool
	matchers []Matcher
}

// AnyArguments returns a policy that accepts every argument list.
func AnyArguments() Policy {
	return Policy{anyArgs: true}
}

// SpecificArguments returns a policy that accepts an argument list when every positional
// matcher accepts the corresponding argument.
func SpecificArguments(matchers ...Matcher) Policy {
	return Policy{matchers: append([]Matcher(nil), matchers...)}
}

// ExactArguments returns a SpecificArguments policy built from captured argument values.
// Values that already are a Matcher are used as is; every other value becomes Equal(value).
func ExactArguments(args []any) Policy {
	matchers := make([]Matcher, len(args))
	for i, arg := range args {
		if m, ok := arg.(Matcher); ok {
			matchers[i] = m
			continue
		}
		matchers[i] = Equal(arg)
	}

	return Policy{matchers: matchers}
}

// IsAny reports whether the policy accepts any arguments.
func (p Policy) IsAny() bool {
	return p.anyArgs
}

// Arity returns the number of matchers, or -1 for AnyArguments.
func (p Policy) Arity() int {
	if p.anyArgs {
		return -1
	}

	return len(p.matchers)
}

// Matchers returns a copy of the positional matchers.
func (p Policy) Matchers() []Matcher {
	return append([]Matcher(nil), p.matchers...)
}

// Accepts reports whether the policy applies to args. Matchers are evaluated left to right and
// evaluation stops at the first matcher that rejects its argument.
func (p Policy) Accepts(args []any) bool {
	if p.anyArgs {
		return true
	}

	if len(args) != len(p.matchers) {
		return false
	}

	for i, m := range p.matchers {
		if !p.match(m, args[i]) {
			return false
		}
	}

	return true
}

func (p Policy) match(m Matcher, arg any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return m.Match(arg)
}

func (p Policy) String() string {
	if p.anyArgs {
		return "(..)"
	}

	parts := make([]string, len(p.matchers))
	for i, m := range p.matchers {
		parts[i] = m.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
