package routing

import (
	"fmt"
	"strings"

	"github.com/anoideaopen/substitute/core/call"
)

// OutcomeKind is the kind of an Outcome.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeReturn OutcomeKind = iota
	OutcomeThrow
	OutcomeForward
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeThrow:
		return "throw"
	case OutcomeForward:
		return "forward"
	case OutcomeReturn:
		fallthrough
	default:
		return "return"
	}
}

// Outcome is the result of routing one call.
type Outcome struct {
	Kind   OutcomeKind
	Values []any  // Result values for OutcomeReturn.
	Err    error  // Error for OutcomeThrow.
	Route  *Route // The route that produced the outcome, nil for defaults.
}

// Return returns an outcome producing values.
func Return(values []any) Outcome {
	return Outcome{Kind: OutcomeReturn, Values: values}
}

// Throw returns an outcome throwing err.
func Throw(err error) Outcome {
	return Outcome{Kind: OutcomeThrow, Err: err}
}

// Forward returns an outcome forwarding the call to the real implementation.
func Forward() Outcome {
	return Outcome{Kind: OutcomeForward}
}

// From returns a copy of o attributed to route.
func (o Outcome) From(route *Route) Outcome {
	o.Route = route
	return o
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeThrow:
		return "throw " + fmt.Sprint(o.Err)
	case OutcomeForward:
		return "forward"
	case OutcomeReturn:
		fallthrough
	default:
		parts := make([]string, len(o.Values))
		for i, v := range o.Values {
			parts[i] = call.FormatArg(v)
		}
		return "return (" + strings.Join(parts, ", ") + ")"
	}
}
