package telemetry

import (
	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/routing"
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys of route spans.
const (
	KeySubstitute = attribute.Key("substitute.id")
	KeyName       = attribute.Key("substitute.name")
	KeyMember     = attribute.Key("substitute.member")
	KeyCall       = attribute.Key("substitute.call")
	KeyOutcome    = attribute.Key("substitute.outcome")
	KeyRoute      = attribute.Key("substitute.route")
)

// Substitute returns the attribute identifying a substitute.
func Substitute(id string) attribute.KeyValue {
	return KeySubstitute.String(id)
}

// Name returns the attribute carrying a substitute name.
func Name(name string) attribute.KeyValue {
	return KeyName.String(name)
}

// Member returns the attribute identifying the invoked member.
func Member(m call.Member) attribute.KeyValue {
	return KeyMember.String(m.ID())
}

// Call returns the attribute with the rendered call.
func Call(c *call.Call) attribute.KeyValue {
	return KeyCall.String(c.String())
}

// Outcome returns the attribute with the outcome kind.
func Outcome(kind routing.OutcomeKind) attribute.KeyValue {
	return KeyOutcome.String(kind.String())
}

// Route returns the attribute with the sequence number of the route that handled a call.
func Route(r *routing.Route) attribute.KeyValue {
	return KeyRoute.Int64(int64(r.Seq))
}
