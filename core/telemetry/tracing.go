package telemetry

import (
	"context"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/routing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of route spans.
const TracerName = "github.com/anoideaopen/substitute"

// SpanRoute is the name of the span covering the routing of one call.
const SpanRoute = "substitute.route"

// transientSource is implemented by chaincode stubs: a trace context may travel in the
// transient map of a transaction.
type transientSource interface {
	GetTransient() (map[string][]byte, error)
}

// TracingHandler starts the spans of routed calls.
type TracingHandler struct {
	Tracer      trace.Tracer
	Propagators propagation.TextMapPropagator
}

// NewTracingHandler returns a handler using a tracer of tp and the W3C trace context and
// baggage propagators.
func NewTracingHandler(tp trace.TracerProvider) *TracingHandler {
	return &TracingHandler{
		Tracer: tp.Tracer(TracerName),
		Propagators: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
}

// StartRouteSpan starts the span for routing c. The span is a child of the first
// context.Context argument of the call; failing that, of the trace context carried in the
// transient map of a chaincode stub argument.
func (th *TracingHandler) StartRouteSpan(c *call.Call, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, Member(c.Member()), Call(c))

	return th.Tracer.Start(
		th.ContextFromCall(c),
		SpanRoute,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndRouteSpan records the outcome on span and ends it.
func (th *TracingHandler) EndRouteSpan(span trace.Span, outcome routing.Outcome) {
	span.SetAttributes(Outcome(outcome.Kind))
	if outcome.Route != nil {
		span.SetAttributes(Route(outcome.Route))
	}

	if outcome.Kind == routing.OutcomeThrow && outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Err.Error())
	}

	span.End()
}

// ContextFromCall returns the parent context for the span of c.
func (th *TracingHandler) ContextFromCall(c *call.Call) context.Context {
	if ctx, ok := call.ArgOfType[context.Context](c); ok && ctx != nil {
		return ctx
	}

	if stub, ok := call.ArgOfType[transientSource](c); ok && stub != nil {
		return th.ContextFromStub(stub)
	}

	return context.Background()
}

// ContextFromStub extracts the trace context from the transient map of stub.
func (th *TracingHandler) ContextFromStub(stub transientSource) context.Context {
	transientMap, err := stub.GetTransient()
	if err != nil {
		return context.Background()
	}

	return th.ExtractContext(TransientCarrier(transientMap))
}

// ExtractContext extracts the trace context from carrier.
func (th *TracingHandler) ExtractContext(carrier propagation.TextMapCarrier) context.Context {
	return th.Propagators.Extract(context.Background(), carrier)
}

// InjectContext writes the trace context of ctx to a new transient map, ready to be set on a
// chaincode stub.
func (th *TracingHandler) InjectContext(ctx context.Context) TransientCarrier {
	carrier := TransientCarrier{}
	th.Propagators.Inject(ctx, carrier)

	return carrier
}
