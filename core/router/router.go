// Package router dispatches intercepted calls.
//
// A Router is created once per substitute. Every call made on the substitute goes through
// [Router.Route], which resolves it against the substitute's routes and returns the outcome the
// substitute must produce. Configuration captures template calls with a separate [Recording]
// (see [Router.BeginRecording]), so the router itself has no recording mode.
package router

import (
	"errors"
	"fmt"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/routing"
	"github.com/anoideaopen/substitute/core/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	// ErrNilRegistry is returned by New without a registry.
	ErrNilRegistry = errors.New("registry is nil")

	// ErrPanic wraps a value a callback panicked with.
	ErrPanic = errors.New("callback panicked")
)

// CallLog receives every routed call with its outcome.
type CallLog interface {
	Record(c *call.Call, outcome routing.Outcome)
}

// Option represents a function that applies configuration options to a routerOptions object.
type Option func(opts *routerOptions) error

type routerOptions struct {
	Logger   logrus.FieldLogger        // Logger receives a debug entry per routed call.
	Tracing  *telemetry.TracingHandler // Tracing starts a span per routed call.
	CallBase bool                      // CallBase forwards unmatched calls to the base implementation.
	Attrs    []attribute.KeyValue      // Attrs are added to every route span.
}

// WithLogger sets the logger of the router.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *routerOptions) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		o.Logger = l
		return nil
	}
}

// WithTracing sets the tracing handler used for route spans.
func WithTracing(th *telemetry.TracingHandler) Option {
	return func(o *routerOptions) error {
		if th == nil {
			return errors.New("tracing handler is nil")
		}
		o.Tracing = th
		return nil
	}
}

// WithCallBase sets whether calls without a configured result are forwarded to the base
// implementation of a partial substitute. It is enabled by default.
func WithCallBase(enabled bool) Option {
	return func(o *routerOptions) error {
		o.CallBase = enabled
		return nil
	}
}

// WithSpanAttributes adds attributes to every route span.
func WithSpanAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *routerOptions) error {
		o.Attrs = append(o.Attrs, attrs...)
		return nil
	}
}

// Router routes the calls of one substitute.
type Router struct {
	registry *routing.Registry
	log      CallLog
	opts     routerOptions
}

// New creates a router resolving calls against registry and recording them in log.
// A nil log discards the calls.
func New(registry *routing.Registry, log CallLog, options ...Option) (*Router, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	opts := routerOptions{
		Logger:   logrus.New(),
		Tracing:  telemetry.NewTracingHandler(noop.NewTracerProvider()),
		CallBase: true,
	}
	for _, option := range options {
		if err := option(&opts); err != nil {
			return nil, fmt.Errorf("applying router option: %w", err)
		}
	}

	return &Router{
		registry: registry,
		log:      log,
		opts:     opts,
	}, nil
}

// Logger returns the logger of the router.
func (r *Router) Logger() logrus.FieldLogger {
	return r.opts.Logger
}

// Registry returns the routes of the router.
func (r *Router) Registry() *routing.Registry {
	return r.registry
}

// Route routes c and returns its outcome, computed from the matching routes:
//   - the callbacks of every matching route without a result run in installation order,
//     along with the callbacks of the newest matching route with a result;
//   - a callback error is thrown;
//   - the newest matching route with a result returns its values or throws its error;
//   - without such a route the call is forwarded to the base implementation, unless a
//     matching route suppresses it or forwarding is disabled, and returns zero values
//     otherwise.
//
// The call and its outcome are recorded in the call log exactly once, also when a
// callback panics; the panic is propagated after recording.
func (r *Router) Route(c *call.Call) (outcome routing.Outcome) {
	_, span := r.opts.Tracing.StartRouteSpan(c, r.opts.Attrs...)

	defer func() {
		if p := recover(); p != nil {
			outcome = routing.Throw(panicError(p))
			r.finish(c, outcome, span)
			panic(p)
		}
		r.finish(c, outcome, span)
	}()

	return r.dispatch(c)
}

func (r *Router) dispatch(c *call.Call) routing.Outcome {
	matching := r.registry.Matching(c)
	if len(matching) == 0 {
		return r.fallback(c, false)
	}

	var result *routing.Route
	for i := len(matching) - 1; i >= 0; i-- {
		if matching[i].Action.HasResult() {
			result = matching[i]
			break
		}
	}

	suppressed := false
	for _, route := range matching {
		suppressed = suppressed || route.Action.SuppressesBase()

		if route != result && route.Action.HasResult() {
			continue
		}
		if err := route.Action.RunCallbacks(c); err != nil {
			return routing.Throw(err).From(route)
		}
	}

	if result == nil {
		return r.fallback(c, suppressed).From(matching[len(matching)-1])
	}

	values, err, _ := result.Action.Result(c)
	if err != nil {
		return routing.Throw(err).From(result)
	}

	normalized, err := c.Member().NormalizeResults(values)
	if err != nil {
		r.opts.Logger.WithError(err).WithField("route", result.String()).Error("route returned values that do not fit the member")
		return routing.Throw(err).From(result)
	}

	return routing.Return(normalized).From(result)
}

func (r *Router) fallback(c *call.Call, suppressed bool) routing.Outcome {
	if c.HasBase() && r.opts.CallBase && !suppressed {
		return routing.Forward()
	}

	return routing.Return(c.Member().ZeroResults())
}

func (r *Router) finish(c *call.Call, outcome routing.Outcome, span trace.Span) {
	if r.log != nil {
		r.log.Record(c, outcome)
	}

	r.opts.Tracing.EndRouteSpan(span, outcome)

	entry := r.opts.Logger.WithFields(logrus.Fields{
		"call":    c.String(),
		"outcome": outcome.String(),
	})
	if outcome.Route != nil {
		entry = entry.WithField("route", outcome.Route.Seq)
	}
	entry.Debug("call routed")
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}

	return fmt.Errorf("%w: %v", ErrPanic, p)
}
