package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/config"
	"github.com/anoideaopen/substitute/core/future"
	"github.com/anoideaopen/substitute/core/history"
	"github.com/anoideaopen/substitute/core/logger"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/core/reflectx"
	"github.com/anoideaopen/substitute/core/router"
	"github.com/anoideaopen/substitute/core/routing"
	"github.com/anoideaopen/substitute/core/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var (
	// ErrNotInterface is returned by New for type parameters that are not interfaces.
	ErrNotInterface = errors.New("substituted type must be an interface")

	// ErrBaseMismatch is returned when the base implementation does not implement the
	// substituted interface.
	ErrBaseMismatch = errors.New("base does not implement substituted interface")

	// ErrUnknownMethod is raised by Invoke for methods the interface does not have.
	ErrUnknownMethod = errors.New("unknown method")
)

// Substitute intercepts the calls of one stub and routes them.
type Substitute struct {
	id       uuid.UUID
	name     string
	iface    reflect.Type
	base     reflect.Value
	members  map[string]call.Member
	registry *routing.Registry
	history  *history.Log
	router   *router.Router
	handler  router.Handler
	log      logrus.FieldLogger
	shutdown func(ctx context.Context) error
}

// New creates a substitute for the interface T.
//
// Parameters:
//   - opts: options such as WithBase for partial substitutes.
//
// Returns:
//   - *Substitute: the substitute, to be embedded in a stub of T.
//   - error: ErrNotInterface, ErrBaseMismatch or an error of an option.
func New[T any](opts ...Option) (*Substitute, error) {
	return newSubstitute(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// MustNew is New that panics on error.
func MustNew[T any](opts ...Option) *Substitute {
	s, err := New[T](opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func newSubstitute(iface reflect.Type, opts ...Option) (*Substitute, error) {
	if iface.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrNotInterface, iface.String())
	}

	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("applying substitute option: %w", err)
		}
	}

	s := &Substitute{
		id:       uuid.New(),
		name:     iface.Name(),
		iface:    iface,
		members:  make(map[string]call.Member, iface.NumMethod()),
		registry: routing.NewRegistry(),
		history:  history.NewLog(),
	}

	if o.Base != nil {
		baseValue := reflect.ValueOf(o.Base)
		if !baseValue.Type().Implements(iface) {
			return nil, fmt.Errorf("%w: %s does not implement %s", ErrBaseMismatch, baseValue.Type(), iface)
		}
		s.base = baseValue
	}

	for _, name := range reflectx.TypeMethods(iface) {
		m, err := call.NewMember(iface, name)
		if err != nil {
			return nil, err
		}
		s.members[name] = m
	}

	cfg := o.Config
	if cfg == nil {
		cfg = config.Default()
	}

	switch {
	case o.Name != "":
		s.name = o.Name
	case cfg.Name != "":
		s.name = cfg.Name
	}

	var lg logrus.FieldLogger = logger.Logger()
	switch {
	case o.Logger != nil:
		lg = o.Logger
	case o.Config != nil:
		l, err := logger.FromConfig(o.Config)
		if err != nil {
			return nil, err
		}
		lg = l
	}
	s.log = lg.WithFields(logrus.Fields{
		"substitute": s.name,
		"id":         s.id.String(),
	})

	tracing := telemetry.NewTracingHandler(otel.GetTracerProvider())
	switch {
	case o.Tracer != nil:
		tracing = &telemetry.TracingHandler{
			Tracer:      o.Tracer,
			Propagators: otel.GetTextMapPropagator(),
		}
	case cfg.Tracing.Endpoint != "":
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Tracing)
		if err != nil {
			return nil, fmt.Errorf("creating tracer provider: %w", err)
		}
		if sdkProvider, ok := tp.(interface {
			Shutdown(ctx context.Context) error
		}); ok {
			s.shutdown = sdkProvider.Shutdown
		}
		tracing = telemetry.NewTracingHandler(tp)
	}

	callBase := cfg.CallBase
	if o.CallBase != nil {
		callBase = *o.CallBase
	}

	r, err := router.New(s.registry, s.history,
		router.WithLogger(s.log),
		router.WithTracing(tracing),
		router.WithCallBase(callBase),
		router.WithSpanAttributes(telemetry.Substitute(s.id.String()), telemetry.Name(s.name)),
	)
	if err != nil {
		return nil, err
	}
	s.router = r
	s.handler = r

	return s, nil
}

// recording returns a copy of s that captures its calls in rec instead of routing them. The
// copy shares the members, routes and history of s.
func (s *Substitute) recording(rec *router.Recording) *Substitute {
	shadow := *s
	shadow.handler = rec

	return &shadow
}

// Shutdown flushes and stops the tracer provider the substitute created from the tracing
// settings of WithConfig. It does nothing for substitutes using the global provider or
// WithTracer.
func (s *Substitute) Shutdown(ctx context.Context) error {
	if s.shutdown == nil {
		return nil
	}

	return s.shutdown(ctx)
}

// Invoke routes a call of method with args and returns its results. Stubs call it from each
// method of the substituted interface, passing the arguments in order; a variadic tail is
// passed as one slice.
//
// An unknown method or arguments that do not fit the method signature are mistakes in the
// stub and panic. A configured error is returned as the trailing error result, as failed
// futures for members returning futures, and panics for members with neither.
func (s *Substitute) Invoke(method string, args ...any) Results {
	m, ok := s.members[method]
	if !ok {
		panic(fmt.Errorf("%w: %s.%s", ErrUnknownMethod, s.iface.String(), method))
	}

	var base reflect.Value
	if s.base.IsValid() {
		base = s.base.MethodByName(method)
	}

	c, err := call.New(m, args, base)
	if err != nil {
		panic(err)
	}

	return s.produce(c, s.handler.Route(c))
}

func (s *Substitute) produce(c *call.Call, outcome routing.Outcome) Results {
	m := c.Member()

	switch outcome.Kind {
	case routing.OutcomeForward:
		values, err := c.Forward()
		if err != nil {
			panic(err)
		}
		return Results{values: values}

	case routing.OutcomeThrow:
		return s.throw(m, outcome.Err)

	case routing.OutcomeReturn:
		fallthrough
	default:
		values, err := settleFutures(m, outcome.Values, nil)
		if err != nil {
			panic(err)
		}
		return Results{values: values}
	}
}

func (s *Substitute) throw(m call.Member, err error) Results {
	if isAsync(m) {
		values, settleErr := settleFutures(m, m.ZeroResults(), err)
		if settleErr != nil {
			panic(settleErr)
		}
		return Results{values: values}
	}

	if values, ok := m.ErrorResults(err); ok {
		return Results{values: values}
	}

	panic(err)
}

func isAsync(m call.Member) bool {
	for _, t := range m.Results() {
		if future.IsFuture(t) {
			return true
		}
	}

	return false
}

// settleFutures replaces nil futures in values with futures settled with err, or with the
// zero value when err is nil.
func settleFutures(m call.Member, values []any, err error) ([]any, error) {
	results := m.Results()
	for i, t := range results {
		if i >= len(values) || !future.IsFuture(t) {
			continue
		}
		if values[i] != nil && !reflect.ValueOf(values[i]).IsNil() {
			continue
		}

		settled, settleErr := future.Settled(t, nil, err)
		if settleErr != nil {
			return nil, settleErr
		}
		values[i] = settled
	}

	return values, nil
}

// ID returns the unique identifier of the substitute.
func (s *Substitute) ID() string { return s.id.String() }

// Name returns the name of the substitute.
func (s *Substitute) Name() string { return s.name }

// Type returns the substituted interface.
func (s *Substitute) Type() reflect.Type { return s.iface }

// IsPartial reports whether the substitute has a base implementation.
func (s *Substitute) IsPartial() bool { return s.base.IsValid() }

// CallRouter returns the router of the substitute.
func (s *Substitute) CallRouter() *router.Router { return s.router }

// Routes returns the configured routes in installation order.
func (s *Substitute) Routes() []*routing.Route { return s.registry.Routes() }

// ReceivedCalls returns the calls received so far, in order. Calls made while configuring
// routes are not included.
func (s *Substitute) ReceivedCalls() []*call.Call {
	return s.history.Calls()
}

// ReceivedEntries returns the received calls with the outcome each was routed to.
func (s *Substitute) ReceivedEntries() []history.Entry {
	return s.history.Entries()
}

// ReceivedCount returns the number of received calls of method accepted by policy.
func (s *Substitute) ReceivedCount(method string, policy matcher.Policy) int {
	m, ok := s.members[method]
	if !ok {
		return 0
	}

	return s.history.Count(m, policy)
}

// ReceivedCountWith returns the number of received calls of method with the given arguments.
// Arguments that are matchers match as matchers.
func (s *Substitute) ReceivedCountWith(method string, args ...any) int {
	return s.ReceivedCount(method, matcher.ExactArguments(args))
}

// ClearReceivedCalls forgets the received calls.
func (s *Substitute) ClearReceivedCalls() {
	s.history.Clear()
}

// ClearRoutes removes every configured route.
func (s *Substitute) ClearRoutes() {
	s.registry.Clear()
	s.log.Debug("routes cleared")
}

func (s *Substitute) String() string {
	return fmt.Sprintf("substitute %s (%s)", s.name, s.iface.String())
}
