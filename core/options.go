package core

import (
	"errors"

	"github.com/anoideaopen/substitute/core/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Option represents a function that applies configuration options to an options object.
//
// opts: A pointer to an options object that the function will modify.
//
// error: The function returns an error if applying the option fails.
type Option func(opts *options) error

// options holds the settings of a new substitute.
type options struct {
	Base     any                // Base is the real implementation of a partial substitute.
	Name     string             // Name identifies the substitute in logs and spans.
	Logger   logrus.FieldLogger // Logger of the substitute.
	Tracer   trace.Tracer       // Tracer starts route spans.
	Config   *config.Config     // Config supplies defaults for the other settings.
	CallBase *bool              // CallBase overrides Config.CallBase.
}

// WithBase makes a partial substitute: calls without a configured result are forwarded to impl,
// which must implement the substituted interface.
func WithBase(impl any) Option {
	return func(o *options) error {
		if impl == nil {
			return errors.New("base implementation is nil")
		}
		o.Base = impl
		return nil
	}
}

// WithName sets the name of the substitute. It defaults to the interface name.
func WithName(name string) Option {
	return func(o *options) error {
		o.Name = name
		return nil
	}
}

// WithLogger sets the logger of the substitute.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		o.Logger = l
		return nil
	}
}

// WithTracer sets the tracer of route spans. By default the tracer comes from the global
// tracer provider, see telemetry.InstallTracerProvider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer is nil")
		}
		o.Tracer = tracer
		return nil
	}
}

// WithConfig applies cfg: its name, logger settings and base forwarding flag. When
// cfg.Tracing has an endpoint and WithTracer is not given, the substitute exports its route
// spans through its own OTLP tracer provider; release it with Substitute.Shutdown.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.Config = cfg
		return nil
	}
}

// WithCallBase sets whether a partial substitute forwards calls without a configured result.
func WithCallBase(enabled bool) Option {
	return func(o *options) error {
		o.CallBase = &enabled
		return nil
	}
}
