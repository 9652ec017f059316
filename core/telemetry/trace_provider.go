package telemetry

import (
	"context"
	"fmt"

	"github.com/anoideaopen/substitute/core/config"
	"github.com/anoideaopen/substitute/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NewTracerProvider returns a tracer provider based on http otlp exporter. Without an
// endpoint it returns a noop provider.
func NewTracerProvider(ctx context.Context, settings config.Tracing) (trace.TracerProvider, error) {
	if settings.Endpoint == "" {
		return noop.NewTracerProvider(), nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if settings.CACerts != "" {
		tlsConfig, err := collectorTLSConfig(settings.CACerts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	} else {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(settings.ServiceName),
			semconv.ServiceVersion(version.Module()),
		))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r)), nil
}

// InstallTracerProvider creates a tracer provider with NewTracerProvider and installs it,
// along with the trace context and baggage propagators, as the global one.
func InstallTracerProvider(ctx context.Context, settings config.Tracing) (trace.TracerProvider, error) {
	tp, err := NewTracerProvider(ctx, settings)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
