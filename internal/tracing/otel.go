// Package tracing installs the process-wide OpenTelemetry tracer provider.
// Until Setup enables it, spans started through otel.Tracer are no-ops.
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ShutdownFunc flushes pending spans and releases the provider.
type ShutdownFunc func(context.Context) error

// Options selects whether and where spans are exported.
type Options struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	// Writer receives the exported spans. Defaults to os.Stderr.
	Writer io.Writer
}

// Setup installs a global tracer provider exporting to opts.Writer when
// opts.Enabled is set. When disabled it leaves the global provider alone and
// returns Noop.
func Setup(opts Options) (ShutdownFunc, error) {
	if !opts.Enabled {
		return Noop, nil
	}
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(opts.Writer),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, err
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(opts.ServiceName)}
	if opts.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(opts.ServiceVersion))
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Noop is the shutdown used when tracing is disabled.
func Noop(context.Context) error { return nil }
