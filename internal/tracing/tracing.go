package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/dreamware/bookshelf"

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
	traceFile    io.Closer
)

// Init configures OpenTelemetry with the stdout exporter. Output "stdout" (or
// "-") writes to os.Stdout; anything else is treated as a file path. Only the
// first call in the process configures the provider; later calls leave output untouched.
func Init(serviceName, serviceVersion, output string) error {
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanProcessor, error) {
		var w io.Writer = os.Stdout
		if output != "stdout" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return nil, err
			}
			w = f
			traceFile = f
		}

		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, err
		}
		return sdktrace.NewSimpleSpanProcessor(exporter), nil
	})
}

// InitWithExporter configures OpenTelemetry using the supplied exporter.
// Spans are exported synchronously as they end.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanProcessor, error) {
		return sdktrace.NewSimpleSpanProcessor(exporter), nil
	})
}

func installProvider(serviceName, serviceVersion string, newProcessor func() (sdktrace.SpanProcessor, error)) error {
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}

		processor, err := newProcessor()
		if err != nil {
			providerErr = err
			return
		}

		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(processor),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
	})
	return providerErr
}

// Shutdown flushes and stops the installed provider, if any.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if traceFile != nil {
		if cerr := traceFile.Close(); err == nil {
			err = cerr
		}
		traceFile = nil
	}
	return err
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// StartSpan starts a server span named name as a child of any span in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
	return ctx, &Span{span: span}
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.SetAttributes(kvs...)
	return s
}

// EndWithHTTPStatus records the response code and ends the span. Following the
// OpenTelemetry HTTP conventions for server spans, 4xx leaves the status unset
// and only 5xx is an error.
func (s *Span) EndWithHTTPStatus(code int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Int("http.response.status_code", code))
	switch {
	case code >= 500:
		s.span.SetStatus(codes.Error, "server error")
	case code >= 100 && code < 400:
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
