// Package tracing is a thin wrapper around OpenTelemetry used to record one
// server span per HTTP request.
//
// Init installs a global tracer provider backed by the stdout exporter (to
// os.Stdout or a file); InitWithExporter accepts any sdktrace.SpanExporter,
// which tests use with an in-memory exporter. When neither has been called,
// spans are no-ops.
package tracing
