// Package otel provides OpenTelemetry instrumentation for Vendra: HTTP
// middleware, metric instruments, and span helpers. Exporter wiring is left
// to the deployment; without one the instruments are no-ops.
package otel

import (
	"context"
	"log/slog"
)

// ShutdownFunc is called to flush and shut down the trace provider.
type ShutdownFunc func(ctx context.Context) error

// InitTracer returns a no-op shutdown function. An OTLP exporter can be
// plugged in here without touching call sites.
func InitTracer(serviceName string) ShutdownFunc {
	slog.Info("otel tracing initialized", "service", serviceName)
	return func(_ context.Context) error {
		return nil
	}
}
