package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vendra"

// StartProvisionSpan starts a span for a marketplace provisioning workflow.
func StartProvisionSpan(ctx context.Context, ownerID, subdomain string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "provision",
		trace.WithAttributes(
			attribute.String("owner.id", ownerID),
			attribute.String("tenant.subdomain", subdomain),
		),
	)
}

// StartOrderSpan starts a span for order placement.
func StartOrderSpan(ctx context.Context, tenantID string, lines int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "order",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.Int("order.lines", lines),
		),
	)
}
