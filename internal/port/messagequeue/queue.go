// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Queue is the port interface for publishing domain events.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close shuts down the queue connection.
	Close() error

	// IsConnected reports whether the queue is currently connected.
	IsConnected() bool
}

// Subject constants for the marketplace domain events.
const (
	SubjectTenantProvisioned = "marketplace.tenant.provisioned"
	SubjectOrderCreated      = "marketplace.order.created"
	SubjectOrderStatus       = "marketplace.order.status" // status transitions on existing orders
)

// Noop is a Queue that drops every message. Used when event publishing is
// disabled in configuration.
type Noop struct{}

// Publish discards the message.
func (Noop) Publish(context.Context, string, []byte) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

// IsConnected always reports false.
func (Noop) IsConnected() bool { return false }
