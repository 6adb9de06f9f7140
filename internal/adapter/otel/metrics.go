package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "vendra"

// Metrics holds all Vendra metric instruments.
type Metrics struct {
	TenantsProvisioned metric.Int64Counter
	OrdersCreated      metric.Int64Counter
	OrdersFailed       metric.Int64Counter
	OrderValue         metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TenantsProvisioned, err = meter.Int64Counter("vendra.tenants.provisioned",
		metric.WithDescription("Number of marketplaces provisioned"))
	if err != nil {
		return nil, err
	}

	m.OrdersCreated, err = meter.Int64Counter("vendra.orders.created",
		metric.WithDescription("Number of orders placed"))
	if err != nil {
		return nil, err
	}

	m.OrdersFailed, err = meter.Int64Counter("vendra.orders.failed",
		metric.WithDescription("Number of order attempts rejected"))
	if err != nil {
		return nil, err
	}

	m.OrderValue, err = meter.Float64Histogram("vendra.order.value",
		metric.WithDescription("Order total amount, tax included"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
