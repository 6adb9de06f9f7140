// Package order defines customer orders and their immutable line items.
package order

import (
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Order status values.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// TaxRate is the flat VAT rate applied to the order subtotal.
const TaxRate = 0.20

// Order is one customer order. OrderNumber is sequential per tenant per day.
type Order struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	Subtotal        float64   `json:"subtotal"`
	TaxAmount       float64   `json:"tax_amount"`
	TotalAmount     float64   `json:"total_amount"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Item snapshots product reference, name and unit price at order time, so
// later product edits never change past orders.
type Item struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Reference string  `json:"reference"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Line is one requested order line.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateRequest holds the fields required to place an order.
type CreateRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Lines           []Line `json:"lines"`
}

// Validate checks an order request before any product lookup.
func (r *CreateRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", domain.ErrValidation)
	}
	if r.CustomerEmail == "" {
		return fmt.Errorf("%w: customer_email is required", domain.ErrValidation)
	}
	if len(r.Lines) == 0 {
		return fmt.Errorf("%w: at least one order line is required", domain.ErrValidation)
	}
	for i, l := range r.Lines {
		if l.ProductID == "" {
			return fmt.Errorf("%w: lines[%d].product_id is required", domain.ErrValidation, i)
		}
		if l.Quantity < 1 {
			return fmt.Errorf("%w: lines[%d].quantity must be at least 1", domain.ErrValidation, i)
		}
	}
	return nil
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// FormatNumber renders an order number as YYYYMMDD followed by a 4-digit
// sequence.
func FormatNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", day.Format("20060102"), seq)
}
