package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/adapter/otel"
	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/order"
	"github.com/vendra/vendra/internal/port/database"
	"github.com/vendra/vendra/internal/port/messagequeue"
)

// OrderService places and manages customer orders.
type OrderService struct {
	store   database.Store
	queue   messagequeue.Queue
	metrics *otel.Metrics
}

// NewOrderService creates a new OrderService. metrics may be nil.
func NewOrderService(store database.Store, queue messagequeue.Queue, metrics *otel.Metrics) *OrderService {
	return &OrderService{store: store, queue: queue, metrics: metrics}
}

// orderCreatedEvent is published after an order commits.
type orderCreatedEvent struct {
	TenantID    string    `json:"tenant_id"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// orderStatusEvent is published on every status transition.
type orderStatusEvent struct {
	TenantID    string `json:"tenant_id"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// Create validates an order request, snapshots product data into line items,
// and persists the order. The store allocates the daily order number and
// decrements stock in the same transaction.
func (s *OrderService) Create(ctx context.Context, tenantID string, req order.CreateRequest) (*order.Order, []order.Item, error) {
	ctx, span := otel.StartOrderSpan(ctx, tenantID, len(req.Lines))
	defer span.End()

	o, items, err := s.create(ctx, tenantID, req)
	if err != nil {
		if s.metrics != nil && errors.Is(err, domain.ErrValidation) {
			s.metrics.OrdersFailed.Add(ctx, 1)
		}
		return nil, nil, err
	}
	if s.metrics != nil {
		s.metrics.OrdersCreated.Add(ctx, 1)
		s.metrics.OrderValue.Record(ctx, o.TotalAmount)
	}
	publishEvent(ctx, s.queue, messagequeue.SubjectOrderCreated, orderCreatedEvent{
		TenantID:    tenantID,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	})
	return o, items, nil
}

func (s *OrderService) create(ctx context.Context, tenantID string, req order.CreateRequest) (*order.Order, []order.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	o := &order.Order{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		Status:          order.StatusPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	items := make([]order.Item, 0, len(req.Lines))
	for _, line := range req.Lines {
		p, err := s.store.GetProduct(ctx, tenantID, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: product %s not found", domain.ErrValidation, line.ProductID)
			}
			return nil, nil, fmt.Errorf("get product: %w", err)
		}
		if !p.IsSellable {
			return nil, nil, fmt.Errorf("%w: product %q is not sellable", domain.ErrValidation, p.Reference)
		}
		if p.StockQuantity < line.Quantity {
			return nil, nil, fmt.Errorf("%w: insufficient stock for product %q", domain.ErrValidation, p.Reference)
		}
		items = append(items, order.Item{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: p.ID,
			Reference: p.Reference,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			LineTotal: roundCents(p.Price * float64(line.Quantity)),
		})
		o.Subtotal += items[len(items)-1].LineTotal
	}
	o.Subtotal = roundCents(o.Subtotal)
	o.TaxAmount = roundCents(o.Subtotal * order.TaxRate)
	o.TotalAmount = roundCents(o.Subtotal + o.TaxAmount)

	if err := s.store.CreateOrder(ctx, o, items); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

// List returns a page of the tenant's orders, newest first, plus the total
// count.
func (s *OrderService) List(ctx context.Context, tenantID string, page, limit int) ([]order.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.ListOrders(ctx, tenantID, page, limit)
}

// Get returns one order with its line items.
func (s *OrderService) Get(ctx context.Context, tenantID, id string) (*order.Order, []order.Item, error) {
	return s.store.GetOrder(ctx, tenantID, id)
}

// UpdateStatus transitions an order to a new status. Delivered and cancelled
// orders are terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, id, status string) (*order.Order, error) {
	if !order.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, status)
	}
	o, _, err := s.store.GetOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return o, nil
	}
	if o.Status == order.StatusDelivered || o.Status == order.StatusCancelled {
		return nil, fmt.Errorf("%w: order is already %s", domain.ErrConflict, o.Status)
	}

	if err := s.store.UpdateOrderStatus(ctx, tenantID, id, status); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.queue, messagequeue.SubjectOrderStatus, orderStatusEvent{
		TenantID:    tenantID,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        o.Status,
		To:          status,
	})
	o.Status = status
	return o, nil
}

// roundCents rounds a currency amount to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
