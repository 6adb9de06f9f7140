package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain/order"
)

const orderCols = `id, tenant_id, order_number, status, customer_name, customer_email, customer_phone, shipping_address, subtotal, tax_amount, total_amount, notes, created_at`

func scanOrder(row scannable) (*order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.TenantID, &o.OrderNumber, &o.Status, &o.CustomerName,
		&o.CustomerEmail, &o.CustomerPhone, &o.ShippingAddress, &o.Subtotal,
		&o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder allocates the day's next order number, inserts the order and
// its items, and decrements product stock, all in one transaction. The
// counter bump is an atomic upsert, so two same-day orders can never draw the
// same sequence.
func (s *Store) CreateOrder(ctx context.Context, o *order.Order, items []order.Item) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create order: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	var seq int
	err = tx.QueryRow(ctx,
		`INSERT INTO order_counters (tenant_id, day, seq) VALUES ($1, $2, 1)
		 ON CONFLICT (tenant_id, day) DO UPDATE SET seq = order_counters.seq + 1
		 RETURNING seq`,
		o.TenantID, now.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return fmt.Errorf("create order: allocate number: %w", err)
	}
	o.OrderNumber = order.FormatNumber(now, seq)

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, tenant_id, order_number, status, customer_name, customer_email, customer_phone, shipping_address, subtotal, tax_amount, total_amount, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		o.ID, o.TenantID, o.OrderNumber, o.Status, o.CustomerName, o.CustomerEmail,
		o.CustomerPhone, o.ShippingAddress, o.Subtotal, o.TaxAmount, o.TotalAmount, o.Notes,
	).Scan(&o.CreatedAt)
	if err != nil {
		return conflictWrap(err, "create order %s", o.OrderNumber)
	}

	for i := range items {
		it := &items[i]
		it.OrderID = o.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, reference, name, unit_price, quantity, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.OrderID, it.ProductID, it.Reference, it.Name, it.UnitPrice, it.Quantity, it.LineTotal)
		if err != nil {
			return fmt.Errorf("create order item %s: %w", it.Reference, err)
		}

		// Floored at zero; the service has already checked availability.
		_, err = tx.Exec(ctx,
			`UPDATE products SET stock_quantity = GREATEST(stock_quantity - $3, 0), updated_at = now()
			 WHERE id = $1 AND tenant_id = $2`,
			it.ProductID, o.TenantID, it.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock for %s: %w", it.Reference, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("create order: commit: %w", err)
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, tenantID string, page, limit int) ([]order.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+orderCols+` FROM orders WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orEmpty(orders), total, rows.Err()
}

func (s *Store) GetOrder(ctx context.Context, tenantID, id string) (*order.Order, []order.Item, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, nil, notFoundWrap(err, "get order %s", id)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, order_id, product_id, reference, name, unit_price, quantity, line_total
		 FROM order_items WHERE order_id = $1 ORDER BY reference`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Reference, &it.Name,
			&it.UnitPrice, &it.Quantity, &it.LineTotal)
		if err != nil {
			return nil, nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return o, orEmpty(items), rows.Err()
}

func (s *Store) UpdateOrderStatus(ctx context.Context, tenantID, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $3 WHERE id = $1 AND tenant_id = $2`, id, tenantID, status)
	return execExpectOne(tag, err, "update status of order %s", id)
}
