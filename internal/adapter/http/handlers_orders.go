package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/order"
	"github.com/vendra/vendra/internal/middleware"
)

// orderResponse bundles an order with its line items.
type orderResponse struct {
	Order *order.Order `json:"order"`
	Items []order.Item `json:"items"`
}

// CreateOrder handles POST /api/saas/{tenantID}/orders, the public storefront
// checkout.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[order.CreateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	o, items, err := h.Orders.Create(r.Context(), t.ID, req)
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeSuccess(w, http.StatusCreated, orderResponse{Order: o, Items: items})
}

// ListOrders handles GET /api/saas/{tenantID}/orders.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	page, limit := queryInt(r, "page"), queryInt(r, "limit")
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	orders, total, err := h.Orders.List(r.Context(), t.ID, page, limit)
	if err != nil {
		writeDomainError(w, err, "orders not found")
		return
	}
	writePage(w, orders, page, limit, total)
}

// GetOrder handles GET /api/saas/{tenantID}/orders/{orderID}.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	o, items, err := h.Orders.Get(r.Context(), t.ID, urlParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeSuccess(w, http.StatusOK, orderResponse{Order: o, Items: items})
}

// UpdateOrderStatus handles PATCH /api/saas/{tenantID}/orders/{orderID}/status.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[struct {
		Status string `json:"status"`
	}](w, r, h.bodyLimit)
	if !ok {
		return
	}
	o, err := h.Orders.UpdateStatus(r.Context(), t.ID, urlParam(r, "orderID"), req.Status)
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeSuccess(w, http.StatusOK, o)
}
