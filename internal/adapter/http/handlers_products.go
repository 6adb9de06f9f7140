package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/product"
	"github.com/vendra/vendra/internal/middleware"
)

func listFilterFromQuery(r *http.Request) product.ListFilter {
	return product.ListFilter{
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
}

// ListProducts handles GET /api/saas/{tenantID}/products.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	f := listFilterFromQuery(r)
	products, total, err := h.Products.List(r.Context(), t.ID, f)
	if err != nil {
		writeDomainError(w, err, "products not found")
		return
	}
	f.Normalize()
	writePage(w, products, f.Page, f.Limit, total)
}

// PublicProducts handles GET /api/saas/{tenantID}/products/public, the
// unauthenticated storefront listing.
func (h *Handlers) PublicProducts(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	f := listFilterFromQuery(r)
	products, total, err := h.Products.PublicSearch(r.Context(), t.ID, f)
	if err != nil {
		writeDomainError(w, err, "storefront not found")
		return
	}
	f.Normalize()
	writePage(w, products, f.Page, f.Limit, total)
}

// GetProduct handles GET /api/saas/{tenantID}/products/{productID}.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	p, err := h.Products.Get(r.Context(), t.ID, urlParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeSuccess(w, http.StatusOK, p)
}

// CreateProduct handles POST /api/saas/{tenantID}/products.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[product.CreateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	p, err := h.Products.Create(r.Context(), t.ID, req)
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeSuccess(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/saas/{tenantID}/products/{productID}.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[product.UpdateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	p, err := h.Products.Update(r.Context(), t.ID, urlParam(r, "productID"), req)
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeSuccess(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/saas/{tenantID}/products/{productID}.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	if err := h.Products.Delete(r.Context(), t.ID, urlParam(r, "productID")); err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
