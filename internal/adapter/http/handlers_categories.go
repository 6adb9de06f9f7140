package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/middleware"
)

// ListCategories handles GET /api/saas/{tenantID}/categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	cats, err := h.Categories.List(r.Context(), t.ID)
	if err != nil {
		writeDomainError(w, err, "categories not found")
		return
	}
	writeSuccess(w, http.StatusOK, cats)
}

// CategoryTree handles GET /api/saas/{tenantID}/categories/tree.
func (h *Handlers) CategoryTree(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	tree, err := h.Categories.Tree(r.Context(), t.ID)
	if err != nil {
		writeDomainError(w, err, "categories not found")
		return
	}
	writeSuccess(w, http.StatusOK, tree)
}

// GetCategory handles GET /api/saas/{tenantID}/categories/{categoryID}.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	c, err := h.Categories.Get(r.Context(), t.ID, urlParam(r, "categoryID"))
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

// CreateCategory handles POST /api/saas/{tenantID}/categories.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[category.CreateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	c, err := h.Categories.Create(r.Context(), t.ID, req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeSuccess(w, http.StatusCreated, c)
}

// UpdateCategory handles PUT /api/saas/{tenantID}/categories/{categoryID}.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[category.UpdateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	c, err := h.Categories.Update(r.Context(), t.ID, urlParam(r, "categoryID"), req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

// DeleteCategory handles DELETE /api/saas/{tenantID}/categories/{categoryID}.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	if err := h.Categories.Delete(r.Context(), t.ID, urlParam(r, "categoryID")); err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
