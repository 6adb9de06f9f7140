package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/middleware"
)

// ListFields handles GET /api/saas/{tenantID}/fields.
func (h *Handlers) ListFields(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	fields, err := h.Fields.List(r.Context(), t.ID)
	if err != nil {
		writeDomainError(w, err, "fields not found")
		return
	}
	writeSuccess(w, http.StatusOK, fields)
}

// GetField handles GET /api/saas/{tenantID}/fields/{fieldID}.
func (h *Handlers) GetField(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	f, err := h.Fields.Get(r.Context(), t.ID, urlParam(r, "fieldID"))
	if err != nil {
		writeDomainError(w, err, "field not found")
		return
	}
	writeSuccess(w, http.StatusOK, f)
}

// CreateField handles POST /api/saas/{tenantID}/fields.
func (h *Handlers) CreateField(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[field.CreateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	f, err := h.Fields.Create(r.Context(), t.ID, req)
	if err != nil {
		writeDomainError(w, err, "field not found")
		return
	}
	writeSuccess(w, http.StatusCreated, f)
}

// UpdateField handles PUT /api/saas/{tenantID}/fields/{fieldID}.
func (h *Handlers) UpdateField(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[field.UpdateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	f, err := h.Fields.Update(r.Context(), t.ID, urlParam(r, "fieldID"), req)
	if err != nil {
		writeDomainError(w, err, "field not found")
		return
	}
	writeSuccess(w, http.StatusOK, f)
}

// DeleteField handles DELETE /api/saas/{tenantID}/fields/{fieldID}.
func (h *Handlers) DeleteField(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	if err := h.Fields.Delete(r.Context(), t.ID, urlParam(r, "fieldID")); err != nil {
		writeDomainError(w, err, "field not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "field deleted"})
}

// setFieldValueRequest is the body of POST .../fields/{fieldID}/values.
type setFieldValueRequest struct {
	ProductID string `json:"product_id"`
	Value     string `json:"value"`
}

// SetFieldValue handles POST /api/saas/{tenantID}/fields/{fieldID}/values.
func (h *Handlers) SetFieldValue(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[setFieldValueRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if err := h.Fields.SetProductValue(r.Context(), t.ID, req.ProductID, urlParam(r, "fieldID"), req.Value); err != nil {
		writeDomainError(w, err, "field not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "value saved"})
}

// ProductFieldValues handles GET /api/saas/{tenantID}/products/{productID}/values.
func (h *Handlers) ProductFieldValues(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	values, err := h.Fields.ProductValues(r.Context(), t.ID, urlParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeSuccess(w, http.StatusOK, values)
}

// FieldDisplays handles GET /api/saas/{tenantID}/fields/display.
func (h *Handlers) FieldDisplays(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	displays, err := h.Fields.Displays(r.Context(), t.ID)
	if err != nil {
		writeDomainError(w, err, "displays not found")
		return
	}
	writeSuccess(w, http.StatusOK, displays)
}

// reorderRequest is the body of PUT .../fields/display/reorder.
type reorderRequest struct {
	Items []field.ReorderItem `json:"items"`
}

// ReorderDisplays handles PUT /api/saas/{tenantID}/fields/display/reorder.
func (h *Handlers) ReorderDisplays(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[reorderRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	if err := h.Fields.Reorder(r.Context(), t.ID, req.Items); err != nil {
		writeDomainError(w, err, "display not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "display order updated"})
}
