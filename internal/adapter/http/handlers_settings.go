package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/middleware"
)

// GetSettings handles GET /api/saas/{tenantID}/settings.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	settings, err := h.Tenants.GetSettings(r.Context(), t.ID)
	if err != nil {
		writeDomainError(w, err, "settings not found")
		return
	}
	writeSuccess(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/saas/{tenantID}/settings.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[tenant.UpdateSettingsRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	settings, err := h.Tenants.UpdateSettings(r.Context(), t.ID, req)
	if err != nil {
		writeDomainError(w, err, "settings not found")
		return
	}
	h.Tenants.InvalidateSubdomain(r.Context(), t.Subdomain)
	writeSuccess(w, http.StatusOK, settings)
}

// ResolveTenant handles GET /api/resolve/{subdomain}, the storefront's
// bootstrap lookup from host name to tenant.
func (h *Handlers) ResolveTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tenants.ResolveSubdomain(r.Context(), urlParam(r, "subdomain"))
	if err != nil {
		writeDomainError(w, err, "marketplace not found")
		return
	}
	writeSuccess(w, http.StatusOK, t)
}
