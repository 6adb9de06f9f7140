package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/domain/user"
	"github.com/vendra/vendra/internal/service"
)

type tenantCtxKey struct{}

// TenantContext returns middleware that validates the {tenantID} URL
// parameter, loads the tenant, and stores it in the request context. Unknown,
// malformed, and inactive tenant IDs all yield 404.
func TenantContext(tenants *service.TenantService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "tenantID")
			if _, err := uuid.Parse(id); err != nil {
				writeJSONError(w, http.StatusNotFound, "marketplace not found")
				return
			}
			t, err := tenants.Get(r.Context(), id)
			if err != nil || !t.IsActive {
				writeJSONError(w, http.StatusNotFound, "marketplace not found")
				return
			}
			ctx := context.WithValue(r.Context(), tenantCtxKey{}, t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the tenant resolved by TenantContext.
func TenantFromContext(ctx context.Context) *tenant.Tenant {
	t, _ := ctx.Value(tenantCtxKey{}).(*tenant.Tenant)
	return t
}

// WithTenant injects a tenant into ctx. Exported for handler tests.
func WithTenant(ctx context.Context, t *tenant.Tenant) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, t)
}

// RequireTenantMember restricts access to the tenant's own admin or staff
// accounts, or to the startup owner of the marketplace. The token's tenant
// scope must match the URL, never a header or ambient state.
func RequireTenantMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		t := TenantFromContext(r.Context())
		if claims == nil || t == nil {
			unauthorized(w, "authorization required")
			return
		}

		switch {
		case claims.TenantID == t.ID && (claims.Role == user.RoleAdmin || claims.Role == user.RoleStaff):
			// tenant back-office account
		case claims.TenantID == "" && claims.UserID == t.OwnerID:
			// startup owner managing their own marketplace
		default:
			forbidden(w, "not a member of this marketplace")
			return
		}
		next.ServeHTTP(w, r)
	})
}
