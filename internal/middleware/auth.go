package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vendra/vendra/internal/domain/user"
	"github.com/vendra/vendra/internal/service"
)

type claimsCtxKey struct{}

// Auth returns middleware that validates a Bearer JWT and stores the token
// claims in the request context. Routes mounted without this middleware are
// public.
func Auth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization required")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := authSvc.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated token claims, or nil on public
// routes.
func ClaimsFromContext(ctx context.Context) *user.TokenClaims {
	c, _ := ctx.Value(claimsCtxKey{}).(*user.TokenClaims)
	return c
}

// WithClaims injects token claims into ctx. Exported for handler tests.
func WithClaims(ctx context.Context, c *user.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, c)
}

// RequireRole returns middleware that restricts access to users with one of
// the given roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				unauthorized(w, "authorization required")
				return
			}
			if !allowed[claims.Role] {
				forbidden(w, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusForbidden, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
}
