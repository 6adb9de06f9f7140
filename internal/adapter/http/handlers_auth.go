package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vendra/vendra/internal/domain/user"
	"github.com/vendra/vendra/internal/middleware"
)

const refreshCookieName = "vendra_refresh"

func setRefreshCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(maxAge / time.Second),
	})
}

// signupRequest is the body of POST /api/auth/signup. Signup always creates
// a startup-layer account; tenant staff are created by provisioning.
type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[signupRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}

	u, err := h.Auth.Register(r.Context(), &user.CreateRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     user.RoleCustomer,
	})
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeSuccess(w, http.StatusCreated, u)
}

// signinRequest is the body of POST /api/auth/signin. TenantID is empty for
// startup-layer logins and set for marketplace back-office logins.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id,omitempty"`
}

// Signin handles POST /api/auth/signin.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[signinRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}

	resp, rawRefresh, err := h.Auth.Login(r.Context(), user.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, req.TenantID)
	if err != nil {
		slog.Debug("signin failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	setRefreshCookie(w, rawRefresh, 7*24*time.Hour)
	writeSuccess(w, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	resp, newRawRefresh, err := h.Auth.RefreshTokens(r.Context(), cookie.Value)
	if err != nil {
		slog.Debug("token refresh failed", "error", err)
		setRefreshCookie(w, "", -time.Second)
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	setRefreshCookie(w, newRawRefresh, 7*24*time.Hour)
	writeSuccess(w, http.StatusOK, resp)
}

// Signout handles POST /api/auth/signout.
func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.Auth.Logout(r.Context(), claims.UserID); err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	setRefreshCookie(w, "", -time.Second)
	writeSuccess(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// Me handles GET /api/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	u, err := h.Auth.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeSuccess(w, http.StatusOK, u)
}

// UpdateMe handles PATCH /api/auth/me. Only the display name can be changed
// here; roles are assigned by provisioning.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	req, ok := readJSON[struct {
		Name string `json:"name"`
	}](w, r, h.bodyLimit)
	if !ok {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	u, err := h.Auth.UpdateUser(r.Context(), claims.UserID, user.UpdateRequest{Name: req.Name})
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeSuccess(w, http.StatusOK, u)
}
