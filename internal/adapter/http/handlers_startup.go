package http

import (
	"net/http"

	"github.com/vendra/vendra/internal/domain/marketplace"
	"github.com/vendra/vendra/internal/domain/user"
	"github.com/vendra/vendra/internal/middleware"
)

// GetProfile handles GET /api/startup/auth/profile.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	p, err := h.Marketplace.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}
	writeSuccess(w, http.StatusOK, p)
}

// CreateProfile handles POST /api/startup/auth/profile. Creation is
// idempotent; the profile is derived from the user record and then patched.
func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	h.upsertProfile(w, r, http.StatusCreated)
}

// UpdateProfile handles PUT /api/startup/auth/profile.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	h.upsertProfile(w, r, http.StatusOK)
}

func (h *Handlers) upsertProfile(w http.ResponseWriter, r *http.Request, okStatus int) {
	claims := middleware.ClaimsFromContext(r.Context())
	req, ok := readJSON[user.UpdateProfileRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	p, err := h.Marketplace.UpdateProfile(r.Context(), claims.UserID, req)
	if err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}
	writeSuccess(w, okStatus, p)
}

// ListPlans handles GET /api/startup/marketplace/plans.
func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Marketplace.ListPlans(r.Context())
	if err != nil {
		writeDomainError(w, err, "plans not found")
		return
	}
	writeSuccess(w, http.StatusOK, plans)
}

// GetPlan handles GET /api/startup/marketplace/plans/{planID}.
func (h *Handlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Marketplace.Plan(r.Context(), urlParam(r, "planID"))
	if err != nil {
		writeDomainError(w, err, "plan not found")
		return
	}
	writeSuccess(w, http.StatusOK, plan)
}

// CheckSubdomain handles GET /api/startup/marketplace/check-subdomain.
func (h *Handlers) CheckSubdomain(w http.ResponseWriter, r *http.Request) {
	subdomain := r.URL.Query().Get("subdomain")
	if subdomain == "" {
		writeError(w, http.StatusBadRequest, "subdomain query parameter is required")
		return
	}
	check, err := h.Marketplace.CheckSubdomain(r.Context(), subdomain)
	if err != nil {
		writeDomainError(w, err, "subdomain not found")
		return
	}
	writeSuccess(w, http.StatusOK, check)
}

// SuggestSubdomains handles GET /api/startup/marketplace/suggest-subdomains.
func (h *Handlers) SuggestSubdomains(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}
	suggestions, err := h.Marketplace.SuggestSubdomains(r.Context(), name)
	if err != nil {
		writeDomainError(w, err, "no suggestions")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// CreateMarketplace handles POST /api/startup/marketplace/create.
func (h *Handlers) CreateMarketplace(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	req, ok := readJSON[marketplace.CreateRequest](w, r, h.bodyLimit)
	if !ok {
		return
	}
	result, err := h.Marketplace.Provision(r.Context(), claims.UserID, &req)
	if err != nil {
		writeDomainError(w, err, "owner not found")
		return
	}
	writeSuccess(w, http.StatusCreated, result)
}

// MyMarketplaces handles GET /api/startup/marketplace/my-marketplaces.
func (h *Handlers) MyMarketplaces(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	tenants, err := h.Marketplace.MyMarketplaces(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "marketplaces not found")
		return
	}
	writeSuccess(w, http.StatusOK, tenants)
}

// MySubscriptions handles GET /api/startup/marketplace/subscriptions.
func (h *Handlers) MySubscriptions(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	subs, err := h.Marketplace.MySubscriptions(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "subscriptions not found")
		return
	}
	writeSuccess(w, http.StatusOK, subs)
}

// ActiveSubscription handles GET /api/startup/marketplace/subscriptions/active.
func (h *Handlers) ActiveSubscription(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	sub, err := h.Marketplace.ActiveSubscription(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "no active subscription")
		return
	}
	writeSuccess(w, http.StatusOK, sub)
}
