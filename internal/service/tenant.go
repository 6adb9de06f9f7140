package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/port/cache"
	"github.com/vendra/vendra/internal/port/database"
)

// TenantService resolves tenants and manages their storefront settings.
type TenantService struct {
	store    database.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewTenantService creates a new TenantService. c may be nil to disable
// resolution caching.
func NewTenantService(store database.Store, c cache.Cache, cacheTTL time.Duration) *TenantService {
	return &TenantService{store: store, cache: c, cacheTTL: cacheTTL}
}

// Get returns a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// ResolveSubdomain maps a subdomain to its tenant, serving repeat lookups
// from the in-process cache. Only active tenants resolve.
func (s *TenantService) ResolveSubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	key := "tenant:subdomain:" + subdomain
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var t tenant.Tenant
			if err := json.Unmarshal(data, &t); err == nil {
				return &t, nil
			}
		}
	}

	t, err := s.store.GetTenantBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, fmt.Errorf("%w: tenant is inactive", domain.ErrNotFound)
	}

	if s.cache != nil {
		if data, err := json.Marshal(t); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				slog.Warn("tenant cache set failed", "subdomain", subdomain, "error", err)
			}
		}
	}
	return t, nil
}

// InvalidateSubdomain drops a cached subdomain resolution.
func (s *TenantService) InvalidateSubdomain(ctx context.Context, subdomain string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "tenant:subdomain:"+subdomain)
	}
}

// GetSettings returns the storefront settings for a tenant.
func (s *TenantService) GetSettings(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	return s.store.GetTenantSettings(ctx, tenantID)
}

// UpdateSettings applies partial updates to a tenant's storefront settings.
func (s *TenantService) UpdateSettings(ctx context.Context, tenantID string, req tenant.UpdateSettingsRequest) (*tenant.Settings, error) {
	settings, err := s.store.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		if *req.CompanyName == "" {
			return nil, fmt.Errorf("%w: company_name must not be empty", domain.ErrValidation)
		}
		settings.CompanyName = *req.CompanyName
	}
	if req.PrimaryColor != nil {
		settings.PrimaryColor = *req.PrimaryColor
	}
	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	}
	if req.PublicAccess != nil {
		settings.PublicAccess = *req.PublicAccess
	}
	if req.ShowPrices != nil {
		settings.ShowPrices = *req.ShowPrices
	}
	if req.ShowStock != nil {
		settings.ShowStock = *req.ShowStock
	}
	if req.ShowCategories != nil {
		settings.ShowCategories = *req.ShowCategories
	}
	if err := s.store.UpdateTenantSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
