package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/adapter/otel"
	"github.com/vendra/vendra/internal/config"
	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/domain/marketplace"
	"github.com/vendra/vendra/internal/domain/subscription"
	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/domain/user"
	"github.com/vendra/vendra/internal/port/database"
	"github.com/vendra/vendra/internal/port/messagequeue"
)

// MarketplaceService runs the startup-layer provisioning workflow and the
// owner-facing subscription and profile operations.
type MarketplaceService struct {
	store   database.Store
	queue   messagequeue.Queue
	metrics *otel.Metrics
	cfg     *config.Marketplace
}

// NewMarketplaceService creates a new MarketplaceService. metrics may be nil.
func NewMarketplaceService(store database.Store, queue messagequeue.Queue, metrics *otel.Metrics, cfg *config.Marketplace) *MarketplaceService {
	return &MarketplaceService{store: store, queue: queue, metrics: metrics, cfg: cfg}
}

// tenantProvisionedEvent is the payload published after provisioning commits.
type tenantProvisionedEvent struct {
	TenantID  string    `json:"tenant_id"`
	Subdomain string    `json:"subdomain"`
	OwnerID   string    `json:"owner_id"`
	PlanID    string    `json:"plan_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Provision creates a complete marketplace for the owner: subscription,
// tenant, admin account, settings, seed categories and display defaults. The
// store persists the bundle in one transaction, so a failure anywhere leaves
// nothing behind.
func (s *MarketplaceService) Provision(ctx context.Context, ownerID string, req *marketplace.CreateRequest) (*marketplace.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, span := otel.StartProvisionSpan(ctx, ownerID, req.Subdomain)
	defer span.End()

	owner, err := s.store.GetUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	plan, err := s.store.GetPlan(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, req.PlanID)
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: plan %q is not active", domain.ErrValidation, plan.Name)
	}
	// A custom domain on a plan without custom-domain support is dropped;
	// the marketplace still goes live on its subdomain.
	customDomain := req.CustomDomain
	if !plan.CustomDomainAllowed {
		customDomain = ""
	}

	// Advisory pre-check. The partial unique index on live subscriptions is
	// what actually enforces this under concurrency.
	if _, err := s.store.GetActiveSubscription(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("%w: owner already has a live subscription", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check subscription: %w", err)
	}

	trialEnd := req.TrialEnd
	if trialEnd.IsZero() {
		trialEnd = time.Now().Add(subscription.TrialPeriod)
	}

	tenantID := uuid.NewString()
	p := &marketplace.Provision{
		Subscription: subscription.Subscription{
			ID:                 uuid.NewString(),
			CustomerID:         ownerID,
			PlanID:             plan.ID,
			BillingCycle:       req.BillingCycle,
			Status:             subscription.StatusTrial,
			TrialEnd:           trialEnd,
			CurrentPeriodStart: time.Now().UTC(),
		},
		Tenant: tenant.Tenant{
			ID:                 tenantID,
			Name:               req.Name,
			Subdomain:          req.Subdomain,
			CustomDomain:       customDomain,
			OwnerID:            ownerID,
			SubscriptionStatus: tenant.StatusTrial,
			IsActive:           true,
		},
		AdminUser: user.User{
			ID:           uuid.NewString(),
			Email:        owner.Email,
			Name:         owner.Name,
			PasswordHash: owner.PasswordHash,
			Role:         user.RoleAdmin,
			TenantID:     tenantID,
			Enabled:      true,
		},
		Settings:   s.buildSettings(tenantID, req),
		Categories: category.DefaultSeed(tenantID),
		Displays:   field.SystemDisplayDefaults(tenantID),
	}
	for i := range p.Categories {
		p.Categories[i].ID = uuid.NewString()
	}
	for i := range p.Displays {
		p.Displays[i].ID = uuid.NewString()
	}

	if err := s.store.ProvisionMarketplace(ctx, p); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TenantsProvisioned.Add(ctx, 1)
	}
	publishEvent(ctx, s.queue, messagequeue.SubjectTenantProvisioned, tenantProvisionedEvent{
		TenantID:  tenantID,
		Subdomain: req.Subdomain,
		OwnerID:   ownerID,
		PlanID:    plan.ID,
		CreatedAt: time.Now().UTC(),
	})

	base := fmt.Sprintf("https://%s.%s", req.Subdomain, s.cfg.BaseDomain)
	if customDomain != "" {
		base = "https://" + customDomain
	}
	return &marketplace.Result{
		Tenant:         p.Tenant,
		Subscription:   p.Subscription,
		MarketplaceURL: base,
		AdminLoginURL:  base + s.cfg.AdminPath,
	}, nil
}

func (s *MarketplaceService) buildSettings(tenantID string, req *marketplace.CreateRequest) tenant.Settings {
	settings := tenant.DefaultSettings(tenantID, req.CompanyName)
	if settings.CompanyName == "" {
		settings.CompanyName = req.Name
	}
	if req.PrimaryColor != "" {
		settings.PrimaryColor = req.PrimaryColor
	}
	if req.LogoURL != "" {
		settings.LogoURL = req.LogoURL
	}
	if req.PublicAccess != nil {
		settings.PublicAccess = *req.PublicAccess
	}
	return settings
}

// CheckSubdomain reports whether a subdomain can be claimed right now. A
// positive answer can still lose a race; provisioning handles that as a
// conflict.
func (s *MarketplaceService) CheckSubdomain(ctx context.Context, subdomain string) (*marketplace.SubdomainCheck, error) {
	check := &marketplace.SubdomainCheck{Subdomain: subdomain}
	if err := tenant.ValidateSubdomain(subdomain); err != nil {
		if tenant.IsReserved(subdomain) {
			check.Reason = "reserved"
		} else {
			check.Reason = "invalid format"
		}
		return check, nil
	}
	taken, err := s.store.SubdomainTaken(ctx, subdomain)
	if err != nil {
		return nil, fmt.Errorf("check subdomain: %w", err)
	}
	if taken {
		check.Reason = "taken"
		return check, nil
	}
	check.Available = true
	return check, nil
}

var suggestionSuffixes = []string{"store", "shop", "parts", "pro", "biz"}

// SuggestSubdomains derives up to five available subdomains from a business
// name: the slug itself, suffixed variants, then numbered fallbacks.
func (s *MarketplaceService) SuggestSubdomains(ctx context.Context, name string) ([]string, error) {
	base := Slugify(name)
	if base == "" {
		return nil, fmt.Errorf("%w: name yields no usable subdomain", domain.ErrValidation)
	}

	candidates := []string{base}
	for _, suffix := range suggestionSuffixes {
		candidates = append(candidates, base+"-"+suffix)
	}
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, fmt.Sprintf("%s%d", base, i))
	}

	out := make([]string, 0, 5)
	for _, c := range candidates {
		if len(out) == 5 {
			break
		}
		if tenant.ValidateSubdomain(c) != nil {
			continue
		}
		taken, err := s.store.SubdomainTaken(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("check subdomain: %w", err)
		}
		if !taken {
			out = append(out, c)
		}
	}
	return out, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a business name and collapses every non-alphanumeric
// run into a single hyphen, trimming to a DNS-safe 63 characters.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 63 {
		slug = strings.Trim(slug[:63], "-")
	}
	return slug
}

// MyMarketplaces returns every tenant owned by the given startup user.
func (s *MarketplaceService) MyMarketplaces(ctx context.Context, ownerID string) ([]tenant.Tenant, error) {
	return s.store.ListTenantsByOwner(ctx, ownerID)
}

// ListPlans returns the active subscription plans.
func (s *MarketplaceService) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	return s.store.ListPlans(ctx)
}

// Plan returns one plan by ID.
func (s *MarketplaceService) Plan(ctx context.Context, id string) (*subscription.Plan, error) {
	return s.store.GetPlan(ctx, id)
}

// ActiveSubscription returns the customer's live (trial or active)
// subscription.
func (s *MarketplaceService) ActiveSubscription(ctx context.Context, customerID string) (*subscription.Subscription, error) {
	return s.store.GetActiveSubscription(ctx, customerID)
}

// MySubscriptions returns all subscriptions of the given customer, newest
// first.
func (s *MarketplaceService) MySubscriptions(ctx context.Context, customerID string) ([]subscription.Subscription, error) {
	return s.store.ListSubscriptionsByCustomer(ctx, customerID)
}

// GetProfile returns the startup profile for a user, creating it from the
// user record on first access.
func (s *MarketplaceService) GetProfile(ctx context.Context, userID string) (*user.StartupProfile, error) {
	p, err := s.store.GetStartupProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	p = &user.StartupProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.Name,
	}
	if err := s.store.CreateStartupProfile(ctx, p); err != nil {
		// Lost a create race; the row exists now.
		if errors.Is(err, domain.ErrConflict) {
			return s.store.GetStartupProfile(ctx, userID)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies partial updates to a startup profile.
func (s *MarketplaceService) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (*user.StartupProfile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, fmt.Errorf("%w: full_name must not be empty", domain.ErrValidation)
		}
		p.FullName = *req.FullName
	}
	if req.CompanyName != nil {
		p.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if err := s.store.UpdateStartupProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
