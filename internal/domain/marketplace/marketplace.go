// Package marketplace defines the provisioning workflow's request and result
// types.
package marketplace

import (
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/domain/subscription"
	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/domain/user"
)

// CreateRequest holds everything a startup owner submits to provision a new
// marketplace. TrialEnd is optional; when zero the default trial period
// applies.
type CreateRequest struct {
	Name         string    `json:"name"`
	Subdomain    string    `json:"subdomain"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	PlanID       string    `json:"plan_id"`
	BillingCycle string    `json:"billing_cycle"`
	CompanyName  string    `json:"company_name,omitempty"`
	PrimaryColor string    `json:"primary_color,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	PublicAccess *bool     `json:"public_access,omitempty"`
	TrialEnd     time.Time `json:"trial_end,omitempty"`
}

// Validate checks the request fields that need no store access.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if r.PlanID == "" {
		return fmt.Errorf("%w: plan_id is required", domain.ErrValidation)
	}
	if err := subscription.ValidateCycle(r.BillingCycle); err != nil {
		return err
	}
	return tenant.ValidateSubdomain(r.Subdomain)
}

// Provision bundles every row the workflow writes, so the store can persist
// the whole sequence in one transaction.
type Provision struct {
	Subscription subscription.Subscription
	Tenant       tenant.Tenant
	AdminUser    user.User
	Settings     tenant.Settings
	Categories   []category.Category
	Displays     []field.Display
}

// Result is returned to the owner after successful provisioning.
type Result struct {
	Tenant         tenant.Tenant             `json:"tenant"`
	Subscription   subscription.Subscription `json:"subscription"`
	MarketplaceURL string                    `json:"marketplace_url"`
	AdminLoginURL  string                    `json:"admin_login_url"`
}

// SubdomainCheck is the standalone availability probe used for live typing.
type SubdomainCheck struct {
	Subdomain string `json:"subdomain"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
