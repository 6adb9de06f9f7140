// Package tenant defines the tenant domain model for multi-tenancy.
package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Subscription status values mirrored onto the tenant row.
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusSuspended = "suspended"
)

// Tenant represents one provisioned marketplace instance.
type Tenant struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Subdomain          string    `json:"subdomain"`
	CustomDomain       string    `json:"custom_domain,omitempty"`
	OwnerID            string    `json:"owner_id"`
	SubscriptionStatus string    `json:"subscription_status"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Settings holds per-tenant storefront branding and display toggles (1:1).
type Settings struct {
	TenantID       string    `json:"tenant_id"`
	CompanyName    string    `json:"company_name"`
	PrimaryColor   string    `json:"primary_color"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PublicAccess   bool      `json:"public_access"`
	ShowPrices     bool      `json:"show_prices"`
	ShowStock      bool      `json:"show_stock"`
	ShowCategories bool      `json:"show_categories"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings seeded when a tenant is provisioned
// without explicit branding.
func DefaultSettings(tenantID, companyName string) Settings {
	return Settings{
		TenantID:       tenantID,
		CompanyName:    companyName,
		PrimaryColor:   "#1f2937",
		PublicAccess:   true,
		ShowPrices:     true,
		ShowStock:      true,
		ShowCategories: true,
	}
}

// UpdateSettingsRequest holds the fields that can be changed on Settings.
type UpdateSettingsRequest struct {
	CompanyName    *string `json:"company_name,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	PublicAccess   *bool   `json:"public_access,omitempty"`
	ShowPrices     *bool   `json:"show_prices,omitempty"`
	ShowStock      *bool   `json:"show_stock,omitempty"`
	ShowCategories *bool   `json:"show_categories,omitempty"`
}

// subdomainPattern matches a DNS-safe label: lowercase alphanumeric, inner
// hyphens, 1-63 characters.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// reservedSubdomains can never be claimed by a tenant.
var reservedSubdomains = map[string]bool{
	"www":     true,
	"api":     true,
	"admin":   true,
	"app":     true,
	"mail":    true,
	"ftp":     true,
	"blog":    true,
	"shop":    true,
	"store":   true,
	"support": true,
}

// ValidateSubdomain checks the reserved-word list (case-insensitively) and
// then the format. It does not check availability; that requires the store.
func ValidateSubdomain(s string) error {
	if IsReserved(s) {
		return fmt.Errorf("%w: subdomain %q is reserved", domain.ErrValidation, s)
	}
	if !subdomainPattern.MatchString(s) {
		return fmt.Errorf("%w: subdomain must be a DNS-safe lowercase label", domain.ErrValidation)
	}
	return nil
}

// IsReserved reports whether s is on the reserved-word list, ignoring case.
func IsReserved(s string) bool {
	return reservedSubdomains[strings.ToLower(s)]
}
