// Package subscription defines subscription plans and customer subscriptions.
package subscription

import (
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Subscription status values.
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Billing cycle values.
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// TrialPeriod is the default trial length granted at provisioning.
const TrialPeriod = 14 * 24 * time.Hour

// Plan is read-only reference data describing what a subscription tier allows.
type Plan struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	PriceMonthly        float64 `json:"price_monthly"`
	PriceYearly         float64 `json:"price_yearly"`
	CustomDomainAllowed bool    `json:"custom_domain_allowed"`
	MaxProducts         int     `json:"max_products"`
	MaxCategories       int     `json:"max_categories"`
	IsActive            bool    `json:"is_active"`
}

// Subscription ties a customer to a plan. TenantID is empty until the
// provisioning workflow links the subscription to its tenant.
type Subscription struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	PlanID             string    `json:"plan_id"`
	TenantID           string    `json:"tenant_id,omitempty"`
	BillingCycle       string    `json:"billing_cycle"`
	Status             string    `json:"status"`
	TrialEnd           time.Time `json:"trial_end"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CreatedAt          time.Time `json:"created_at"`
}

// ValidateCycle checks that c is a known billing cycle.
func ValidateCycle(c string) error {
	if c != CycleMonthly && c != CycleYearly {
		return fmt.Errorf("%w: billing_cycle must be %q or %q", domain.ErrValidation, CycleMonthly, CycleYearly)
	}
	return nil
}
