package postgres

import (
	"context"
	"fmt"

	"github.com/vendra/vendra/internal/domain/subscription"
)

const planCols = `id, name, price_monthly, price_yearly, custom_domain_allowed, max_products, max_categories, is_active`

func scanPlan(row scannable) (*subscription.Plan, error) {
	var p subscription.Plan
	err := row.Scan(&p.ID, &p.Name, &p.PriceMonthly, &p.PriceYearly,
		&p.CustomDomainAllowed, &p.MaxProducts, &p.MaxCategories, &p.IsActive)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+planCols+` FROM subscription_plans WHERE is_active ORDER BY price_monthly`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return orEmpty(plans), rows.Err()
}

func (s *Store) GetPlan(ctx context.Context, id string) (*subscription.Plan, error) {
	p, err := scanPlan(s.pool.QueryRow(ctx,
		`SELECT `+planCols+` FROM subscription_plans WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get plan %s", id)
	}
	return p, nil
}

const subscriptionCols = `id, customer_id, plan_id, COALESCE(tenant_id::text, ''), billing_cycle, status, trial_end, current_period_start, created_at`

func scanSubscription(row scannable) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := row.Scan(&sub.ID, &sub.CustomerID, &sub.PlanID, &sub.TenantID,
		&sub.BillingCycle, &sub.Status, &sub.TrialEnd, &sub.CurrentPeriodStart, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]subscription.Subscription, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+subscriptionCols+` FROM subscriptions WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	return orEmpty(subs), rows.Err()
}

func (s *Store) GetActiveSubscription(ctx context.Context, customerID string) (*subscription.Subscription, error) {
	sub, err := scanSubscription(s.pool.QueryRow(ctx,
		`SELECT `+subscriptionCols+` FROM subscriptions
		 WHERE customer_id = $1 AND status IN ('trial', 'active')`, customerID))
	if err != nil {
		return nil, notFoundWrap(err, "get active subscription for %s", customerID)
	}
	return sub, nil
}
