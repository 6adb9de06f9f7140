package postgres

import (
	"context"
	"fmt"

	"github.com/vendra/vendra/internal/domain/marketplace"
	"github.com/vendra/vendra/internal/domain/tenant"
)

const tenantCols = `id, name, subdomain, COALESCE(custom_domain, ''), owner_id, subscription_status, is_active, created_at, updated_at`

func scanTenant(row scannable) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Subdomain, &t.CustomDomain, &t.OwnerID,
		&t.SubscriptionStatus, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return t, nil
}

func (s *Store) GetTenantBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE subdomain = $1`, subdomain))
	if err != nil {
		return nil, notFoundWrap(err, "get tenant by subdomain %s", subdomain)
	}
	return t, nil
}

func (s *Store) ListTenantsByOwner(ctx context.Context, ownerID string) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE owner_id = $1 ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tenants by owner: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return orEmpty(tenants), rows.Err()
}

func (s *Store) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE subdomain = $1)`, subdomain).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check subdomain %s: %w", subdomain, err)
	}
	return taken, nil
}

const settingsCols = `tenant_id, company_name, primary_color, logo_url, public_access, show_prices, show_stock, show_categories, updated_at`

func scanSettings(row scannable) (*tenant.Settings, error) {
	var st tenant.Settings
	err := row.Scan(&st.TenantID, &st.CompanyName, &st.PrimaryColor, &st.LogoURL,
		&st.PublicAccess, &st.ShowPrices, &st.ShowStock, &st.ShowCategories, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) GetTenantSettings(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	st, err := scanSettings(s.pool.QueryRow(ctx,
		`SELECT `+settingsCols+` FROM tenant_settings WHERE tenant_id = $1`, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get settings for tenant %s", tenantID)
	}
	return st, nil
}

func (s *Store) UpdateTenantSettings(ctx context.Context, st *tenant.Settings) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenant_settings
		 SET company_name = $2, primary_color = $3, logo_url = $4, public_access = $5,
		     show_prices = $6, show_stock = $7, show_categories = $8, updated_at = now()
		 WHERE tenant_id = $1`,
		st.TenantID, st.CompanyName, st.PrimaryColor, st.LogoURL, st.PublicAccess,
		st.ShowPrices, st.ShowStock, st.ShowCategories)
	return execExpectOne(tag, err, "update settings for tenant %s", st.TenantID)
}

// ProvisionMarketplace persists the whole provisioning bundle in one
// transaction: subscription (unlinked), tenant, admin user, settings, default
// categories, system display rows, and finally the subscription-tenant link.
// Unique-constraint violations (subdomain taken, live subscription already
// present) surface as domain.ErrConflict and leave nothing behind.
func (s *Store) ProvisionMarketplace(ctx context.Context, p *marketplace.Provision) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("provision: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sub := &p.Subscription
	_, err = tx.Exec(ctx,
		`INSERT INTO subscriptions (id, customer_id, plan_id, billing_cycle, status, trial_end, current_period_start)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.CustomerID, sub.PlanID, sub.BillingCycle, sub.Status, sub.TrialEnd, sub.CurrentPeriodStart)
	if err != nil {
		return conflictWrap(err, "provision: create subscription")
	}

	t := &p.Tenant
	_, err = tx.Exec(ctx,
		`INSERT INTO tenants (id, name, subdomain, custom_domain, owner_id, subscription_status, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.Subdomain, nullIfEmpty(t.CustomDomain), t.OwnerID, t.SubscriptionStatus, t.IsActive)
	if err != nil {
		return conflictWrap(err, "provision: create tenant %s", t.Subdomain)
	}

	u := &p.AdminUser
	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, tenant_id, enabled)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.TenantID, u.Enabled)
	if err != nil {
		return conflictWrap(err, "provision: create admin user")
	}

	st := &p.Settings
	_, err = tx.Exec(ctx,
		`INSERT INTO tenant_settings (tenant_id, company_name, primary_color, logo_url, public_access, show_prices, show_stock, show_categories)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		st.TenantID, st.CompanyName, st.PrimaryColor, st.LogoURL, st.PublicAccess,
		st.ShowPrices, st.ShowStock, st.ShowCategories)
	if err != nil {
		return fmt.Errorf("provision: create settings: %w", err)
	}

	// Link the subscription to its tenant now that both rows exist.
	_, err = tx.Exec(ctx,
		`UPDATE subscriptions SET tenant_id = $2 WHERE id = $1`, sub.ID, t.ID)
	if err != nil {
		return fmt.Errorf("provision: link subscription: %w", err)
	}
	sub.TenantID = t.ID

	for i := range p.Categories {
		c := &p.Categories[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO categories (id, tenant_id, name, description, parent_id, sort_order, is_visible)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.TenantID, c.Name, c.Description, nullIfEmpty(c.ParentID), c.SortOrder, c.IsVisible)
		if err != nil {
			return conflictWrap(err, "provision: seed category %s", c.Name)
		}
	}

	for i := range p.Displays {
		d := &p.Displays[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO product_field_displays (id, tenant_id, field_type, field_name, catalog_order, show_in_catalog, product_order, show_in_product)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, d.TenantID, d.FieldType, d.FieldName, d.CatalogOrder, d.ShowInCatalog, d.ProductOrder, d.ShowInProduct)
		if err != nil {
			return conflictWrap(err, "provision: seed display %s", d.FieldName)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("provision: commit: %w", err)
	}
	return nil
}
