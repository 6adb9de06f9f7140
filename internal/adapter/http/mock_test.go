package http_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/domain/marketplace"
	"github.com/vendra/vendra/internal/domain/order"
	"github.com/vendra/vendra/internal/domain/product"
	"github.com/vendra/vendra/internal/domain/subscription"
	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/domain/user"
)

// mockStore is an in-memory database.Store for route tests. It mirrors the
// constraint behavior of the real store: unique subdomains, one live
// subscription per customer, unique email per tenant scope.
type mockStore struct {
	mu sync.Mutex

	tenants    map[string]tenant.Tenant
	settings   map[string]tenant.Settings
	profiles   map[string]user.StartupProfile
	plans      map[string]subscription.Plan
	subs       map[string]subscription.Subscription
	categories map[string]category.Category
	fields     map[string]field.Field
	values     map[string]field.Value // productID + "/" + fieldID
	displays   map[string]field.Display
	products   map[string]product.Product
	links      map[string][]product.CategoryLink // by product ID
	orders     map[string]order.Order
	orderItems map[string][]order.Item
	counters   map[string]int // tenantID + "/" + day
	users      map[string]user.User
	refresh    map[string]user.RefreshToken
}

func (m *mockStore) init() {
	if m.tenants != nil {
		return
	}
	m.tenants = map[string]tenant.Tenant{}
	m.settings = map[string]tenant.Settings{}
	m.profiles = map[string]user.StartupProfile{}
	m.plans = map[string]subscription.Plan{}
	m.subs = map[string]subscription.Subscription{}
	m.categories = map[string]category.Category{}
	m.fields = map[string]field.Field{}
	m.values = map[string]field.Value{}
	m.displays = map[string]field.Display{}
	m.products = map[string]product.Product{}
	m.links = map[string][]product.CategoryLink{}
	m.orders = map[string]order.Order{}
	m.orderItems = map[string][]order.Item{}
	m.counters = map[string]int{}
	m.users = map[string]user.User{}
	m.refresh = map[string]user.RefreshToken{}
}

// --- Tenants ---

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *mockStore) GetTenantBySubdomain(_ context.Context, subdomain string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, t := range m.tenants {
		if t.Subdomain == subdomain {
			out := t
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenantsByOwner(_ context.Context, ownerID string) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []tenant.Tenant
	for _, t := range m.tenants {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, t := range m.tenants {
		if t.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) GetTenantSettings(_ context.Context, tenantID string) (*tenant.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	s, ok := m.settings[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockStore) UpdateTenantSettings(_ context.Context, s *tenant.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.settings[s.TenantID]; !ok {
		return domain.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	m.settings[s.TenantID] = *s
	return nil
}

// --- Provisioning ---

func (m *mockStore) ProvisionMarketplace(_ context.Context, p *marketplace.Provision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, t := range m.tenants {
		if t.Subdomain == p.Tenant.Subdomain {
			return fmt.Errorf("%w: subdomain taken", domain.ErrConflict)
		}
	}
	for _, sub := range m.subs {
		if sub.CustomerID == p.Subscription.CustomerID &&
			(sub.Status == subscription.StatusTrial || sub.Status == subscription.StatusActive) {
			return fmt.Errorf("%w: live subscription exists", domain.ErrConflict)
		}
	}
	now := time.Now()
	p.Tenant.CreatedAt = now
	p.Subscription.TenantID = p.Tenant.ID
	p.Subscription.CreatedAt = now
	m.subs[p.Subscription.ID] = p.Subscription
	m.tenants[p.Tenant.ID] = p.Tenant
	m.users[p.AdminUser.ID] = p.AdminUser
	m.settings[p.Settings.TenantID] = p.Settings
	for _, c := range p.Categories {
		m.categories[c.ID] = c
	}
	for _, d := range p.Displays {
		m.displays[d.ID] = d
	}
	return nil
}

// --- Startup profiles ---

func (m *mockStore) GetStartupProfile(_ context.Context, id string) (*user.StartupProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *mockStore) CreateStartupProfile(_ context.Context, p *user.StartupProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.profiles[p.ID]; ok {
		return domain.ErrConflict
	}
	m.profiles[p.ID] = *p
	return nil
}

func (m *mockStore) UpdateStartupProfile(_ context.Context, p *user.StartupProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.profiles[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.profiles[p.ID] = *p
	return nil
}

// --- Plans and subscriptions ---

func (m *mockStore) ListPlans(_ context.Context) ([]subscription.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []subscription.Plan
	for _, p := range m.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMonthly < out[j].PriceMonthly })
	return out, nil
}

func (m *mockStore) GetPlan(_ context.Context, id string) (*subscription.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	p, ok := m.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *mockStore) ListSubscriptionsByCustomer(_ context.Context, customerID string) ([]subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []subscription.Subscription
	for _, s := range m.subs {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) GetActiveSubscription(_ context.Context, customerID string) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, s := range m.subs {
		if s.CustomerID == customerID &&
			(s.Status == subscription.StatusTrial || s.Status == subscription.StatusActive) {
			out := s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Categories ---

func (m *mockStore) ListCategories(_ context.Context, tenantID string) ([]category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []category.Category
	for _, c := range m.categories {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *mockStore) GetCategory(_ context.Context, tenantID, id string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	c, ok := m.categories[id]
	if !ok || c.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *mockStore) CreateCategory(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, existing := range m.categories {
		if existing.TenantID == c.TenantID && existing.Name == c.Name {
			return fmt.Errorf("%w: category name taken", domain.ErrConflict)
		}
	}
	c.CreatedAt = time.Now()
	m.categories[c.ID] = *c
	return nil
}

func (m *mockStore) UpdateCategory(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.categories[c.ID] = *c
	return nil
}

func (m *mockStore) DeleteCategory(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	c, ok := m.categories[id]
	if !ok || c.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockStore) CountCategoryChildren(_ context.Context, tenantID, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	n := 0
	for _, c := range m.categories {
		if c.TenantID == tenantID && c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CountProductsInCategory(_ context.Context, tenantID, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	n := 0
	for pid, ls := range m.links {
		p, ok := m.products[pid]
		if !ok || p.TenantID != tenantID {
			continue
		}
		for _, l := range ls {
			if l.CategoryID == id {
				n++
			}
		}
	}
	return n, nil
}

func (m *mockStore) IsCategoryDescendant(_ context.Context, tenantID, rootID, candidateID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	cur := candidateID
	for cur != "" {
		c, ok := m.categories[cur]
		if !ok || c.TenantID != tenantID {
			return false, nil
		}
		if c.ParentID == rootID {
			return true, nil
		}
		cur = c.ParentID
	}
	return false, nil
}

func (m *mockStore) CategoryProductCounts(_ context.Context, tenantID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	out := map[string]int{}
	for pid, ls := range m.links {
		p, ok := m.products[pid]
		if !ok || p.TenantID != tenantID {
			continue
		}
		for _, l := range ls {
			out[l.CategoryID]++
		}
	}
	return out, nil
}

// --- Product fields ---

func (m *mockStore) ListFields(_ context.Context, tenantID string) ([]field.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []field.Field
	for _, f := range m.fields {
		if f.TenantID == tenantID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockStore) GetField(_ context.Context, tenantID, id string) (*field.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	f, ok := m.fields[id]
	if !ok || f.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (m *mockStore) CreateFieldWithDisplay(_ context.Context, f *field.Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, existing := range m.fields {
		if existing.TenantID == f.TenantID && existing.Name == f.Name {
			return fmt.Errorf("%w: field name taken", domain.ErrConflict)
		}
	}
	f.CreatedAt = time.Now()
	m.fields[f.ID] = *f

	maxCatalog, maxProduct := -1, -1
	for _, d := range m.displays {
		if d.TenantID != f.TenantID {
			continue
		}
		if d.CatalogOrder > maxCatalog {
			maxCatalog = d.CatalogOrder
		}
		if d.ProductOrder > maxProduct {
			maxProduct = d.ProductOrder
		}
	}
	m.displays["display-"+f.ID] = field.Display{
		ID:            "display-" + f.ID,
		TenantID:      f.TenantID,
		FieldType:     field.DisplayCustom,
		FieldName:     f.Name,
		CatalogOrder:  maxCatalog + 1,
		ShowInCatalog: true,
		ProductOrder:  maxProduct + 1,
		ShowInProduct: true,
	}
	return nil
}

func (m *mockStore) UpdateField(_ context.Context, f *field.Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.fields[f.ID]; !ok {
		return domain.ErrNotFound
	}
	m.fields[f.ID] = *f
	return nil
}

func (m *mockStore) DeleteField(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	f, ok := m.fields[id]
	if !ok || f.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(m.fields, id)
	for key := range m.values {
		if strings.HasSuffix(key, "/"+id) {
			delete(m.values, key)
		}
	}
	for did, d := range m.displays {
		if d.TenantID == tenantID && d.FieldType == field.DisplayCustom && d.FieldName == f.Name {
			delete(m.displays, did)
		}
	}
	return nil
}

func (m *mockStore) UpsertFieldValue(_ context.Context, tenantID, productID, fieldID, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	f, ok := m.fields[fieldID]
	if !ok || f.TenantID != tenantID {
		return domain.ErrNotFound
	}
	p, ok := m.products[productID]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	m.values[productID+"/"+fieldID] = field.Value{
		ProductID: productID,
		FieldID:   fieldID,
		FieldName: f.Name,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *mockStore) ListFieldValues(_ context.Context, tenantID, productID string) ([]field.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []field.Value
	for _, v := range m.values {
		if v.ProductID != productID {
			continue
		}
		if f, ok := m.fields[v.FieldID]; ok && f.TenantID == tenantID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

func (m *mockStore) ListFieldDisplays(_ context.Context, tenantID string) ([]field.Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var out []field.Display
	for _, d := range m.displays {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CatalogOrder < out[j].CatalogOrder })
	return out, nil
}

func (m *mockStore) SeedSystemDisplays(_ context.Context, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, d := range m.displays {
		if d.TenantID == tenantID && d.FieldType == field.DisplaySystem {
			return nil
		}
	}
	for i, d := range field.SystemDisplayDefaults(tenantID) {
		d.ID = fmt.Sprintf("system-%s-%d", tenantID, i)
		m.displays[d.ID] = d
	}
	return nil
}

func (m *mockStore) UpdateDisplayOrders(_ context.Context, tenantID string, items []field.ReorderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, it := range items {
		d, ok := m.displays[it.ID]
		if !ok || d.TenantID != tenantID {
			continue
		}
		if it.CatalogOrder != nil && *it.CatalogOrder >= 0 {
			d.CatalogOrder = *it.CatalogOrder
		}
		if it.ProductOrder != nil && *it.ProductOrder >= 0 {
			d.ProductOrder = *it.ProductOrder
		}
		m.displays[it.ID] = d
	}
	return nil
}

// --- Products ---

func (m *mockStore) listProductsLocked(tenantID string, f product.ListFilter, publicOnly bool) ([]product.Product, int) {
	var all []product.Product
	for _, p := range m.products {
		if p.TenantID != tenantID {
			continue
		}
		if publicOnly && !p.IsVisible {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Reference), q) {
				continue
			}
		}
		if f.CategoryID != "" {
			found := false
			for _, l := range m.links[p.ID] {
				if l.CategoryID == f.CategoryID {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Reference < all[j].Reference })
	total := len(all)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return all[start:end], total
}

func (m *mockStore) ListProducts(_ context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	out, total := m.listProductsLocked(tenantID, f, false)
	return out, total, nil
}

func (m *mockStore) SearchPublicProducts(_ context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	out, total := m.listProductsLocked(tenantID, f, true)
	return out, total, nil
}

func (m *mockStore) GetProduct(_ context.Context, tenantID, id string) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *mockStore) CreateProduct(_ context.Context, p *product.Product, links []product.CategoryLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, existing := range m.products {
		if existing.TenantID == p.TenantID && existing.Reference == p.Reference {
			return fmt.Errorf("%w: reference taken", domain.ErrConflict)
		}
	}
	p.CreatedAt = time.Now()
	m.products[p.ID] = *p
	if len(links) > 0 {
		m.links[p.ID] = links
	}
	return nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *product.Product, links []product.CategoryLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.products[p.ID] = *p
	if links != nil {
		m.links[p.ID] = links
	}
	return nil
}

func (m *mockStore) DeleteProduct(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(m.products, id)
	delete(m.links, id)
	return nil
}

// --- Orders ---

func (m *mockStore) CreateOrder(_ context.Context, o *order.Order, items []order.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	day := time.Now()
	key := o.TenantID + "/" + day.Format("20060102")
	m.counters[key]++
	o.OrderNumber = order.FormatNumber(day, m.counters[key])
	o.CreatedAt = time.Now()
	m.orders[o.ID] = *o
	m.orderItems[o.ID] = items
	for _, it := range items {
		p := m.products[it.ProductID]
		p.StockQuantity -= it.Quantity
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}
		m.products[it.ProductID] = p
	}
	return nil
}

func (m *mockStore) ListOrders(_ context.Context, tenantID string, page, limit int) ([]order.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	var all []order.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderNumber > all[j].OrderNumber })
	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *mockStore) GetOrder(_ context.Context, tenantID, id string) (*order.Order, []order.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	o, ok := m.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil, domain.ErrNotFound
	}
	return &o, m.orderItems[id], nil
}

func (m *mockStore) UpdateOrderStatus(_ context.Context, tenantID, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	o, ok := m.orders[id]
	if !ok || o.TenantID != tenantID {
		return domain.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

// --- Users ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, existing := range m.users {
		if existing.Email == u.Email && existing.TenantID == u.TenantID {
			return fmt.Errorf("%w: email taken", domain.ErrConflict)
		}
	}
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email, tenantID string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, u := range m.users {
		if u.Email == email && u.TenantID == tenantID {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.users[u.ID] = *u
	return nil
}

// --- Refresh tokens ---

func (m *mockStore) CreateRefreshToken(_ context.Context, rt *user.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.refresh[rt.ID] = *rt
	return nil
}

func (m *mockStore) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*user.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, rt := range m.refresh {
		if rt.TokenHash == tokenHash {
			out := rt
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteRefreshToken(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	delete(m.refresh, id)
	return nil
}

func (m *mockStore) DeleteRefreshTokensByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for id, rt := range m.refresh {
		if rt.UserID == userID {
			delete(m.refresh, id)
		}
	}
	return nil
}

func (m *mockStore) RotateRefreshToken(_ context.Context, oldTokenHash string, newRT *user.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for id, rt := range m.refresh {
		if rt.TokenHash == oldTokenHash {
			delete(m.refresh, id)
			m.refresh[newRT.ID] = *newRT
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) Ping(context.Context) error { return nil }
