// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/domain/marketplace"
	"github.com/vendra/vendra/internal/domain/order"
	"github.com/vendra/vendra/internal/domain/product"
	"github.com/vendra/vendra/internal/domain/subscription"
	"github.com/vendra/vendra/internal/domain/tenant"
	"github.com/vendra/vendra/internal/domain/user"
)

// Store is the port interface for database operations. Every tenant-scoped
// method takes the tenant ID explicitly; there is no ambient tenant state.
type Store interface {
	// Tenants
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	GetTenantBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	ListTenantsByOwner(ctx context.Context, ownerID string) ([]tenant.Tenant, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
	GetTenantSettings(ctx context.Context, tenantID string) (*tenant.Settings, error)
	UpdateTenantSettings(ctx context.Context, s *tenant.Settings) error

	// Provisioning. Persists the whole row bundle in one transaction; a
	// failure anywhere leaves no partial state behind.
	ProvisionMarketplace(ctx context.Context, p *marketplace.Provision) error

	// Startup profiles
	GetStartupProfile(ctx context.Context, id string) (*user.StartupProfile, error)
	CreateStartupProfile(ctx context.Context, p *user.StartupProfile) error
	UpdateStartupProfile(ctx context.Context, p *user.StartupProfile) error

	// Plans and subscriptions
	ListPlans(ctx context.Context) ([]subscription.Plan, error)
	GetPlan(ctx context.Context, id string) (*subscription.Plan, error)
	ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]subscription.Subscription, error)
	GetActiveSubscription(ctx context.Context, customerID string) (*subscription.Subscription, error)

	// Categories
	ListCategories(ctx context.Context, tenantID string) ([]category.Category, error)
	GetCategory(ctx context.Context, tenantID, id string) (*category.Category, error)
	CreateCategory(ctx context.Context, c *category.Category) error
	UpdateCategory(ctx context.Context, c *category.Category) error
	DeleteCategory(ctx context.Context, tenantID, id string) error
	CountCategoryChildren(ctx context.Context, tenantID, id string) (int, error)
	CountProductsInCategory(ctx context.Context, tenantID, id string) (int, error)
	IsCategoryDescendant(ctx context.Context, tenantID, rootID, candidateID string) (bool, error)
	CategoryProductCounts(ctx context.Context, tenantID string) (map[string]int, error)

	// Product fields
	ListFields(ctx context.Context, tenantID string) ([]field.Field, error)
	GetField(ctx context.Context, tenantID, id string) (*field.Field, error)
	CreateFieldWithDisplay(ctx context.Context, f *field.Field) error
	UpdateField(ctx context.Context, f *field.Field) error
	DeleteField(ctx context.Context, tenantID, id string) error
	UpsertFieldValue(ctx context.Context, tenantID, productID, fieldID, value string) error
	ListFieldValues(ctx context.Context, tenantID, productID string) ([]field.Value, error)
	ListFieldDisplays(ctx context.Context, tenantID string) ([]field.Display, error)
	SeedSystemDisplays(ctx context.Context, tenantID string) error
	UpdateDisplayOrders(ctx context.Context, tenantID string, items []field.ReorderItem) error

	// Products
	ListProducts(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error)
	SearchPublicProducts(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error)
	GetProduct(ctx context.Context, tenantID, id string) (*product.Product, error)
	CreateProduct(ctx context.Context, p *product.Product, links []product.CategoryLink) error
	UpdateProduct(ctx context.Context, p *product.Product, links []product.CategoryLink) error
	DeleteProduct(ctx context.Context, tenantID, id string) error

	// Orders. CreateOrder allocates the order number, inserts the order and
	// its items and decrements product stock in one transaction.
	CreateOrder(ctx context.Context, o *order.Order, items []order.Item) error
	ListOrders(ctx context.Context, tenantID string, page, limit int) ([]order.Order, int, error)
	GetOrder(ctx context.Context, tenantID, id string) (*order.Order, []order.Item, error)
	UpdateOrderStatus(ctx context.Context, tenantID, id, status string) error

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email, tenantID string) (*user.User, error)
	UpdateUser(ctx context.Context, u *user.User) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, rt *user.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*user.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, id string) error
	DeleteRefreshTokensByUser(ctx context.Context, userID string) error
	RotateRefreshToken(ctx context.Context, oldTokenHash string, newRT *user.RefreshToken) error

	// Health
	Ping(ctx context.Context) error
}
