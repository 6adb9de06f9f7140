// Package http provides the HTTP handler and middleware adapters.
package http

import (
	"github.com/vendra/vendra/internal/service"
)

// Handlers bundles every service the HTTP layer exposes.
type Handlers struct {
	Auth        *service.AuthService
	Marketplace *service.MarketplaceService
	Tenants     *service.TenantService
	Categories  *service.CategoryService
	Fields      *service.FieldService
	Products    *service.ProductService
	Orders      *service.OrderService

	bodyLimit int64
}

// NewHandlers creates the handler set. bodyLimit caps JSON request bodies in
// bytes.
func NewHandlers(
	auth *service.AuthService,
	mkt *service.MarketplaceService,
	tenants *service.TenantService,
	categories *service.CategoryService,
	fields *service.FieldService,
	products *service.ProductService,
	orders *service.OrderService,
	bodyLimit int64,
) *Handlers {
	return &Handlers{
		Auth:        auth,
		Marketplace: mkt,
		Tenants:     tenants,
		Categories:  categories,
		Fields:      fields,
		Products:    products,
		Orders:      orders,
		bodyLimit:   bodyLimit,
	}
}
