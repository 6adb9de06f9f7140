package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/product"
	"github.com/vendra/vendra/internal/port/database"
)

// ProductService manages a tenant's product catalog.
type ProductService struct {
	store database.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store database.Store) *ProductService {
	return &ProductService{store: store}
}

// List returns a filtered, paginated page of products plus the total match
// count.
func (s *ProductService) List(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	f.Normalize()
	return s.store.ListProducts(ctx, tenantID, f)
}

// PublicSearch is the storefront listing: visible products only, and only
// when the tenant's storefront is publicly accessible.
func (s *ProductService) PublicSearch(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	settings, err := s.store.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if !settings.PublicAccess {
		return nil, 0, fmt.Errorf("%w: storefront is not public", domain.ErrNotFound)
	}
	f.Normalize()
	return s.store.SearchPublicProducts(ctx, tenantID, f)
}

// Get returns one product by ID.
func (s *ProductService) Get(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return s.store.GetProduct(ctx, tenantID, id)
}

// Create validates and creates a product with its category links.
func (s *ProductService) Create(ctx context.Context, tenantID string, req product.CreateRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, tenantID, req.Categories); err != nil {
		return nil, err
	}

	p := &product.Product{
		ID:               uuid.NewString(),
		TenantID:         tenantID,
		Reference:        req.Reference,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		StockQuantity:    req.StockQuantity,
		IsVisible:        true,
		IsSellable:       true,
		FeaturedImageURL: req.FeaturedImageURL,
	}
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
	if req.IsSellable != nil {
		p.IsSellable = *req.IsSellable
	}
	if err := s.store.CreateProduct(ctx, p, req.Categories); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies partial updates to a product. A non-nil Categories slice
// replaces the full link set; nil leaves links untouched.
func (s *ProductService) Update(ctx context.Context, tenantID, id string, req product.UpdateRequest) (*product.Product, error) {
	p, err := s.store.GetProduct(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
		}
		p.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock_quantity must not be negative", domain.ErrValidation)
		}
		p.StockQuantity = *req.StockQuantity
	}
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
	if req.IsSellable != nil {
		p.IsSellable = *req.IsSellable
	}
	if req.FeaturedImageURL != nil {
		p.FeaturedImageURL = *req.FeaturedImageURL
	}
	if req.Categories != nil {
		if err := s.checkLinks(ctx, tenantID, req.Categories); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateProduct(ctx, p, req.Categories); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and, via cascade, its links and field values.
func (s *ProductService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.DeleteProduct(ctx, tenantID, id)
}

// checkLinks verifies every linked category belongs to the tenant and that
// at most one link is primary.
func (s *ProductService) checkLinks(ctx context.Context, tenantID string, links []product.CategoryLink) error {
	primaries := 0
	for i, l := range links {
		if l.CategoryID == "" {
			return fmt.Errorf("%w: categories[%d].category_id is required", domain.ErrValidation, i)
		}
		if l.IsPrimary {
			primaries++
		}
		if _, err := s.store.GetCategory(ctx, tenantID, l.CategoryID); err != nil {
			return fmt.Errorf("%w: category %s not found", domain.ErrValidation, l.CategoryID)
		}
	}
	if primaries > 1 {
		return fmt.Errorf("%w: at most one category link may be primary", domain.ErrValidation)
	}
	return nil
}
