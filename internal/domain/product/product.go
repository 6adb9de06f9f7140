// Package product defines the tenant product catalog model.
package product

import (
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Product is one catalog entry. Reference is unique per tenant.
type Product struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	Reference        string    `json:"reference"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Price            float64   `json:"price"`
	StockQuantity    int       `json:"stock_quantity"`
	IsVisible        bool      `json:"is_visible"`
	IsSellable       bool      `json:"is_sellable"`
	FeaturedImageURL string    `json:"featured_image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CategoryLink ties a product to a category; one link per product may be
// flagged primary.
type CategoryLink struct {
	CategoryID string `json:"category_id"`
	IsPrimary  bool   `json:"is_primary"`
}

// CreateRequest holds the fields required to create a product.
type CreateRequest struct {
	Reference        string         `json:"reference"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Price            float64        `json:"price"`
	StockQuantity    int            `json:"stock_quantity"`
	IsVisible        *bool          `json:"is_visible,omitempty"`
	IsSellable       *bool          `json:"is_sellable,omitempty"`
	FeaturedImageURL string         `json:"featured_image_url,omitempty"`
	Categories       []CategoryLink `json:"categories,omitempty"`
}

// Validate checks a create request before any write.
func (r *CreateRequest) Validate() error {
	if r.Reference == "" {
		return fmt.Errorf("%w: reference is required", domain.ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if r.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must not be negative", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds partial updates to a product. Categories, when non-nil,
// replaces the full category link set.
type UpdateRequest struct {
	Name             *string        `json:"name,omitempty"`
	Description      *string        `json:"description,omitempty"`
	Price            *float64       `json:"price,omitempty"`
	StockQuantity    *int           `json:"stock_quantity,omitempty"`
	IsVisible        *bool          `json:"is_visible,omitempty"`
	IsSellable       *bool          `json:"is_sellable,omitempty"`
	FeaturedImageURL *string        `json:"featured_image_url,omitempty"`
	Categories       []CategoryLink `json:"categories,omitempty"`
}

// ListFilter narrows product listings. Page is 1-based.
type ListFilter struct {
	Search     string
	CategoryID string
	Page       int
	Limit      int
}

// Normalize clamps paging values to sane defaults.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}
