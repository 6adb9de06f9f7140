// Package category defines tenant catalog categories and the tree builder.
package category

import (
	"fmt"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Category is a node in a tenant's catalog hierarchy. ParentID is empty for
// root categories. The parent chain is acyclic and stays within one tenant.
type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest holds the fields required to create a category.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsVisible   *bool  `json:"is_visible,omitempty"`
}

// Validate checks a create request before any write.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(r.Name) > 255 {
		return fmt.Errorf("%w: name exceeds 255 characters", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds partial updates to a category. A non-nil ParentID of ""
// moves the category to the root.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	IsVisible   *bool   `json:"is_visible,omitempty"`
}

// DefaultSeed returns the five categories seeded into every new marketplace.
func DefaultSeed(tenantID string) []Category {
	names := []struct{ name, desc string }{
		{"New Arrivals", "Recently added products"},
		{"Best Sellers", "Most popular products"},
		{"Promotions", "Discounted products"},
		{"Accessories", "Complementary products"},
		{"Uncategorized", "Products without a category"},
	}
	cats := make([]Category, 0, len(names))
	for i, n := range names {
		cats = append(cats, Category{
			TenantID:    tenantID,
			Name:        n.name,
			Description: n.desc,
			SortOrder:   i,
			IsVisible:   true,
		})
	}
	return cats
}
