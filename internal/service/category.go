package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/category"
	"github.com/vendra/vendra/internal/port/database"
)

// CategoryService manages a tenant's catalog hierarchy.
type CategoryService struct {
	store database.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store database.Store) *CategoryService {
	return &CategoryService{store: store}
}

// List returns all categories of a tenant as a flat slice.
func (s *CategoryService) List(ctx context.Context, tenantID string) ([]category.Category, error) {
	return s.store.ListCategories(ctx, tenantID)
}

// Tree returns the tenant's categories as a sorted hierarchy with per-node
// product counts.
func (s *CategoryService) Tree(ctx context.Context, tenantID string) ([]*category.TreeNode, error) {
	cats, err := s.store.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CategoryProductCounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return category.BuildTree(cats, counts), nil
}

// Get returns one category by ID.
func (s *CategoryService) Get(ctx context.Context, tenantID, id string) (*category.Category, error) {
	return s.store.GetCategory(ctx, tenantID, id)
}

// Create validates and creates a category. The parent, when given, must
// exist within the same tenant.
func (s *CategoryService) Create(ctx context.Context, tenantID string, req category.CreateRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ParentID != "" {
		if _, err := s.store.GetCategory(ctx, tenantID, req.ParentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category not found", domain.ErrValidation)
			}
			return nil, err
		}
	}

	c := &category.Category{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsVisible:   true,
	}
	if req.IsVisible != nil {
		c.IsVisible = *req.IsVisible
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies partial updates to a category. Reparenting rejects, in
// order: the category as its own parent, an unknown parent, and a parent
// inside the category's own subtree.
func (s *CategoryService) Update(ctx context.Context, tenantID, id string, req category.UpdateRequest) (*category.Category, error) {
	c, err := s.store.GetCategory(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil && *req.ParentID != c.ParentID {
		if err := s.checkReparent(ctx, tenantID, id, *req.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = *req.ParentID
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		c.IsVisible = *req.IsVisible
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) checkReparent(ctx context.Context, tenantID, id, newParent string) error {
	if newParent == "" {
		return nil // move to root
	}
	if newParent == id {
		return fmt.Errorf("%w: category cannot be its own parent", domain.ErrValidation)
	}
	if _, err := s.store.GetCategory(ctx, tenantID, newParent); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: parent category not found", domain.ErrValidation)
		}
		return err
	}
	descendant, err := s.store.IsCategoryDescendant(ctx, tenantID, id, newParent)
	if err != nil {
		return err
	}
	if descendant {
		return fmt.Errorf("%w: parent is a descendant of the category", domain.ErrValidation)
	}
	return nil
}

// Delete removes a category. Categories with children or linked products
// cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.store.GetCategory(ctx, tenantID, id); err != nil {
		return err
	}
	children, err := s.store.CountCategoryChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: category has %d child categories", domain.ErrConflict, children)
	}
	products, err := s.store.CountProductsInCategory(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return fmt.Errorf("%w: category has %d linked products", domain.ErrConflict, products)
	}
	return s.store.DeleteCategory(ctx, tenantID, id)
}
