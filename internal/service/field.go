package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/field"
	"github.com/vendra/vendra/internal/port/database"
)

// FieldService manages tenant-defined product fields, their values, and the
// storefront display configuration.
type FieldService struct {
	store database.Store
}

// NewFieldService creates a new FieldService.
func NewFieldService(store database.Store) *FieldService {
	return &FieldService{store: store}
}

// List returns all custom fields of a tenant.
func (s *FieldService) List(ctx context.Context, tenantID string) ([]field.Field, error) {
	return s.store.ListFields(ctx, tenantID)
}

// Get returns one field by ID.
func (s *FieldService) Get(ctx context.Context, tenantID, id string) (*field.Field, error) {
	return s.store.GetField(ctx, tenantID, id)
}

// Create validates a field definition and persists it together with its
// display row, appended to the end of both display orderings.
func (s *FieldService) Create(ctx context.Context, tenantID string, req field.CreateRequest) (*field.Field, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f := &field.Field{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Label:        req.Label,
		Type:         req.Type,
		IsRequired:   req.IsRequired,
		Options:      req.Options,
		DefaultValue: req.DefaultValue,
		SortOrder:    req.SortOrder,
		Active:       true,
	}
	if err := s.store.CreateFieldWithDisplay(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Update applies partial updates to a field definition. Name and type are
// immutable; stored values keep their meaning.
func (s *FieldService) Update(ctx context.Context, tenantID, id string, req field.UpdateRequest) (*field.Field, error) {
	f, err := s.store.GetField(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Label != nil {
		if *req.Label == "" {
			return nil, fmt.Errorf("%w: label must not be empty", domain.ErrValidation)
		}
		f.Label = *req.Label
	}
	if req.IsRequired != nil {
		f.IsRequired = *req.IsRequired
	}
	if req.Options != nil {
		if f.Type.HasOptions() && len(req.Options) == 0 {
			return nil, fmt.Errorf("%w: %s fields require a non-empty options list", domain.ErrValidation, f.Type)
		}
		f.Options = req.Options
	}
	if req.DefaultValue != nil {
		f.DefaultValue = *req.DefaultValue
	}
	if req.SortOrder != nil {
		f.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		f.Active = *req.Active
	}
	if err := s.store.UpdateField(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a field, its stored values, and its display row.
func (s *FieldService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.DeleteField(ctx, tenantID, id)
}

// SetProductValue parses a raw value against the field's declared type and
// upserts it for the product.
func (s *FieldService) SetProductValue(ctx context.Context, tenantID, productID, fieldID, raw string) error {
	f, err := s.store.GetField(ctx, tenantID, fieldID)
	if err != nil {
		return err
	}
	if !f.Active {
		return fmt.Errorf("%w: field %q is inactive", domain.ErrValidation, f.Name)
	}
	pv, err := field.Parse(f.Type, raw)
	if err != nil {
		return err
	}
	return s.store.UpsertFieldValue(ctx, tenantID, productID, fieldID, pv.Encode())
}

// ProductValues returns all stored field values for a product.
func (s *FieldService) ProductValues(ctx context.Context, tenantID, productID string) ([]field.Value, error) {
	return s.store.ListFieldValues(ctx, tenantID, productID)
}

// Displays returns the display configuration for a tenant, seeding the
// system rows first if they are missing. Seeding is idempotent, so tenants
// created before a system field was introduced pick it up here.
func (s *FieldService) Displays(ctx context.Context, tenantID string) ([]field.Display, error) {
	if err := s.store.SeedSystemDisplays(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("seed system displays: %w", err)
	}
	return s.store.ListFieldDisplays(ctx, tenantID)
}

// Reorder applies a batch of display order updates. Entries with a nil or
// negative order leave that axis unchanged.
func (s *FieldService) Reorder(ctx context.Context, tenantID string, items []field.ReorderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty reorder batch", domain.ErrValidation)
	}
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("%w: items[%d].id is required", domain.ErrValidation, i)
		}
	}
	return s.store.UpdateDisplayOrders(ctx, tenantID, items)
}
