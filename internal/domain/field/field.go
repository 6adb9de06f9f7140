// Package field defines tenant-scoped custom product fields, their typed
// values, and the catalog/product display configuration.
package field

import (
	"fmt"
	"regexp"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// Type is the declared type of a product field.
type Type string

// Supported field types.
const (
	TypeText        Type = "text"
	TypeTextarea    Type = "textarea"
	TypeNumber      Type = "number"
	TypeBoolean     Type = "boolean"
	TypeSelect      Type = "select"
	TypeMultiSelect Type = "multiselect"
	TypeDate        Type = "date"
)

// Valid reports whether t is a supported field type.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeBoolean, TypeSelect, TypeMultiSelect, TypeDate:
		return true
	}
	return false
}

// HasOptions reports whether the type requires a non-empty options list.
func (t Type) HasOptions() bool {
	return t == TypeSelect || t == TypeMultiSelect
}

// Field is a tenant-defined product attribute.
type Field struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Type         Type      `json:"type"`
	IsRequired   bool      `json:"is_required"`
	Options      []string  `json:"options,omitempty"`
	DefaultValue string    `json:"default_value,omitempty"`
	SortOrder    int       `json:"sort_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Value is one stored field value. (ProductID, FieldID) is unique; writes
// have upsert semantics.
type Value struct {
	ProductID string    `json:"product_id"`
	FieldID   string    `json:"field_id"`
	FieldName string    `json:"field_name,omitempty"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// namePattern matches a lowercase snake_case identifier.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CreateRequest holds the fields required to define a custom field.
type CreateRequest struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         Type     `json:"type"`
	IsRequired   bool     `json:"is_required"`
	Options      []string `json:"options,omitempty"`
	DefaultValue string   `json:"default_value,omitempty"`
	SortOrder    int      `json:"sort_order"`
}

// Validate checks a field definition before any write.
func (r *CreateRequest) Validate() error {
	if !namePattern.MatchString(r.Name) {
		return fmt.Errorf("%w: name must be a lowercase identifier (got %q)", domain.ErrValidation, r.Name)
	}
	if r.Label == "" {
		return fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: unknown field type %q", domain.ErrValidation, r.Type)
	}
	if r.Type.HasOptions() && len(r.Options) == 0 {
		return fmt.Errorf("%w: %s fields require a non-empty options list", domain.ErrValidation, r.Type)
	}
	return nil
}

// UpdateRequest holds partial updates to a field definition.
type UpdateRequest struct {
	Label        *string  `json:"label,omitempty"`
	IsRequired   *bool    `json:"is_required,omitempty"`
	Options      []string `json:"options,omitempty"`
	DefaultValue *string  `json:"default_value,omitempty"`
	SortOrder    *int     `json:"sort_order,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}
