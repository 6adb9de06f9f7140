package postgres

import (
	"context"
	"fmt"

	"github.com/vendra/vendra/internal/domain"
	"github.com/vendra/vendra/internal/domain/field"
)

const fieldCols = `id, tenant_id, name, label, type, is_required, options, default_value, sort_order, active, created_at`

func scanField(row scannable) (*field.Field, error) {
	var f field.Field
	err := row.Scan(&f.ID, &f.TenantID, &f.Name, &f.Label, &f.Type, &f.IsRequired,
		&f.Options, &f.DefaultValue, &f.SortOrder, &f.Active, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) ListFields(ctx context.Context, tenantID string) ([]field.Field, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+fieldCols+` FROM product_fields WHERE tenant_id = $1 ORDER BY sort_order, name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []field.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, *f)
	}
	return orEmpty(fields), rows.Err()
}

func (s *Store) GetField(ctx context.Context, tenantID, id string) (*field.Field, error) {
	f, err := scanField(s.pool.QueryRow(ctx,
		`SELECT `+fieldCols+` FROM product_fields WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get field %s", id)
	}
	return f, nil
}

// CreateFieldWithDisplay inserts the field definition and its custom display
// row in one transaction. The display row lands at the next free slot on each
// axis so the field is immediately visible in both contexts.
func (s *Store) CreateFieldWithDisplay(ctx context.Context, f *field.Field) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create field: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO product_fields (id, tenant_id, name, label, type, is_required, options, default_value, sort_order, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		f.ID, f.TenantID, f.Name, f.Label, f.Type, f.IsRequired, pgTextArray(f.Options),
		f.DefaultValue, f.SortOrder, f.Active,
	).Scan(&f.CreatedAt)
	if err != nil {
		return conflictWrap(err, "create field %s", f.Name)
	}

	// Next slot is computed per axis, independently.
	_, err = tx.Exec(ctx,
		`INSERT INTO product_field_displays (id, tenant_id, field_type, field_name, catalog_order, show_in_catalog, product_order, show_in_product)
		 SELECT $1, $2, 'custom', $3,
		        COALESCE(MAX(catalog_order), -1) + 1, TRUE,
		        COALESCE(MAX(product_order), -1) + 1, TRUE
		 FROM product_field_displays WHERE tenant_id = $2`,
		f.ID, f.TenantID, f.Name)
	if err != nil {
		return conflictWrap(err, "create display for field %s", f.Name)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("create field: commit: %w", err)
	}
	return nil
}

func (s *Store) UpdateField(ctx context.Context, f *field.Field) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE product_fields
		 SET label = $3, is_required = $4, options = $5, default_value = $6, sort_order = $7, active = $8
		 WHERE id = $1 AND tenant_id = $2`,
		f.ID, f.TenantID, f.Label, f.IsRequired, pgTextArray(f.Options), f.DefaultValue, f.SortOrder, f.Active)
	return execExpectOne(tag, err, "update field %s", f.ID)
}

// DeleteField removes the definition together with its stored values and its
// display row.
func (s *Store) DeleteField(ctx context.Context, tenantID, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete field: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var name string
	err = tx.QueryRow(ctx,
		`DELETE FROM product_fields WHERE id = $1 AND tenant_id = $2 RETURNING name`, id, tenantID).Scan(&name)
	if err != nil {
		return notFoundWrap(err, "delete field %s", id)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM product_field_displays WHERE tenant_id = $1 AND field_type = 'custom' AND field_name = $2`,
		tenantID, name)
	if err != nil {
		return fmt.Errorf("delete display for field %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete field: commit: %w", err)
	}
	return nil
}

// UpsertFieldValue verifies inside one transaction that both the field and
// the product belong to the tenant, then writes the value with
// insert-or-update semantics on (product_id, field_id).
func (s *Store) UpsertFieldValue(ctx context.Context, tenantID, productID, fieldID, value string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set field value: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ok bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_fields WHERE id = $1 AND tenant_id = $2)`,
		fieldID, tenantID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("set field value: check field: %w", err)
	}
	if !ok {
		return fmt.Errorf("field %s: %w", fieldID, domain.ErrNotFound)
	}

	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND tenant_id = $2)`,
		productID, tenantID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("set field value: check product: %w", err)
	}
	if !ok {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO product_field_values (product_id, field_id, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (product_id, field_id) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		productID, fieldID, value)
	if err != nil {
		return fmt.Errorf("upsert field value: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("set field value: commit: %w", err)
	}
	return nil
}

func (s *Store) ListFieldValues(ctx context.Context, tenantID, productID string) ([]field.Value, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT v.product_id, v.field_id, f.name, v.value, v.updated_at
		 FROM product_field_values v
		 JOIN product_fields f ON f.id = v.field_id
		 WHERE v.product_id = $1 AND f.tenant_id = $2
		 ORDER BY f.sort_order, f.name`, productID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list field values: %w", err)
	}
	defer rows.Close()

	var values []field.Value
	for rows.Next() {
		var v field.Value
		if err := rows.Scan(&v.ProductID, &v.FieldID, &v.FieldName, &v.Value, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan field value: %w", err)
		}
		values = append(values, v)
	}
	return orEmpty(values), rows.Err()
}

const displayCols = `id, tenant_id, field_type, field_name, catalog_order, show_in_catalog, product_order, show_in_product`

func (s *Store) ListFieldDisplays(ctx context.Context, tenantID string) ([]field.Display, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+displayCols+` FROM product_field_displays
		 WHERE tenant_id = $1 ORDER BY catalog_order, field_name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list field displays: %w", err)
	}
	defer rows.Close()

	var displays []field.Display
	for rows.Next() {
		var d field.Display
		err := rows.Scan(&d.ID, &d.TenantID, &d.FieldType, &d.FieldName,
			&d.CatalogOrder, &d.ShowInCatalog, &d.ProductOrder, &d.ShowInProduct)
		if err != nil {
			return nil, fmt.Errorf("scan field display: %w", err)
		}
		displays = append(displays, d)
	}
	return orEmpty(displays), rows.Err()
}

// SeedSystemDisplays inserts the built-in display rows for a tenant. The
// conflict target makes repeated calls idempotent.
func (s *Store) SeedSystemDisplays(ctx context.Context, tenantID string) error {
	var seeded bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_field_displays WHERE tenant_id = $1 AND field_type = 'system')`,
		tenantID).Scan(&seeded)
	if err != nil {
		return fmt.Errorf("seed system displays: check: %w", err)
	}
	if seeded {
		return nil
	}

	for _, d := range field.SystemDisplayDefaults(tenantID) {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO product_field_displays (id, tenant_id, field_type, field_name, catalog_order, show_in_catalog, product_order, show_in_product)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (tenant_id, field_type, field_name) DO NOTHING`,
			tenantID, d.FieldType, d.FieldName, d.CatalogOrder, d.ShowInCatalog, d.ProductOrder, d.ShowInProduct)
		if err != nil {
			return fmt.Errorf("seed system display %s: %w", d.FieldName, err)
		}
	}
	return nil
}

// UpdateDisplayOrders applies each reorder entry independently. Negative
// order values are skipped for that axis; a skipped axis never aborts the
// batch.
func (s *Store) UpdateDisplayOrders(ctx context.Context, tenantID string, items []field.ReorderItem) error {
	for _, it := range items {
		if it.CatalogOrder != nil && *it.CatalogOrder >= 0 {
			_, err := s.pool.Exec(ctx,
				`UPDATE product_field_displays SET catalog_order = $3 WHERE id = $1 AND tenant_id = $2`,
				it.ID, tenantID, *it.CatalogOrder)
			if err != nil {
				return fmt.Errorf("reorder display %s (catalog): %w", it.ID, err)
			}
		}
		if it.ProductOrder != nil && *it.ProductOrder >= 0 {
			_, err := s.pool.Exec(ctx,
				`UPDATE product_field_displays SET product_order = $3 WHERE id = $1 AND tenant_id = $2`,
				it.ID, tenantID, *it.ProductOrder)
			if err != nil {
				return fmt.Errorf("reorder display %s (product): %w", it.ID, err)
			}
		}
	}
	return nil
}
