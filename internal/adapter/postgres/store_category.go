package postgres

import (
	"context"
	"fmt"

	"github.com/vendra/vendra/internal/domain/category"
)

const categoryCols = `id, tenant_id, name, description, COALESCE(parent_id::text, ''), sort_order, is_visible, created_at, updated_at`

func scanCategory(row scannable) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.ParentID,
		&c.SortOrder, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, tenantID string) ([]category.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE tenant_id = $1 ORDER BY sort_order, name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	return orEmpty(cats), rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, tenantID, id string) (*category.Category, error) {
	c, err := scanCategory(s.pool.QueryRow(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get category %s", id)
	}
	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (id, tenant_id, name, description, parent_id, sort_order, is_visible)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		c.ID, c.TenantID, c.Name, c.Description, nullIfEmpty(c.ParentID), c.SortOrder, c.IsVisible,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create category %s", c.Name)
	}
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categories
		 SET name = $3, description = $4, parent_id = $5, sort_order = $6, is_visible = $7, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2`,
		c.ID, c.TenantID, c.Name, c.Description, nullIfEmpty(c.ParentID), c.SortOrder, c.IsVisible)
	return execExpectOne(tag, err, "update category %s", c.ID)
}

func (s *Store) DeleteCategory(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete category %s", id)
}

func (s *Store) CountCategoryChildren(ctx context.Context, tenantID, id string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE parent_id = $1 AND tenant_id = $2`, id, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children of category %s: %w", id, err)
	}
	return n, nil
}

func (s *Store) CountProductsInCategory(ctx context.Context, tenantID, id string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM product_categories pc
		 JOIN categories c ON c.id = pc.category_id
		 WHERE pc.category_id = $1 AND c.tenant_id = $2`, id, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products in category %s: %w", id, err)
	}
	return n, nil
}

// IsCategoryDescendant walks the subtree rooted at rootID and reports whether
// candidateID appears in it. Used by the reparenting cycle check.
func (s *Store) IsCategoryDescendant(ctx context.Context, tenantID, rootID, candidateID string) (bool, error) {
	var found bool
	err := s.pool.QueryRow(ctx,
		`WITH RECURSIVE subtree AS (
		     SELECT id FROM categories WHERE parent_id = $1 AND tenant_id = $2
		     UNION ALL
		     SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
		 )
		 SELECT EXISTS (SELECT 1 FROM subtree WHERE id = $3)`,
		rootID, tenantID, candidateID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("descendant check for category %s: %w", rootID, err)
	}
	return found, nil
}

func (s *Store) CategoryProductCounts(ctx context.Context, tenantID string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT pc.category_id, COUNT(*)
		 FROM product_categories pc
		 JOIN categories c ON c.id = pc.category_id
		 WHERE c.tenant_id = $1
		 GROUP BY pc.category_id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("category product counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan product count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
