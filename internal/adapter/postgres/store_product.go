package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vendra/vendra/internal/domain/product"
)

const productCols = `id, tenant_id, reference, name, description, price, stock_quantity, is_visible, is_sellable, featured_image_url, created_at, updated_at`

func scanProduct(row scannable) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.Reference, &p.Name, &p.Description, &p.Price,
		&p.StockQuantity, &p.IsVisible, &p.IsSellable, &p.FeaturedImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	f.Normalize()
	where := `tenant_id = $1`
	args := []any{tenantID}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR reference ILIKE $%d)`, len(args), len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(` AND id IN (SELECT product_id FROM product_categories WHERE category_id = $%d)`, len(args))
	}
	return s.queryProducts(ctx, where, args, f)
}

// SearchPublicProducts is the unauthenticated storefront listing: only
// visible products are returned.
func (s *Store) SearchPublicProducts(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Product, int, error) {
	f.Normalize()
	where := `tenant_id = $1 AND is_visible`
	args := []any{tenantID}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR reference ILIKE $%d)`, len(args), len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(` AND id IN (SELECT product_id FROM product_categories WHERE category_id = $%d)`, len(args))
	}
	return s.queryProducts(ctx, where, args, f)
}

func (s *Store) queryProducts(ctx context.Context, where string, args []any, f product.ListFilter) ([]product.Product, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			productCols, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return orEmpty(products), total, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, tenantID, id string) (*product.Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get product %s", id)
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product, links []product.CategoryLink) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create product: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO products (id, tenant_id, reference, name, description, price, stock_quantity, is_visible, is_sellable, featured_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		p.ID, p.TenantID, p.Reference, p.Name, p.Description, p.Price, p.StockQuantity,
		p.IsVisible, p.IsSellable, p.FeaturedImageURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create product %s", p.Reference)
	}

	if err := insertCategoryLinks(ctx, tx, p.ID, links); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("create product: commit: %w", err)
	}
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product, links []product.CategoryLink) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("update product: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE products
		 SET name = $3, description = $4, price = $5, stock_quantity = $6,
		     is_visible = $7, is_sellable = $8, featured_image_url = $9, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2`,
		p.ID, p.TenantID, p.Name, p.Description, p.Price, p.StockQuantity,
		p.IsVisible, p.IsSellable, p.FeaturedImageURL)
	if err := execExpectOne(tag, err, "update product %s", p.ID); err != nil {
		return err
	}

	// nil means "leave the link set alone"; non-nil replaces it.
	if links != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM product_categories WHERE product_id = $1`, p.ID); err != nil {
			return fmt.Errorf("clear category links for product %s: %w", p.ID, err)
		}
		if err := insertCategoryLinks(ctx, tx, p.ID, links); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("update product: commit: %w", err)
	}
	return nil
}

func insertCategoryLinks(ctx context.Context, tx pgx.Tx, productID string, links []product.CategoryLink) error {
	for _, l := range links {
		_, err := tx.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id, is_primary) VALUES ($1, $2, $3)`,
			productID, l.CategoryID, l.IsPrimary)
		if err != nil {
			return fmt.Errorf("link product %s to category %s: %w", productID, l.CategoryID, err)
		}
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete product %s", id)
}
