package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
)

const productColumns = `id, slug, sku, title, description, price, currency, sizes, colors,
	stock, category, image_url, is_active, created_at, updated_at`

func (r *Repository) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE`
	args := []interface{}{}

	if params.Category != "" && params.Category != "all" {
		args = append(args, params.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY created_at DESC"

	args = append(args, params.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (params.Page-1)*params.Limit)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	var total int
	countErr := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = TRUE`).Scan(&total)
	if countErr != nil {
		return nil, 0, fmt.Errorf("count products: %w", countErr)
	}

	return products, total, nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND is_active = TRUE`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.SKU,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.Sizes,
		&p.Colors,
		&p.Stock,
		&p.Category,
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan product row: %w", err)
	}
	return &p, nil
}
