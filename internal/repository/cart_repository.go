package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
)

func (r *Repository) ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	query := `SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.selected_size,
	                 ci.selected_color, ci.unit_price, ci.created_at, ci.updated_at,
	                 p.title, p.price, p.stock, p.slug, p.image_url
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.user_id = $1
	          ORDER BY ci.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.SelectedSize,
			&item.SelectedColor,
			&item.UnitPrice,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Product.Title,
			&item.Product.Price,
			&item.Product.Stock,
			&item.Product.Slug,
			&item.Product.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// UpsertCartItem merges duplicate lines: the same (user, product, size, color)
// increments the existing quantity instead of inserting a second row. A merged
// line keeps the unit_price captured when it was first added, so the stored
// price is returned rather than the caller's.
func (r *Repository) UpsertCartItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	query := `INSERT INTO cart_items (id, user_id, product_id, quantity, selected_size, selected_color, unit_price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	          ON CONFLICT (user_id, product_id, selected_size, selected_color)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	          RETURNING id, quantity, unit_price, created_at, updated_at`

	saved := *item
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.SelectedSize,
		item.SelectedColor,
		item.UnitPrice,
	).Scan(&saved.ID, &saved.Quantity, &saved.UnitPrice, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	return &saved, nil
}

func (r *Repository) UpdateCartItemQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*domain.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW()
	          WHERE id = $2 AND user_id = $3
	          RETURNING id, user_id, product_id, quantity, selected_size, selected_color, unit_price, created_at, updated_at`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, quantity, itemID, userID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.SelectedSize,
		&item.SelectedColor,
		&item.UnitPrice,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update cart item quantity: %w", err)
	}

	return &item, nil
}

func (r *Repository) DeleteCartItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *Repository) ClearCart(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
