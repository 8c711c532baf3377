package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
)

// NextOrderNumber asks the database sequence function for the next token.
// Callers fall back to a timestamp token when this errors.
func (r *Repository) NextOrderNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.QueryRowContext(ctx, `SELECT generate_order_number()`).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return number, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `INSERT INTO orders (id, order_number, user_id, shipping_address, subtotal, shipping_cost,
	              tax_amount, total_amount, status, payment_method, payment_status, estimated_delivery,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		addressJSON,
		order.Subtotal,
		order.ShippingCost,
		order.TaxAmount,
		order.TotalAmount,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.EstimatedDelivery)
	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (r *Repository) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*9)
	for i, item := range items {
		base := i * 9
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductTitle,
			item.SelectedSize,
			item.SelectedColor,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice)
	}

	query := `INSERT INTO order_items (id, order_id, product_id, product_title, selected_size,
	              selected_color, quantity, unit_price, total_price)
	          VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// DeleteOrder is the compensating write when item insertion fails after the
// order row was already created. Items cascade.
func (r *Repository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

const orderColumns = `id, order_number, user_id, shipping_address, subtotal, shipping_cost,
	tax_amount, total_amount, status, payment_method, payment_status, estimated_delivery,
	created_at, updated_at`

func (r *Repository) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, userID string, page, limit int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range orders {
		items, itemsErr := r.listOrderItems(ctx, orders[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *Repository) listOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_title, selected_size, selected_color,
	                 quantity, unit_price, total_price
	          FROM order_items WHERE order_id = $1`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductTitle,
			&item.SelectedSize,
			&item.SelectedColor,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var addressJSON []byte
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&addressJSON,
		&order.Subtotal,
		&order.ShippingCost,
		&order.TaxAmount,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.EstimatedDelivery,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	return &order, nil
}
