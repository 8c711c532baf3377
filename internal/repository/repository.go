package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

type ListProductsParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type ProductRepository interface {
	ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type CartRepository interface {
	ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpsertCartItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*domain.CartItem, error)
	DeleteCartItem(ctx context.Context, userID string, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID string) error
}

type OrderRepository interface {
	NextOrderNumber(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string, page, limit int) ([]domain.Order, error)
}

// OrderEvent is an outbox row pending publication.
type OrderEvent struct {
	ID        int64
	OrderID   uuid.UUID
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OrderEventRepository interface {
	InsertOrderEvent(ctx context.Context, orderID uuid.UUID, eventType string, payload []byte) error
	UnpublishedOrderEvents(ctx context.Context, limit int) ([]OrderEvent, error)
	MarkOrderEventPublished(ctx context.Context, eventID int64) error
}
