package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

// mockCartRepo implements repository.CartRepository for testing
type mockCartRepo struct {
	mu       sync.Mutex
	items    []domain.CartItem
	listErr  error
	clearErr error

	listCalls  int
	cleared    bool
	upserted   *domain.CartItem
	upsertErr  error
	updateErr  error
	deletedIDs []uuid.UUID
}

func (m *mockCartRepo) ListCartItems(context.Context, string) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockCartRepo) UpsertCartItem(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	saved := *item
	saved.ID = uuid.New()
	m.upserted = &saved
	return &saved, nil
}

func (m *mockCartRepo) UpdateCartItemQuantity(_ context.Context, _ string, itemID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &domain.CartItem{ID: itemID, Quantity: quantity}, nil
}

func (m *mockCartRepo) DeleteCartItem(_ context.Context, _ string, itemID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedIDs = append(m.deletedIDs, itemID)
	return nil
}

func (m *mockCartRepo) ClearCart(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	return nil
}

// mockOrderRepo implements repository.OrderRepository for testing
type mockOrderRepo struct {
	mu sync.Mutex

	orderNumber    string
	orderNumberErr error

	createOrderErr error
	createItemsErr error
	deleteOrderErr error

	createdOrder   *domain.Order
	createdItems   []domain.OrderItem
	deletedOrderID *uuid.UUID
}

func (m *mockOrderRepo) NextOrderNumber(context.Context) (string, error) {
	if m.orderNumberErr != nil {
		return "", m.orderNumberErr
	}
	return m.orderNumber, nil
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	m.createdOrder = order
	return nil
}

func (m *mockOrderRepo) CreateOrderItems(_ context.Context, items []domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createItemsErr != nil {
		return m.createItemsErr
	}
	m.createdItems = items
	return nil
}

func (m *mockOrderRepo) DeleteOrder(_ context.Context, orderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedOrderID = &orderID
	if m.deleteOrderErr != nil {
		return m.deleteOrderErr
	}
	m.createdOrder = nil
	return nil
}

func (m *mockOrderRepo) GetOrder(_ context.Context, _ string, orderID uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createdOrder != nil && m.createdOrder.ID == orderID {
		return m.createdOrder, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrders(context.Context, string, int, int) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createdOrder == nil {
		return nil, nil
	}
	return []domain.Order{*m.createdOrder}, nil
}

// mockEventRepo implements repository.OrderEventRepository for testing
type mockEventRepo struct {
	mu        sync.Mutex
	insertErr error
	events    []repository.OrderEvent
	published []int64
}

func (m *mockEventRepo) InsertOrderEvent(_ context.Context, orderID uuid.UUID, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.events = append(m.events, repository.OrderEvent{
		ID:        int64(len(m.events) + 1),
		OrderID:   orderID,
		EventType: eventType,
		Payload:   payload,
	})
	return nil
}

func (m *mockEventRepo) UnpublishedOrderEvents(context.Context, int) ([]repository.OrderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events, nil
}

func (m *mockEventRepo) MarkOrderEventPublished(_ context.Context, eventID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, eventID)
	return nil
}

// mockCartCache implements cache.CartCache for testing
type mockCartCache struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart
	getErr error
	setErr error
	delErr error

	deletes []string
}

func newMockCartCache() *mockCartCache {
	return &mockCartCache{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart, nil
}

func (m *mockCartCache) Set(_ context.Context, userID string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.carts[userID] = cart
	return nil
}

func (m *mockCartCache) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, userID)
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.carts, userID)
	return nil
}

// mockProductRepo implements repository.ProductRepository for testing
type mockProductRepo struct {
	products map[uuid.UUID]*domain.Product
	err      error
}

func (m *mockProductRepo) ListProducts(context.Context, repository.ListProductsParams) ([]domain.Product, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var products []domain.Product
	for _, p := range m.products {
		products = append(products, *p)
	}
	return products, len(products), nil
}

func (m *mockProductRepo) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}
