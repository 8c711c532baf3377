package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

const (
	deliveryLeadTime  = 7 * 24 * time.Hour
	orderCreatedEvent = "order.created"
)

type OrderService struct {
	orders repository.OrderRepository
	cart   repository.CartRepository
	events repository.OrderEventRepository
	cache  cache.CartCache
	calc   *Calculator
	locks  *userLocks
	log    zerolog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	cart repository.CartRepository,
	events repository.OrderEventRepository,
	cartCache cache.CartCache,
	calc *Calculator,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		cart:   cart,
		events: events,
		cache:  cartCache,
		calc:   calc,
		locks:  newUserLocks(),
		log:    log.With().Str("component", "order_service").Logger(),
	}
}

type CreateOrderRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// Create turns the user's cart into an order. The order row and its items are
// written as two separate statements; when the item insert fails the order row
// is deleted again so no half-written order survives. Clearing the cart comes
// last and never fails the checkout: the user already holds a valid order.
func (s *OrderService) Create(ctx context.Context, userID string, req CreateOrderRequest) (*domain.Order, error) {
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	lines, err := s.cart.ListCartItems(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return nil, ErrCartUnavailable
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := s.calc.Calculate(lines)

	order := &domain.Order{
		ID:              uuid.New(),
		OrderNumber:     s.orderNumber(ctx),
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		TaxAmount:       totals.TaxAmount,
		TotalAmount:     totals.TotalAmount,
		// Payment is simulated: every order starts out paid.
		Status:            domain.OrderStatusPaid,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     domain.PaymentStatusCompleted,
		EstimatedDelivery: time.Now().Add(deliveryLeadTime),
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ProductID:     line.ProductID,
			ProductTitle:  line.Product.Title,
			SelectedSize:  line.SelectedSize,
			SelectedColor: line.SelectedColor,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TotalPrice:    LineTotal(line.Quantity, line.UnitPrice),
		}
	}

	if errCreate := s.orders.CreateOrder(ctx, order); errCreate != nil {
		s.log.Error().Err(errCreate).Str("order_number", order.OrderNumber).Msg("failed to create order")
		return nil, ErrOrderCreateFailed
	}

	if errItems := s.orders.CreateOrderItems(ctx, items); errItems != nil {
		s.log.Error().Err(errItems).Str("order_id", order.ID.String()).Msg("failed to create order items")
		if errDelete := s.orders.DeleteOrder(ctx, order.ID); errDelete != nil {
			// Best-effort cleanup; the orphaned order row is logged, not surfaced.
			s.log.Error().Err(errDelete).Str("order_id", order.ID.String()).Msg("compensating order delete failed")
		}
		return nil, ErrOrderItemsCreateFailed
	}
	order.Items = items

	if errClear := s.cart.ClearCart(ctx, userID); errClear != nil {
		// Non-fatal: a stale cart is a lesser problem than a lost order.
		s.log.Error().Err(errClear).Str("user_id", userID).Msg("failed to clear cart after checkout")
	}
	s.invalidateCartCache(userID)

	s.enqueueOrderCreated(ctx, order)

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, userID string, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, userID, orderID)
}

func (s *OrderService) List(ctx context.Context, userID string, page, limit int) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, userID, page, limit)
}

func (s *OrderService) orderNumber(ctx context.Context) string {
	number, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("order number generator unavailable, falling back to timestamp")
		return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
	}
	return number
}

func (s *OrderService) invalidateCartCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache invalidate error")
	}
}

func (s *OrderService) enqueueOrderCreated(ctx context.Context, order *domain.Order) {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"created_at":   time.Now(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal order event payload")
		return
	}

	if err := s.events.InsertOrderEvent(ctx, order.ID, orderCreatedEvent, payload); err != nil {
		// The poller never sees this order then; checkout still succeeded.
		s.log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to enqueue order event")
	}
}

func validateShippingAddress(addr domain.ShippingAddress) error {
	required := []string{addr.FullName, addr.AddressLine1, addr.City, addr.State, addr.PostalCode}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidShippingAddress
		}
	}
	return nil
}
