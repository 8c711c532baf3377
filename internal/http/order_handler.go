package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
)

type OrderService interface {
	Create(ctx context.Context, userID string, req service.CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, userID string, orderID uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, userID string, page, limit int) ([]domain.Order, error)
}

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.Create(ctx, userID, req)
	switch {
	case errors.Is(err, service.ErrInvalidShippingAddress):
		respondError(w, http.StatusBadRequest, "Invalid shipping address")
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrCartUnavailable):
		// An unreadable cart is reported like an empty one.
		respondError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, service.ErrOrderItemsCreateFailed):
		respondError(w, http.StatusInternalServerError, "Failed to create order items")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to create order")
	default:
		respondData(w, http.StatusCreated, order, "Order created successfully")
	}
}

// GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	query := r.URL.Query()
	page := parsePositiveInt(query.Get("page"), 1)
	limit := parsePositiveInt(query.Get("limit"), 10)

	orders, err := h.orders.List(ctx, userID, page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	respondData(w, http.StatusOK, orders, "")
}

// GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.orders.Get(ctx, userID, orderID)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to fetch order")
	default:
		respondData(w, http.StatusOK, order, "")
	}
}
