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

type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, req service.AddItemRequest) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID string) error
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	cart, err := h.cart.GetCart(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	respondData(w, http.StatusOK, cart, "")
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	item, err := h.cart.AddItem(ctx, userID, req)
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "Insufficient stock")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to add to cart")
	default:
		respondData(w, http.StatusCreated, item, "Item added to cart")
	}
}

// PATCH /api/v1/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	item, err := h.cart.UpdateQuantity(ctx, userID, itemID, req.Quantity)
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "Invalid quantity")
	case errors.Is(err, repository.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "Cart item not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to update cart item")
	default:
		respondData(w, http.StatusOK, item, "Cart item updated")
	}
}

// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	err = h.cart.RemoveItem(ctx, userID, itemID)
	switch {
	case errors.Is(err, repository.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "Cart item not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to remove cart item")
	default:
		respondData(w, http.StatusOK, nil, "Cart item removed")
	}
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Missing user authentication")
		return
	}

	if err := h.cart.ClearCart(ctx, userID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	respondData(w, http.StatusOK, nil, "Cart cleared")
}
