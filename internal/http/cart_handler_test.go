package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
)

type cartServiceMock struct {
	cart *domain.Cart
	item *domain.CartItem
	err  error
}

func (m *cartServiceMock) GetCart(context.Context, string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartServiceMock) AddItem(context.Context, string, service.AddItemRequest) (*domain.CartItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *cartServiceMock) UpdateQuantity(_ context.Context, _ string, itemID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CartItem{ID: itemID, Quantity: quantity}, nil
}

func (m *cartServiceMock) RemoveItem(context.Context, string, uuid.UUID) error {
	return m.err
}

func (m *cartServiceMock) ClearCart(context.Context, string) error {
	return m.err
}

func TestGetCart_Success(t *testing.T) {
	mock := &cartServiceMock{cart: &domain.Cart{
		UserID: "user-1",
		Items: []domain.CartItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: 29.99},
		},
		Summary: domain.CartSummary{Subtotal: 59.98, TotalItems: 2, Currency: "USD"},
	}}
	handler := NewCartHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, authedRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool        `json:"success"`
		Data    domain.Cart `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "user-1", response.Data.UserID)
	assert.InDelta(t, 59.98, response.Data.Summary.Subtotal, 1e-9)
}

func TestGetCart_Unauthorized(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	// No user_id in context
	handler.GetCart(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddItem_Created(t *testing.T) {
	itemID := uuid.New()
	mock := &cartServiceMock{item: &domain.CartItem{ID: itemID, Quantity: 2, UnitPrice: 29.99}}
	handler := NewCartHandler(mock, 5*time.Second)

	body := []byte(`{"product_id":"` + uuid.NewString() + `","quantity":2}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest("POST", "/", body))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Item added to cart")
}

func TestAddItem_GuardErrors(t *testing.T) {
	cases := []struct {
		svcErr  error
		status  int
		message string
	}{
		{service.ErrInvalidQuantity, http.StatusBadRequest, "Invalid request data"},
		{service.ErrProductUnavailable, http.StatusNotFound, "Product not found"},
		{service.ErrInsufficientStock, http.StatusBadRequest, "Insufficient stock"},
	}

	for _, tc := range cases {
		handler := NewCartHandler(&cartServiceMock{err: tc.svcErr}, 5*time.Second)

		body := []byte(`{"product_id":"` + uuid.NewString() + `","quantity":1}`)
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, authedRequest("POST", "/", body))

		assert.Equal(t, tc.status, recorder.Code)

		var response APIResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, tc.message, response.Error)
	}
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{err: repository.ErrCartItemNotFound}, 5*time.Second)

	router := chi.NewRouter()
	router.Patch("/cart/items/{id}", handler.UpdateQuantity)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest("PATCH", "/cart/items/"+uuid.NewString(), []byte(`{"quantity":3}`)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)

	router := chi.NewRouter()
	router.Delete("/cart/items/{id}", handler.RemoveItem)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest("DELETE", "/cart/items/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cart item removed")
}

func TestClearCart_Success(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ClearCart(recorder, authedRequest("DELETE", "/cart", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cart cleared")
}

func TestClearCart_ServiceError(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{err: errors.New("redis down")}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ClearCart(recorder, authedRequest("DELETE", "/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
