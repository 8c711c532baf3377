package service

import "errors"

var (
	ErrInvalidShippingAddress = errors.New("invalid shipping address")
	ErrCartUnavailable        = errors.New("cart is unavailable")
	ErrEmptyCart              = errors.New("cart is empty, nothing to check out")
	ErrOrderCreateFailed      = errors.New("failed to create order")
	ErrOrderItemsCreateFailed = errors.New("failed to create order items")

	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrProductUnavailable = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
