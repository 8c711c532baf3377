package domain

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID            uuid.UUID   `json:"id"`
	UserID        string      `json:"user_id"`
	ProductID     uuid.UUID   `json:"product_id"`
	Quantity      int         `json:"quantity"`
	SelectedSize  string      `json:"selected_size,omitempty"`
	SelectedColor string      `json:"selected_color,omitempty"`
	UnitPrice     float64     `json:"unit_price"`
	Product       ProductStub `json:"product"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type CartSummary struct {
	Subtotal   float64 `json:"subtotal"`
	TotalItems int     `json:"total_items"`
	Currency   string  `json:"currency"`
}

type Cart struct {
	UserID  string      `json:"user_id"`
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}
