package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	SKU         string         `json:"sku"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Sizes       pq.StringArray `json:"sizes"`
	Colors      pq.StringArray `json:"colors"`
	Stock       int            `json:"stock"`
	Category    string         `json:"category"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProductStub is the slice of product data joined onto a cart line.
type ProductStub struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Slug     string  `json:"slug"`
	ImageURL string  `json:"image_url"`
}

// Pagination keys are camelCase, like ShippingAddress: both are consumed
// verbatim by the storefront client.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}
