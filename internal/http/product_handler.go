package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

type ProductHandler struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

func NewProductHandler(repo repository.ProductRepository, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type ProductListDTO struct {
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query()
	params := repository.ListProductsParams{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Page:     parsePositiveInt(query.Get("page"), 1),
		Limit:    parsePositiveInt(query.Get("limit"), 12),
	}

	products, total, err := h.repo.ListProducts(ctx, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	totalPages := (total + params.Limit - 1) / params.Limit
	respondData(w, http.StatusOK, ProductListDTO{
		Products: products,
		Pagination: domain.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    params.Page*params.Limit < total,
		},
	}, "")
}

// GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	respondData(w, http.StatusOK, product, "")
}

func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
