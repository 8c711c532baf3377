package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	calc     *Calculator
	sfg      singleflight.Group // Prevents cache stampede
	log      zerolog.Logger
}

func NewCartService(
	repo repository.CartRepository,
	products repository.ProductRepository,
	cartCache cache.CartCache,
	calc *Calculator,
	log zerolog.Logger,
) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		cache:    cartCache,
		calc:     calc,
		log:      log.With().Str("component", "cart_service").Logger(),
	}
}

type AddItemRequest struct {
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`
	SelectedSize  string    `json:"selected_size"`
	SelectedColor string    `json:"selected_color"`
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Msg("cache get error") // log cache error but continue
		}

		items, errList := s.repo.ListCartItems(ctx, userID)
		if errList != nil {
			return nil, errList
		}

		cart = s.buildCart(userID, items)

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				s.log.Warn().Err(errSet).Msg("cache set error")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem enforces the cart mutation guard: quantity at least 1, product
// active, requested quantity within stock. The product's current price is
// captured on the line; duplicates merge by (user, product, size, color).
func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*domain.CartItem, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		return nil, err
	}

	if product.Stock < req.Quantity {
		return nil, ErrInsufficientStock
	}

	item := &domain.CartItem{
		UserID:        userID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		SelectedSize:  req.SelectedSize,
		SelectedColor: req.SelectedColor,
		UnitPrice:     product.Price,
	}

	saved, errAdd := s.repo.UpsertCartItem(ctx, item)
	if errAdd != nil {
		s.log.Error().Err(errAdd).Msg("repo upsert cart item error")
		return nil, errAdd
	}

	s.invalidateCache(userID)
	return saved, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, errUpdate := s.repo.UpdateCartItemQuantity(ctx, userID, itemID, quantity)
	if errUpdate != nil {
		if !errors.Is(errUpdate, repository.ErrCartItemNotFound) {
			s.log.Error().Err(errUpdate).Msg("repo update cart item quantity error")
		}
		return nil, errUpdate
	}

	s.invalidateCache(userID)
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	if errRemove := s.repo.DeleteCartItem(ctx, userID, itemID); errRemove != nil {
		if !errors.Is(errRemove, repository.ErrCartItemNotFound) {
			s.log.Error().Err(errRemove).Msg("repo delete cart item error")
		}
		return errRemove
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if errClear := s.repo.ClearCart(ctx, userID); errClear != nil {
		s.log.Error().Err(errClear).Msg("repo clear cart error")
		return errClear
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) buildCart(userID string, items []domain.CartItem) *domain.Cart {
	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}

	return &domain.Cart{
		UserID: userID,
		Items:  items,
		Summary: domain.CartSummary{
			Subtotal:   s.calc.Subtotal(items),
			TotalItems: totalItems,
			Currency:   "USD",
		},
	}
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidate error")
	}
}
