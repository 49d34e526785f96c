package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

const (
	minItemQuantity = 1
	maxItemQuantity = 100
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

// Create creates an empty cart.
func (s *cartService) Create(ctx context.Context, req *model.CartRequest) (*model.CartView, error) {
	cart := &model.ShoppingCart{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		s.logger.Error().Err(err).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	s.logger.Info().Int64("cart_id", cart.ID).Msg("cart created")

	return &model.CartView{
		ID:      cart.ID,
		Name:    cart.DisplayName(),
		Address: cart.DisplayAddress(),
		Items:   []model.CartItemView{},
	}, nil
}

// GetByID retrieves a cart with its items, product detail and derived
// totals. Totals are computed on every read and never stored.
func (s *cartService) GetByID(ctx context.Context, id int64) (*model.CartView, error) {
	cart, err := s.getCart(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	productIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to load cart products")
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	productsByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	now := s.now()
	lines := make([]model.CartLine, 0, len(items))
	views := make([]model.CartItemView, 0, len(items))
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			// Product deleted after the item was added; the schema
			// cascades, so this is a transient read-skew case.
			continue
		}
		lines = append(lines, model.CartLine{Quantity: item.Quantity, Product: product})
		views = append(views, model.CartItemView{
			ID:        item.ID,
			Quantity:  item.Quantity,
			Product:   toProductView(product, now),
			LineTotal: pricing.LineTotal(item.Quantity, product, now),
		})
	}

	return &model.CartView{
		ID:         cart.ID,
		Name:       cart.DisplayName(),
		Address:    cart.DisplayAddress(),
		Items:      views,
		CartTotals: pricing.Aggregate(lines, now),
	}, nil
}

// AddItem validates and adds a product line to a cart.
func (s *cartService) AddItem(ctx context.Context, cartID int64, req *model.CartItemRequest) (*model.ShoppingCartItem, error) {
	if _, err := s.getCart(ctx, cartID); err != nil {
		return nil, err
	}

	if req.Quantity < minItemQuantity || req.Quantity > maxItemQuantity {
		return nil, model.ValidationError{
			"quantity": fmt.Sprintf("Must be between %d and %d", minItemQuantity, maxItemQuantity),
		}
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	item := &model.ShoppingCartItem{
		CartID:    cartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		s.logger.Error().Err(err).
			Int64("cart_id", cartID).
			Int64("product_id", req.ProductID).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info().
		Int64("cart_id", cartID).
		Int64("item_id", item.ID).
		Int64("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("cart item added")

	return item, nil
}

// RemoveItem removes a single line from a cart.
func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	if _, err := s.getCart(ctx, cartID); err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(ctx, cartID, itemID); err != nil {
		if err != model.ErrCartItemNotFound {
			s.logger.Error().Err(err).
				Int64("cart_id", cartID).
				Int64("item_id", itemID).
				Msg("failed to remove cart item")
		}
		return err
	}

	s.logger.Info().Int64("cart_id", cartID).Int64("item_id", itemID).Msg("cart item removed")
	return nil
}

// Delete removes a cart and, via cascade, all its items.
func (s *cartService) Delete(ctx context.Context, id int64) error {
	if err := s.cartRepo.DeleteCart(ctx, id); err != nil {
		if err != model.ErrCartNotFound {
			s.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to delete cart")
		}
		return err
	}

	s.logger.Info().Int64("cart_id", id).Msg("cart deleted")
	return nil
}

// getCart fetches a cart or returns model.ErrCartNotFound.
func (s *cartService) getCart(ctx context.Context, id int64) (*model.ShoppingCart, error) {
	cart, err := s.cartRepo.GetCart(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		s.logger.Debug().Int64("cart_id", id).Msg("cart not found")
		return nil, model.ErrCartNotFound
	}
	return cart, nil
}
