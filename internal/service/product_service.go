package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/document"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	maxProductPrice   = 100000.00
	minDescriptionLen = 2
	maxDescriptionLen = 200
)

// writeTimestampLayout is the timestamp format accepted on product writes,
// e.g. "12:01 PM 16 April 2022". RFC 3339 is accepted as a fallback.
const writeTimestampLayout = "03:04 PM 02 January 2006"

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	cache       *cache.ProductCache
	docs        document.Loader
	stats       StatsProvider
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service. The cache is optional;
// a nil cache disables cache maintenance without affecting persistence.
func NewProductService(
	productRepo repository.ProductRepository,
	productCache *cache.ProductCache,
	docs document.Loader,
	stats StatsProvider,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       productCache,
		docs:        docs,
		stats:       stats,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

// List retrieves a filtered, paginated page of products.
func (s *productService) List(ctx context.Context, params ListParams) (*model.ProductPage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	now := s.now()
	filter := repository.ProductFilter{
		ID:     params.ID,
		Search: params.Search,
		OnSale: strings.EqualFold(params.OnSale, "true"),
		Now:    now,
		Limit:  limit,
		Offset: offset,
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, now))
	}

	s.logger.Debug().
		Int("count", total).
		Int("page_size", len(views)).
		Msg("listed products")

	return &model.ProductPage{Count: total, Result: views}, nil
}

// GetByID retrieves a single product view.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.ProductView, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toProductView(*product, s.now())
	return &view, nil
}

// Create validates and persists a new product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductView, error) {
	errs := model.ValidationError{}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		errs["name"] = "This field is required"
	}

	if req.Description == nil {
		errs["description"] = "This field is required"
	} else if msg := validateDescription(*req.Description); msg != "" {
		errs["description"] = msg
	}

	price, msg := parsePrice(req.Price, true)
	if msg != "" {
		errs["price"] = msg
	}

	saleStart, saleEnd := s.parseSaleWindow(req, errs)

	if len(errs) > 0 {
		return nil, errs
	}

	product := &model.Product{
		Name:        strings.TrimSpace(*req.Name),
		Description: *req.Description,
		Price:       price,
		SaleStart:   saleStart,
		SaleEnd:     saleEnd,
		Photo:       req.Photo,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")

	view := toProductView(*product, s.now())
	return &view, nil
}

// Update applies a partial update to an existing product, then refreshes
// the product's cache entry with the post-update values. The cache write is
// best-effort: a cache failure never unwinds the persisted update.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductView, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := model.ValidationError{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errs["name"] = "This field is required"
		} else {
			product.Name = strings.TrimSpace(*req.Name)
		}
	}

	if req.Description != nil {
		if msg := validateDescription(*req.Description); msg != "" {
			errs["description"] = msg
		} else {
			product.Description = *req.Description
		}
	}

	if req.Price != nil {
		price, msg := parsePrice(req.Price, false)
		if msg != "" {
			errs["price"] = msg
		} else {
			product.Price = price
		}
	}

	saleStart, saleEnd := s.parseSaleWindow(req, errs)
	if req.SaleStart != nil {
		product.SaleStart = saleStart
	}
	if req.SaleEnd != nil {
		product.SaleEnd = saleEnd
	}
	if req.Photo != nil {
		product.Photo = req.Photo
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.cache.Set(ctx, product.ID, cache.Entry{
		Name:        product.Name,
		Description: product.Description,
		Price:       pricing.RoundedPrice(*product),
	})

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	view := toProductView(*product, s.now())
	return &view, nil
}

// Delete removes a product and invalidates its cache entry.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err != model.ErrProductNotFound {
			s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		}
		return err
	}

	s.cache.Delete(ctx, id)

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// AppendWarranty appends a warranty document's text to the product's
// description and persists the result.
func (s *productService) AppendWarranty(ctx context.Context, id int64, documentName string) (*model.ProductView, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if documentName == "" {
		return nil, model.ValidationError{"name": "This field is required"}
	}

	if s.docs == nil {
		return nil, fmt.Errorf("warranty documents are not configured")
	}

	text, err := s.docs.Load(ctx, documentName)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("product_id", id).
			Str("document", documentName).
			Msg("failed to load warranty document")
		return nil, fmt.Errorf("failed to load warranty document: %w", err)
	}

	if text != "" {
		product.Description = product.Description + "\n\n" + text
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to append warranty text")
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", id).
		Str("document", documentName).
		Msg("warranty text appended to description")

	view := toProductView(*product, s.now())
	return &view, nil
}

// Stats retrieves view statistics for a product.
func (s *productService) Stats(ctx context.Context, id int64) (*model.ProductStats, error) {
	if _, err := s.getProduct(ctx, id); err != nil {
		return nil, err
	}

	stats, err := s.stats.Stats(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product stats")
		return nil, fmt.Errorf("failed to get product stats: %w", err)
	}

	return &model.ProductStats{Stats: stats}, nil
}

// getProduct fetches a product or returns model.ErrProductNotFound.
func (s *productService) getProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// parseSaleWindow parses the optional sale bounds, recording failures in
// errs under the field that failed.
func (s *productService) parseSaleWindow(req *model.ProductRequest, errs model.ValidationError) (*time.Time, *time.Time) {
	var saleStart, saleEnd *time.Time

	if req.SaleStart != nil {
		t, err := parseWriteTimestamp(*req.SaleStart)
		if err != nil {
			errs["sale_start"] = "Invalid timestamp format"
		} else {
			saleStart = t
		}
	}

	if req.SaleEnd != nil {
		t, err := parseWriteTimestamp(*req.SaleEnd)
		if err != nil {
			errs["sale_end"] = "Invalid timestamp format"
		} else {
			saleEnd = t
		}
	}

	return saleStart, saleEnd
}

// parseWriteTimestamp parses a sale-bound timestamp, accepting the
// human-readable write format first and RFC 3339 as a fallback. An empty
// string clears the bound.
func parseWriteTimestamp(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(writeTimestampLayout, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parsePrice interprets the untyped price field. Clients send it as a JSON
// number or a numeric string; anything else is rejected. The returned
// message is empty when the price is acceptable.
func parsePrice(value any, required bool) (float64, string) {
	if value == nil {
		if required {
			return 0, "A valid number is required"
		}
		return 0, ""
	}

	var price float64
	switch v := value.(type) {
	case float64:
		price = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, "A valid number is required"
		}
		price = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, "A valid number is required"
		}
		price = f
	default:
		return 0, "A valid number is required"
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "A valid number is required"
	}
	if price <= 0.0 {
		return 0, "Must be above $0.00"
	}
	if price > maxProductPrice {
		return 0, fmt.Sprintf("Must be no more than $%.2f", float64(maxProductPrice))
	}

	return price, ""
}

// validateDescription checks the description length bounds.
func validateDescription(description string) string {
	length := len([]rune(description))
	if length < minDescriptionLen || length > maxDescriptionLen {
		return fmt.Sprintf("Must be between %d and %d characters", minDescriptionLen, maxDescriptionLen)
	}
	return ""
}

// toProductView assembles the serialised product shape, deriving the two
// pricing fields at the given instant.
func toProductView(p model.Product, now time.Time) model.ProductView {
	return model.ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        pricing.RoundedPrice(p),
		SaleStart:    p.SaleStart,
		SaleEnd:      p.SaleEnd,
		Photo:        p.Photo,
		IsOnSale:     pricing.IsOnSale(p, now),
		CurrentPrice: pricing.CurrentPrice(p, now),
	}
}
