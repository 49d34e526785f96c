package service

import (
	"context"

	"storefront/internal/model"
)

// ListParams carries the raw, unclamped query parameters of a product
// listing. The service normalises them before hitting the repository.
type ListParams struct {
	// ID restricts the listing to an exact product id.
	ID *int64

	// Search is a case-insensitive substring matched against name and
	// description.
	Search string

	// OnSale filters to products inside a bounded sale window when it
	// equals "true" (case-insensitive). Any other value is ignored.
	OnSale string

	Limit  int
	Offset int
}

// StatsProvider supplies per-product view statistics keyed by date.
type StatsProvider interface {
	// Stats returns daily view counts for the product.
	Stats(ctx context.Context, productID int64) (map[string][]int, error)
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves a filtered, paginated page of products.
	List(ctx context.Context, params ListParams) (*model.ProductPage, error)

	// GetByID retrieves a single product view.
	GetByID(ctx context.Context, id int64) (*model.ProductView, error)

	// Create validates and persists a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.ProductView, error)

	// Update applies a partial update to an existing product and
	// refreshes its cache entry.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductView, error)

	// Delete removes a product and invalidates its cache entry.
	Delete(ctx context.Context, id int64) error

	// AppendWarranty appends a warranty document's text to the product's
	// description.
	AppendWarranty(ctx context.Context, id int64, documentName string) (*model.ProductView, error)

	// Stats retrieves view statistics for a product.
	Stats(ctx context.Context, id int64) (*model.ProductStats, error)
}

// CartService defines operations for shopping-cart management.
type CartService interface {
	// Create creates an empty cart.
	Create(ctx context.Context, req *model.CartRequest) (*model.CartView, error)

	// GetByID retrieves a cart with its items and derived totals.
	GetByID(ctx context.Context, id int64) (*model.CartView, error)

	// AddItem validates and adds a product line to a cart.
	AddItem(ctx context.Context, cartID int64, req *model.CartItemRequest) (*model.ShoppingCartItem, error)

	// RemoveItem removes a single line from a cart.
	RemoveItem(ctx context.Context, cartID, itemID int64) error

	// Delete removes a cart and all its items.
	Delete(ctx context.Context, id int64) error
}
