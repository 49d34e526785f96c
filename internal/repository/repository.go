package repository

import (
	"context"
	"time"

	"storefront/internal/model"
)

// ProductFilter narrows and pages a product listing. All filter fields are
// optional and combine with AND semantics.
type ProductFilter struct {
	// ID restricts to an exact product id.
	ID *int64

	// Search matches a case-insensitive substring of name or description.
	Search string

	// OnSale restricts to products whose closed sale window straddles Now.
	// Both bounds must be present; open-ended sales do not match.
	OnSale bool

	// Now is the instant OnSale is evaluated against.
	Now time.Time

	Limit  int
	Offset int
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a product and assigns its id.
	Create(ctx context.Context, product *model.Product) error

	// GetByID retrieves a single product, or nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves multiple products by their ids.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// List retrieves a filtered page of products along with the total
	// count of products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int, error)

	// Update persists the product's mutable fields.
	// Returns model.ErrProductNotFound when the id does not exist.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Cart items referencing it cascade.
	// Returns model.ErrProductNotFound when the id does not exist.
	Delete(ctx context.Context, id int64) error
}

// CartRepository defines the interface for shopping-cart data access
// operations. Deleting a cart cascade-deletes its items.
type CartRepository interface {
	// CreateCart inserts a cart and assigns its id.
	CreateCart(ctx context.Context, cart *model.ShoppingCart) error

	// GetCart retrieves a cart, or nil when it does not exist.
	GetCart(ctx context.Context, id int64) (*model.ShoppingCart, error)

	// DeleteCart removes a cart and, via cascade, its items.
	// Returns model.ErrCartNotFound when the id does not exist.
	DeleteCart(ctx context.Context, id int64) error

	// AddItem inserts a cart item and assigns its id.
	AddItem(ctx context.Context, item *model.ShoppingCartItem) error

	// ListItems retrieves all items belonging to a cart, ordered by id.
	ListItems(ctx context.Context, cartID int64) ([]model.ShoppingCartItem, error)

	// DeleteItem removes a single item from a cart.
	// Returns model.ErrCartItemNotFound when no such item exists.
	DeleteItem(ctx context.Context, cartID, itemID int64) error
}
