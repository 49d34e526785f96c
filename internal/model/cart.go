package model

import "time"

// ShoppingCart is a guest cart. Name and address are optional; totals are
// always derived from the items, never stored.
type ShoppingCart struct {
	ID        int64     `json:"id" db:"id"`
	Name      *string   `json:"name,omitempty" db:"name"`
	Address   *string   `json:"address,omitempty" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DisplayName returns the cart owner's name, or a guest placeholder.
func (c *ShoppingCart) DisplayName() string {
	if c.Name == nil || *c.Name == "" {
		return "[Guest]"
	}
	return *c.Name
}

// DisplayAddress returns the cart address, or a placeholder.
func (c *ShoppingCart) DisplayAddress() string {
	if c.Address == nil || *c.Address == "" {
		return "[No Address]"
	}
	return *c.Address
}

// ShoppingCartItem is a (product, quantity) line owned by exactly one cart.
// Quantity defaults to 0 before validation; the write path enforces [1,100].
type ShoppingCartItem struct {
	ID        int64 `json:"id" db:"id"`
	CartID    int64 `json:"-" db:"cart_id"`
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartLine pairs a quantity with the full product record, the input shape
// the cart aggregator works over.
type CartLine struct {
	Quantity int
	Product  Product
}

// CartTotals holds the derived money amounts for a cart.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CartView is the serialised cart: identity, items with product detail and
// per-line totals, and the aggregated amounts.
type CartView struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Items   []CartItemView `json:"items"`
	CartTotals
}

// CartItemView is a serialised cart line.
type CartItemView struct {
	ID        int64       `json:"id"`
	Quantity  int         `json:"quantity"`
	Product   ProductView `json:"product"`
	LineTotal float64     `json:"line_total"`
}

// CartRequest is the create-cart payload.
type CartRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CartItemRequest is the add-item payload.
type CartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
