package model

import "time"

// Product represents a catalogue product. SaleStart and SaleEnd bound the
// optional sale window; either may be absent independently. Photo is an
// opaque reference to an externally stored asset.
type Product struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	SaleStart   *time.Time `json:"saleStart,omitempty" db:"sale_start"`
	SaleEnd     *time.Time `json:"saleEnd,omitempty" db:"sale_end"`
	Photo       *string    `json:"photo,omitempty" db:"photo"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductView is the serialised shape of a product: the stored fields plus
// the two computed pricing fields. Assembled explicitly, never by mutating
// the entity.
type ProductView struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	SaleStart    *time.Time `json:"sale_start"`
	SaleEnd      *time.Time `json:"sale_end"`
	Photo        *string    `json:"photo,omitempty"`
	IsOnSale     bool       `json:"is_on_sale"`
	CurrentPrice float64    `json:"current_price"`
}

// ProductPage is a single page of list results. The contract is flat
// offset pagination: a total count and the page slice, no cursors.
type ProductPage struct {
	Count  int           `json:"count"`
	Result []ProductView `json:"result"`
}

// ProductRequest is the create/update payload. Pointer fields distinguish
// "absent" from "zero" so PATCH can apply partial updates. Price is untyped
// because callers may send it as a JSON number or a numeric string; the
// service validates it either way.
type ProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       any     `json:"price"`
	SaleStart   *string `json:"sale_start"`
	SaleEnd     *string `json:"sale_end"`
	Photo       *string `json:"photo"`
}

// ProductStats is the analytics payload for a single product.
type ProductStats struct {
	Stats map[string][]int `json:"stats"`
}
