// Package pricing holds the money and discount rules: two-decimal rounding,
// sale-window evaluation, and sale-adjusted pricing. Every function is pure;
// the current time is always an argument so callers and tests control the
// clock.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/model"
)

const (
	// DiscountRate is the flat discount applied inside a sale window.
	DiscountRate = 0.10

	// TaxRate is the sales tax applied to cart subtotals.
	TaxRate = 0.13
)

// Round2 rounds a money amount to two decimal places, half away from zero.
// It is the single rounding primitive for every surfaced price.
func Round2(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// IsOnSale reports whether the product is discounted at the given instant.
// A missing sale_start means never on sale. A missing sale_end means the
// sale is open-ended from sale_start. Both bounds are inclusive.
func IsOnSale(p model.Product, now time.Time) bool {
	if p.SaleStart == nil {
		return false
	}
	if now.Before(*p.SaleStart) {
		return false
	}
	if p.SaleEnd == nil {
		return true
	}
	return !now.After(*p.SaleEnd)
}

// RoundedPrice is the regular display price: the stored price rounded to
// two decimals, independent of any sale.
func RoundedPrice(p model.Product) float64 {
	return Round2(p.Price)
}

// CurrentPrice is the price a buyer pays now: the discounted price inside
// the sale window, the rounded regular price otherwise. The discount is
// applied in decimal arithmetic so the cent rounding is exact.
func CurrentPrice(p model.Product, now time.Time) float64 {
	base := decimal.NewFromFloat(p.Price).Round(2)
	if IsOnSale(p, now) {
		rate := decimal.NewFromFloat(1 - DiscountRate)
		v, _ := base.Mul(rate).Round(2).Float64()
		return v
	}
	v, _ := base.Float64()
	return v
}
