package domain

import (
	"context"
	"errors"
	"math"
)

// ErrProductNotFound is returned when a catalog lookup misses.
var ErrProductNotFound = errors.New("product not found")

// Badge is a display-only product classification.
type Badge string

// Known badge values.
const (
	BadgeNew        Badge = "new"
	BadgeSale       Badge = "sale"
	BadgeBestseller Badge = "bestseller"
)

// Product is an immutable catalog entry. The catalog is read-only after
// load; nothing mutates a Product.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviews_count"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	InStock       bool     `json:"in_stock"`
	Badge         Badge    `json:"badge,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// OnSale reports whether the product carries a pre-discount price above the
// current one.
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// DiscountPercent returns the rounded percentage saved against the original
// price. It is defined only for original > current > 0 and returns 0 for
// every other input.
func DiscountPercent(original, current float64) int {
	if current <= 0 || original <= current {
		return 0
	}
	return int(math.Round((original - current) / original * 100))
}

// CatalogRepository defines the contract for catalog access. The catalog is
// fixed for the process lifetime, so implementations may precompute facets.
type CatalogRepository interface {
	All(ctx context.Context) []Product
	FindByID(ctx context.Context, id string) (*Product, error)
	Facets(ctx context.Context) Facets
	Count(ctx context.Context) int
}
