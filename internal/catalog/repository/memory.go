package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/medwear/storefront/internal/catalog/domain"
)

//go:embed seed.json
var seedData []byte

// MemoryCatalog serves the static product catalog from memory. The catalog
// is fixed for the process lifetime, so facets are computed once at
// construction.
type MemoryCatalog struct {
	products []domain.Product
	byID     map[string]int
	facets   domain.Facets
}

// NewMemoryCatalog builds a catalog from the given products after
// validating them.
func NewMemoryCatalog(products []domain.Product) (*MemoryCatalog, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if err := validateProduct(&p); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}

	return &MemoryCatalog{
		products: products,
		byID:     byID,
		facets:   domain.ComputeFacets(products),
	}, nil
}

// NewMemoryCatalogFromSeed builds the catalog from the embedded seed file.
func NewMemoryCatalogFromSeed() (*MemoryCatalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(seedData, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}
	return NewMemoryCatalog(products)
}

func validateProduct(p *domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		return fmt.Errorf("original price below current price")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	if p.ReviewsCount < 0 {
		return fmt.Errorf("reviews count cannot be negative")
	}
	return nil
}

// All returns the full catalog in load order. Callers must treat the
// returned slice as read-only.
func (c *MemoryCatalog) All(ctx context.Context) []domain.Product {
	return c.products
}

// FindByID looks up a single product.
func (c *MemoryCatalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &c.products[i], nil
}

// Facets returns the precomputed facet metadata.
func (c *MemoryCatalog) Facets(ctx context.Context) domain.Facets {
	return c.facets
}

// Count returns the catalog size.
func (c *MemoryCatalog) Count(ctx context.Context) int {
	return len(c.products)
}
