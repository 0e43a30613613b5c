package query

import (
	"context"
	"fmt"

	"github.com/medwear/storefront/internal/catalog/domain"
)

// RelatedLimit caps the "similar products" strip on the detail view.
const RelatedLimit = 4

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ID string
}

// ProductDetail bundles a product with its display annotations and related
// products for the detail view.
type ProductDetail struct {
	Product         domain.Product   `json:"product"`
	DiscountPercent int              `json:"discount_percent"`
	Related         []domain.Product `json:"related"`
}

// GetProductHandler handles the get product query
type GetProductHandler struct {
	repo domain.CatalogRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.CatalogRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle resolves the product and up to four products from the same
// category. Returns domain.ErrProductNotFound for an unknown identifier.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductDetail, error) {
	if q.ID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	product, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	discount := 0
	if product.OriginalPrice != nil {
		discount = domain.DiscountPercent(*product.OriginalPrice, product.Price)
	}

	return &ProductDetail{
		Product:         *product,
		DiscountPercent: discount,
		Related:         domain.Related(h.repo.All(ctx), product, RelatedLimit),
	}, nil
}
