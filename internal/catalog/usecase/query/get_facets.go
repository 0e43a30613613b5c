package query

import (
	"context"

	"github.com/medwear/storefront/internal/catalog/domain"
)

// GetFacetsQuery represents the query to get filter-control metadata
type GetFacetsQuery struct{}

// GetFacetsHandler handles the get facets query
type GetFacetsHandler struct {
	repo domain.CatalogRepository
}

// NewGetFacetsHandler creates a new get facets handler
func NewGetFacetsHandler(repo domain.CatalogRepository) *GetFacetsHandler {
	return &GetFacetsHandler{repo: repo}
}

// Handle returns the facet metadata of the full catalog. The catalog is
// immutable, so the repository serves a value precomputed at load time.
func (h *GetFacetsHandler) Handle(ctx context.Context, q GetFacetsQuery) (domain.Facets, error) {
	return h.repo.Facets(ctx), nil
}
