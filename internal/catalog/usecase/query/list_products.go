package query

import (
	"context"

	"github.com/medwear/storefront/internal/catalog/domain"
)

// Listing defaults. PageSize matches the storefront grid of 12 cards.
const (
	DefaultPageSize = 12
	DefaultPage     = 1
)

// ListProductsQuery represents the query to list products for one page of
// the storefront grid.
type ListProductsQuery struct {
	Spec     domain.FilterSpec
	Page     int
	PageSize int
}

// ProductPage is one materialized page of the filtered catalog plus the
// pagination metadata the client needs to build its page controls.
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo domain.CatalogRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.CatalogRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle runs the filter/sort/paginate pipeline over the catalog. A page
// past the end of the filtered set yields an empty item list, never an
// error; the caller decides whether to clamp and re-query.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	filtered := domain.Filter(h.repo.All(ctx), q.Spec)

	cursor := domain.PageCursor{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: len(filtered),
	}

	totalPages := (cursor.TotalItems + q.PageSize - 1) / q.PageSize

	return &ProductPage{
		Items:      domain.Paginate(filtered, cursor),
		TotalItems: cursor.TotalItems,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}
