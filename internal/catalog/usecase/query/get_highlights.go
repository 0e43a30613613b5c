package query

import (
	"context"

	"github.com/medwear/storefront/internal/catalog/domain"
)

// DefaultHighlightLimit matches the four-card landing page strip.
const DefaultHighlightLimit = 4

// GetHighlightsQuery represents the query to get a featured collection
type GetHighlightsQuery struct {
	Tab   domain.HighlightTab
	Limit int
}

// GetHighlightsHandler handles the get highlights query
type GetHighlightsHandler struct {
	repo domain.CatalogRepository
}

// NewGetHighlightsHandler creates a new get highlights handler
func NewGetHighlightsHandler(repo domain.CatalogRepository) *GetHighlightsHandler {
	return &GetHighlightsHandler{repo: repo}
}

// Handle returns the requested featured collection.
func (h *GetHighlightsHandler) Handle(ctx context.Context, q GetHighlightsQuery) ([]domain.Product, error) {
	if q.Limit < 1 {
		q.Limit = DefaultHighlightLimit
	}
	if q.Tab == "" {
		q.Tab = domain.TabBestseller
	}

	return domain.Highlights(h.repo.All(ctx), q.Tab, q.Limit), nil
}
