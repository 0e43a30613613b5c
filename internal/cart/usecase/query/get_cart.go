package query

import (
	"context"
	"fmt"

	cart "github.com/medwear/storefront/internal/cart/domain"
)

// GetCartQuery represents the query to read the session's cart.
type GetCartQuery struct {
	SessionID string
}

// GetCartHandler handles the get cart query
type GetCartHandler struct {
	carts cart.Repository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts cart.Repository) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle returns the cart summary. A session without a stored cart gets the
// empty summary.
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*cart.Summary, error) {
	if q.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	c, err := h.carts.Load(ctx, q.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	summary := cart.Summarize(&c)
	return &summary, nil
}
