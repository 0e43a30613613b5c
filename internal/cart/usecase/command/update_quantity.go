package command

import (
	"context"
	"fmt"

	cart "github.com/medwear/storefront/internal/cart/domain"
)

// UpdateQuantityCommand represents the command to set the exact quantity of
// a cart line.
type UpdateQuantityCommand struct {
	SessionID string
	ProductID string
	Variant   string
	Quantity  int
}

// UpdateQuantityHandler handles the update quantity command
type UpdateQuantityHandler struct {
	carts cart.Repository
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(carts cart.Repository) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{carts: carts}
}

// Handle sets the line's quantity. A quantity below 1 or a miss on the
// (product, variant) key leaves the cart untouched and is not an error;
// removal only ever happens through the explicit remove command. The cart
// is persisted only when it actually changed.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*cart.Summary, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	c, err := h.carts.Load(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if c.UpdateQuantity(cmd.ProductID, cmd.Variant, cmd.Quantity) {
		if err := h.carts.Save(ctx, cmd.SessionID, c); err != nil {
			return nil, fmt.Errorf("failed to persist cart: %w", err)
		}
	}

	summary := cart.Summarize(&c)
	return &summary, nil
}
