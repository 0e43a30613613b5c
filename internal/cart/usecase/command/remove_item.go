package command

import (
	"context"
	"fmt"

	cart "github.com/medwear/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the command to delete a cart line.
type RemoveItemCommand struct {
	SessionID string
	ProductID string
	Variant   string
}

// RemoveItemHandler handles the remove item command
type RemoveItemHandler struct {
	carts cart.Repository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts cart.Repository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle deletes the matching line. Removing an absent line is a no-op.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*cart.Summary, error) {
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

	if c.Remove(cmd.ProductID, cmd.Variant) {
		if err := h.carts.Save(ctx, cmd.SessionID, c); err != nil {
			return nil, fmt.Errorf("failed to persist cart: %w", err)
		}
	}

	summary := cart.Summarize(&c)
	return &summary, nil
}
