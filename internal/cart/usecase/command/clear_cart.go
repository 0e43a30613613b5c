package command

import (
	"context"
	"fmt"

	cart "github.com/medwear/storefront/internal/cart/domain"
)

// ClearCartCommand represents the command to drop the whole cart.
type ClearCartCommand struct {
	SessionID string
}

// ClearCartHandler handles the clear cart command
type ClearCartHandler struct {
	carts cart.Repository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts cart.Repository) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle removes the session's cart from storage.
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if err := h.carts.Delete(ctx, cmd.SessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
