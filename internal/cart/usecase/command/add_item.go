package command

import (
	"context"
	"fmt"

	cart "github.com/medwear/storefront/internal/cart/domain"
	catalog "github.com/medwear/storefront/internal/catalog/domain"
)

// AddItemCommand represents the command to add one unit of a product to the
// session's cart.
type AddItemCommand struct {
	SessionID string
	ProductID string
	Variant   string
}

// AddItemHandler handles the add item command
type AddItemHandler struct {
	carts   cart.Repository
	catalog catalog.CatalogRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts cart.Repository, catalogRepo catalog.CatalogRepository) *AddItemHandler {
	return &AddItemHandler{carts: carts, catalog: catalogRepo}
}

// Handle snapshots the product into the cart: a repeat add of the same
// (product, variant) line increments its quantity, anything else appends a
// new line with quantity 1. The cart is persisted before the summary is
// returned. Returns catalog.ErrProductNotFound for an unknown product.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*cart.Summary, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	product, err := h.catalog.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := h.carts.Load(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c.Add(*product, cmd.Variant)

	if err := h.carts.Save(ctx, cmd.SessionID, c); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	summary := cart.Summarize(&c)
	return &summary, nil
}
