package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/medwear/storefront/internal/cart/domain"
	cartrepo "github.com/medwear/storefront/internal/cart/repository"
	catalog "github.com/medwear/storefront/internal/catalog/domain"
)

func TestGetCartNewSessionIsEmpty(t *testing.T) {
	handler := NewGetCartHandler(cartrepo.NewMemoryCartStore())

	summary, err := handler.Handle(context.Background(), GetCartQuery{SessionID: "fresh"})
	require.NoError(t, err)

	assert.NotNil(t, summary.Entries)
	assert.Empty(t, summary.Entries)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Zero(t, summary.TotalPrice)
}

func TestGetCartReturnsStoredCart(t *testing.T) {
	carts := cartrepo.NewMemoryCartStore()
	ctx := context.Background()

	var c cart.Cart
	c.Add(catalog.Product{ID: "scrub-top-classic", Name: "Classic Scrub Top", Price: 19.99}, "M")
	c.UpdateQuantity("scrub-top-classic", "M", 2)
	require.NoError(t, carts.Save(ctx, "sess-1", c))

	summary, err := NewGetCartHandler(carts).Handle(ctx, GetCartQuery{SessionID: "sess-1"})
	require.NoError(t, err)

	require.Len(t, summary.Entries, 1)
	assert.Equal(t, 2, summary.TotalItems)
	assert.InDelta(t, 39.98, summary.TotalPrice, 1e-9)
}

func TestGetCartRecoversFromMalformedBlob(t *testing.T) {
	carts := cartrepo.NewMemoryCartStore()
	carts.Put("sess-1", []byte("garbage"))

	summary, err := NewGetCartHandler(carts).Handle(context.Background(), GetCartQuery{SessionID: "sess-1"})
	require.NoError(t, err)
	assert.Empty(t, summary.Entries)
}

func TestGetCartRequiresSession(t *testing.T) {
	handler := NewGetCartHandler(cartrepo.NewMemoryCartStore())

	_, err := handler.Handle(context.Background(), GetCartQuery{})
	assert.Error(t, err)
}
