package domain

import (
	"context"

	catalog "github.com/medwear/storefront/internal/catalog/domain"
)

// Entry is one purchasable line in a cart. The product is a snapshot taken
// at add time, so later catalog price changes never affect an existing
// line. Line identity is the (product id, variant) pair; the empty variant
// is a key of its own.
type Entry struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant,omitempty"`
}

// Cart holds the entries of one session.
type Cart struct {
	Entries []Entry `json:"entries"`
}

func (c *Cart) find(productID, variant string) int {
	for i := range c.Entries {
		if c.Entries[i].Product.ID == productID && c.Entries[i].Variant == variant {
			return i
		}
	}
	return -1
}

// Add increments the quantity of the matching line, or appends a new line
// with quantity 1 holding a snapshot of the product.
func (c *Cart) Add(product catalog.Product, variant string) {
	if i := c.find(product.ID, variant); i >= 0 {
		c.Entries[i].Quantity++
		return
	}
	c.Entries = append(c.Entries, Entry{
		Product:  product,
		Quantity: 1,
		Variant:  variant,
	})
}

// UpdateQuantity sets the quantity of the matching line. Quantities below 1
// are ignored: removal is a separate, explicit operation and never happens
// as a side effect of a quantity update. Reports whether the cart changed.
func (c *Cart) UpdateQuantity(productID, variant string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.find(productID, variant)
	if i < 0 {
		return false
	}
	c.Entries[i].Quantity = quantity
	return true
}

// Remove deletes the matching line. Removing an absent line is a no-op,
// not an error. Reports whether the cart changed.
func (c *Cart) Remove(productID, variant string) bool {
	i := c.find(productID, variant)
	if i < 0 {
		return false
	}
	c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
	return true
}

// TotalItems sums the quantities across all lines, for the badge counter.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Entries {
		total += c.Entries[i].Quantity
	}
	return total
}

// TotalPrice sums price times quantity over all lines, using the prices
// snapshotted at add time.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for i := range c.Entries {
		total += c.Entries[i].Product.Price * float64(c.Entries[i].Quantity)
	}
	return total
}

// Summary is the cart view returned to the client after every read and
// mutation.
type Summary struct {
	Entries    []Entry `json:"entries"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

// Summarize builds the client-facing view of the cart.
func Summarize(c *Cart) Summary {
	entries := c.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return Summary{
		Entries:    entries,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// Repository defines the contract for durable cart storage. One session
// maps to one serialized cart; Load on an unknown or unreadable session
// yields the empty cart rather than an error.
type Repository interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Delete(ctx context.Context, sessionID string) error
}
