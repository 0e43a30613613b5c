package repository

import (
	"encoding/json"
	"fmt"

	"github.com/medwear/storefront/internal/cart/domain"
)

// EncodeCart serializes the full entry list into the blob stored per
// session.
func EncodeCart(cart domain.Cart) ([]byte, error) {
	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// DecodeCart parses a stored blob back into a cart. Callers treat a decode
// failure as "empty cart"; there is no versioning or migration of the
// stored shape.
func DecodeCart(data []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}
