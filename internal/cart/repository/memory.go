package repository

import (
	"context"
	"sync"

	"github.com/medwear/storefront/internal/cart/domain"
	"github.com/medwear/storefront/pkg/logger"
)

// MemoryCartStore is a mutex-guarded in-process cart store. It holds the
// same serialized blobs a Redis deployment would, so load/save semantics
// (including the malformed-blob-means-empty-cart rule) match exactly. Used
// in tests and as the fallback when no Redis address is configured.
type MemoryCartStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryCartStore creates an empty in-memory cart store.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{blobs: make(map[string][]byte)}
}

// Load reads the session's cart; unknown sessions and malformed blobs load
// as the empty cart.
func (s *MemoryCartStore) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	s.mu.RLock()
	data, ok := s.blobs[sessionID]
	s.mu.RUnlock()

	if !ok {
		return domain.Cart{}, nil
	}

	cart, err := DecodeCart(data)
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session_id", sessionID).
			Msg("Discarding malformed cart blob")
		return domain.Cart{}, nil
	}
	return cart, nil
}

// Save serializes and stores the full entry list.
func (s *MemoryCartStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.blobs[sessionID] = data
	s.mu.Unlock()
	return nil
}

// Delete drops the session's cart.
func (s *MemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.blobs, sessionID)
	s.mu.Unlock()
	return nil
}

// Put stores a raw blob for a session, bypassing the codec. Exists so tests
// can exercise recovery from corrupted data.
func (s *MemoryCartStore) Put(sessionID string, data []byte) {
	s.mu.Lock()
	s.blobs[sessionID] = data
	s.mu.Unlock()
}
