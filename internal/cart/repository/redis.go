package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medwear/storefront/internal/cart/domain"
	"github.com/medwear/storefront/pkg/logger"
)

const cartKeyPrefix = "cart:"

// RedisCartStore keeps one serialized cart blob per session in Redis, the
// service-side counterpart of the browser's local-storage cart.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store on the given client. Carts expire
// after ttl of inactivity; every save renews the clock.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Load reads the session's cart. A missing key or a malformed blob loads as
// the empty cart; the parse failure is logged for diagnostics and never
// surfaced to the user.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to load cart: %w", err)
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

// Save writes the full entry list. Called on every successful mutation.
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete drops the session's cart.
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
