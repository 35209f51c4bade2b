package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/cart"
)

// RedisCartStore implements cart.Store using Redis hashes. Each session's
// cart is a hash keyed by product ID, so concurrent adds from multiple
// instances accumulate correctly via HINCRBY.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCartStore creates a new Redis-based cart store
func NewRedisCartStore(cfg RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       ttl,
	}, nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = "cart:"
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Add increments the quantity for a product in the session's cart and
// returns the new quantity. The cart's TTL is refreshed on every add.
func (s *RedisCartStore) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int64) (int64, error) {
	if err := cart.ValidateAdd(sessionID, productID, quantity); err != nil {
		return 0, err
	}

	key := s.keyPrefix + sessionID

	pipe := s.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, key, productID.String(), quantity)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}

	return incr.Val(), nil
}

// Entries returns all entries in the session's cart
func (s *RedisCartStore) Entries(ctx context.Context, sessionID string) ([]cart.Entry, error) {
	key := s.keyPrefix + sessionID

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	entries := make([]cart.Entry, 0, len(fields))
	for field, value := range fields {
		productID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		quantity, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, cart.Entry{ProductID: productID, Quantity: quantity})
	}

	return entries, nil
}

// Clear removes the session's cart
func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	key := s.keyPrefix + sessionID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
