package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]map[uuid.UUID]int64
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[string]map[uuid.UUID]int64),
	}
}

// Add increments the quantity for a product in the session's cart and
// returns the new quantity
func (s *InMemoryCartStore) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int64) (int64, error) {
	if err := cart.ValidateAdd(sessionID, productID, quantity); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, exists := s.carts[sessionID]
	if !exists {
		entries = make(map[uuid.UUID]int64)
		s.carts[sessionID] = entries
	}

	entries[productID] += quantity
	return entries[productID], nil
}

// Entries returns all entries in the session's cart
func (s *InMemoryCartStore) Entries(ctx context.Context, sessionID string) ([]cart.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.carts[sessionID]
	entries := make([]cart.Entry, 0, len(stored))
	for productID, quantity := range stored {
		entries = append(entries, cart.Entry{ProductID: productID, Quantity: quantity})
	}

	return entries, nil
}

// Clear removes the session's cart
func (s *InMemoryCartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// Size returns the number of carts in the store (for testing/monitoring)
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
