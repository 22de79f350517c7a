package menu

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps the menu in process memory. Used when the server runs
// from a YAML menu file and by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemoryStore creates a store holding a copy of items.
func NewMemoryStore(items []Item) *MemoryStore {
	return &MemoryStore{items: slices.Clone(items)}
}

// ListAvailable returns items with remaining stock, in menu order.
func (s *MemoryStore) ListAvailable(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Available(s.items), nil
}

// Replace swaps the whole menu, e.g. after the day's menu is reloaded.
func (s *MemoryStore) Replace(items []Item) {
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
}
