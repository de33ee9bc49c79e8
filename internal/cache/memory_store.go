package cache

import (
	"context"
	"sync"

	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
)

// MemoryStore is an in-process cache tier used when no Redis is configured.
// The zero value is ready to use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*subscriptiondomain.Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*subscriptiondomain.Subscription)}
}

func (s *MemoryStore) Find(_ context.Context, id string) (*subscriptiondomain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[cacheKey(id)], nil
}

func (s *MemoryStore) Put(_ context.Context, id string, sub *subscriptiondomain.Subscription) error {
	if sub == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]*subscriptiondomain.Subscription)
	}
	s.entries[cacheKey(id)] = sub
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cacheKey(id))
	return nil
}

var _ subscriptiondomain.RecordStore = (*MemoryStore)(nil)
