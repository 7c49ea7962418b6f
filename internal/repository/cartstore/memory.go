package cartstore

import (
	"context"
	"sync"

	"moneydream/internal/domain"
)

type memoryStore struct {
	mu   sync.Mutex
	cart *domain.Cart
}

// NewMemory returns an in-process Store, used by tests.
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) Load(_ context.Context) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil, nil
	}
	cart := s.cart.Clone()
	return &cart, nil
}

func (s *memoryStore) Save(_ context.Context, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := cart.Clone()
	s.cart = &snapshot
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return nil
}
