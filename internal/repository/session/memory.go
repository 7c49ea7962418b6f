package sessionrepo

import (
	"context"
	"sync"

	"moneydream/internal/domain"
	"moneydream/internal/session"
)

type memoryStore struct {
	mu sync.Mutex
	id *domain.Identity
}

// NewMemory returns an in-process session.Store. It backs the server when no
// database is configured and the unit tests; the slot does not survive a
// restart.
func NewMemory() session.Store {
	return &memoryStore{}
}

func (s *memoryStore) Load(_ context.Context) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return nil, nil
	}
	id := *s.id
	return &id, nil
}

func (s *memoryStore) Save(_ context.Context, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = &id
	return nil
}

func (s *memoryStore) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = nil
	return nil
}

func (s *memoryStore) Update(_ context.Context, patch domain.IdentityPatch) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return nil, session.ErrNoSession
	}
	merged := patch.Apply(*s.id)
	s.id = &merged
	id := merged
	return &id, nil
}
