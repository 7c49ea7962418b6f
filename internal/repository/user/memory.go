package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"moneydream/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemory returns a volatile Repository, optionally pre-populated. Used
// when no database is configured so the demo accounts still work.
func NewMemory(seed ...domain.User) Repository {
	r := &memoryRepo{users: make(map[string]domain.User)}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		u.Email = strings.ToLower(u.Email)
		r.users[u.ID] = u
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return &u, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, domain.ErrNotFound
}
