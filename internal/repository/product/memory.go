package product

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"moneydream/internal/domain"
)

type memoryRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemory returns a volatile Repository, optionally pre-populated with a
// starter catalog for running without a database.
func NewMemory(seed ...domain.Product) Repository {
	r := &memoryRepo{}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.products = append(r.products, p)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Newest first, matching the database ordering.
	out := make([]domain.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		out = append(out, r.products[i])
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	r.products = append(r.products, p)
	out := p
	return &out, nil
}

func (r *memoryRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == p.ID {
			p.CreatedAt = r.products[i].CreatedAt
			r.products[i] = p
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryRepo) UpsertByName(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].Name == p.Name {
			p.ID = r.products[i].ID
			p.CreatedAt = r.products[i].CreatedAt
			r.products[i] = p
			out := p
			return &out, nil
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	r.products = append(r.products, p)
	out := p
	return &out, nil
}
