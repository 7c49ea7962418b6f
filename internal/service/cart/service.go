// Package cart implements the shopping-cart aggregation engine: line-item
// merging and a full total recompute after every mutation.
package cart

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"moneydream/internal/domain"
	"moneydream/internal/repository/cartstore"
)

const persistTimeout = 5 * time.Second

// Service owns the cart aggregate. Mutations are serialized by a mutex and
// applied in call order; none of them can fail. When a store is configured
// the cart is mirrored to it fire-and-forget, the same best-effort discipline
// the session holder uses.
type Service struct {
	store  cartstore.Store
	logger *log.Logger

	mu   sync.Mutex
	cart domain.Cart

	wg sync.WaitGroup
}

// New creates an empty cart engine. store may be nil, leaving the cart
// volatile for the process lifetime.
func New(store cartstore.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, logger: logger}
}

// Restore rehydrates the cart from the mirror once at startup. A missing or
// failing store leaves the cart empty; it is never an error.
func (s *Service) Restore(ctx context.Context) {
	if s.store == nil {
		return
	}
	saved, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Printf("cart: restore failed, starting empty: %v", err)
		return
	}
	if saved == nil {
		return
	}
	s.mu.Lock()
	s.cart = saved.Clone()
	s.cart.Recompute()
	s.mu.Unlock()
}

// Snapshot returns a copy of the current cart.
func (s *Service) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem merges on the (id, size) key by summing quantities, otherwise
// appends, preserving first-seen order. A non-positive quantity clamps to 1.
func (s *Service) AddItem(item domain.LineItem) domain.Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].SameVariant(item) {
			s.cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, item)
	}
	s.cart.Recompute()
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// RemoveItem removes every line for the product, across size variants.
// Removing an unknown id is a no-op.
func (s *Service) RemoveItem(id string) domain.Cart {
	s.mu.Lock()
	kept := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.cart.Items = kept
	s.cart.Recompute()
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// UpdateQuantity sets the quantity on the first line matching the product
// id. Quantities below 1 leave the cart untouched.
func (s *Service) UpdateQuantity(id string, quantity int) domain.Cart {
	s.mu.Lock()
	changed := false
	if quantity >= 1 {
		for i := range s.cart.Items {
			if s.cart.Items[i].ID == id {
				s.cart.Items[i].Quantity = quantity
				changed = true
				break
			}
		}
	}
	s.cart.Recompute()
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	if changed {
		s.persist(snapshot)
	}
	return snapshot
}

// Clear empties the cart. Called only after a confirmed payment.
func (s *Service) Clear() domain.Cart {
	s.mu.Lock()
	s.cart = domain.Cart{}
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	if s.store != nil {
		s.dispatch(func(ctx context.Context) {
			if err := s.store.Clear(ctx); err != nil {
				s.logger.Printf("cart: clear mirror failed: %v", err)
			}
		})
	}
	return snapshot
}

// Flush waits for in-flight mirror writes. Used at shutdown and in tests.
func (s *Service) Flush() {
	s.wg.Wait()
}

func (s *Service) persist(snapshot domain.Cart) {
	if s.store == nil {
		return
	}
	s.dispatch(func(ctx context.Context) {
		if err := s.store.Save(ctx, snapshot); err != nil {
			s.logger.Printf("cart: mirror save failed: %v", err)
		}
	})
}

func (s *Service) dispatch(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		fn(ctx)
	}()
}
