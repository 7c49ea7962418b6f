// Package cartstore mirrors the in-memory cart so it can survive a restart.
// The engine is always the authority; a store is optional, and without one
// the cart stays volatile and session-scoped.
package cartstore

import (
	"context"

	"moneydream/internal/domain"
)

// Store persists the single current cart. Load returns (nil, nil) when
// nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (*domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Clear(ctx context.Context) error
}
