// Package session keeps the current authenticated identity: an in-memory
// holder that drives request handling, mirrored best-effort into a durable
// single-slot store so the identity survives restarts.
package session

import (
	"context"
	"errors"

	"moneydream/internal/domain"
)

// SlotKey is the fixed key the durable store keeps the identity under.
// Saving a new identity always overwrites the previous one.
const SlotKey = "currentUser"

var (
	// ErrStoreUnavailable means no durable backend is configured. Callers
	// treat it as "no session", never as a fatal error.
	ErrStoreUnavailable = errors.New("session store unavailable")
	// ErrNoSession is returned by Update when the slot is empty.
	ErrNoSession = errors.New("no current session")
)

// Store is the durable single-slot identity store.
type Store interface {
	// Load returns the stored identity, or (nil, nil) when the slot is
	// empty. An empty slot is a valid result, not a failure.
	Load(ctx context.Context) (*domain.Identity, error)
	// Save upserts the slot, overwriting any prior record.
	Save(ctx context.Context, id domain.Identity) error
	// Remove clears the slot; removing an empty slot is a no-op.
	Remove(ctx context.Context) error
	// Update loads the current record, shallow-merges the patch and saves.
	// Returns ErrNoSession when the slot is empty.
	Update(ctx context.Context, patch domain.IdentityPatch) (*domain.Identity, error)
}

// Unavailable is the Store used when no durable storage exists. Every
// operation fails with ErrStoreUnavailable, which the holder degrades to an
// anonymous session.
type Unavailable struct{}

func (Unavailable) Load(context.Context) (*domain.Identity, error) {
	return nil, ErrStoreUnavailable
}

func (Unavailable) Save(context.Context, domain.Identity) error {
	return ErrStoreUnavailable
}

func (Unavailable) Remove(context.Context) error {
	return ErrStoreUnavailable
}

func (Unavailable) Update(context.Context, domain.IdentityPatch) (*domain.Identity, error) {
	return nil, ErrStoreUnavailable
}
