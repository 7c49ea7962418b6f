package session

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"moneydream/internal/domain"
)

// State is the tri-state UI gate for the current session.
type State string

const (
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

const persistTimeout = 5 * time.Second

// Holder owns the in-memory identity and is the authority for the current
// request path. The durable store is a best-effort mirror: writes to it are
// dispatched asynchronously and their failures are logged, never surfaced,
// and never block the caller.
type Holder struct {
	store  Store
	logger *log.Logger

	mu       sync.Mutex
	state    State
	identity *domain.Identity
	started  bool

	wg sync.WaitGroup
}

// NewHolder creates a Holder in the loading state.
func NewHolder(store Store, logger *log.Logger) *Holder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Holder{store: store, logger: logger, state: StateLoading}
}

// Start performs the one startup load and leaves the loading state exactly
// once per process lifetime. A stored identity transitions to authenticated;
// an empty slot or any load failure transitions to anonymous. Subsequent
// calls are no-ops.
func (h *Holder) Start(ctx context.Context) State {
	h.mu.Lock()
	if h.started {
		defer h.mu.Unlock()
		return h.state
	}
	h.started = true
	h.mu.Unlock()

	id, err := h.store.Load(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case err != nil:
		h.logger.Printf("session: load failed, starting anonymous: %v", err)
		h.state = StateAnonymous
	case id == nil:
		h.state = StateAnonymous
	default:
		h.identity = id
		h.state = StateAuthenticated
		h.logger.Printf("session: restored identity %s", id.Email)
	}
	return h.state
}

// Current returns the state and a copy of the identity, nil when anonymous.
func (h *Holder) Current() (State, *domain.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.identity == nil {
		return h.state, nil
	}
	id := *h.identity
	return h.state, &id
}

// Login installs the identity synchronously and mirrors it to the store in
// the background.
func (h *Holder) Login(id domain.Identity) {
	h.mu.Lock()
	h.identity = &id
	h.state = StateAuthenticated
	h.mu.Unlock()

	h.dispatch(func(ctx context.Context) {
		if err := h.store.Save(ctx, id); err != nil {
			h.logger.Printf("session: save failed: %v", err)
		}
	})
}

// Logout clears the identity synchronously and removes the stored record in
// the background.
func (h *Holder) Logout() {
	h.mu.Lock()
	h.identity = nil
	h.state = StateAnonymous
	h.mu.Unlock()

	h.dispatch(func(ctx context.Context) {
		if err := h.store.Remove(ctx); err != nil {
			h.logger.Printf("session: remove failed: %v", err)
		}
	})
}

// UpdateProfile shallow-merges the patch into the current identity and
// mirrors the change. Fails only when no session is active; store failures
// stay in the background.
func (h *Holder) UpdateProfile(patch domain.IdentityPatch) (domain.Identity, error) {
	h.mu.Lock()
	if h.identity == nil {
		h.mu.Unlock()
		return domain.Identity{}, ErrNoSession
	}
	merged := patch.Apply(*h.identity)
	h.identity = &merged
	h.mu.Unlock()

	h.dispatch(func(ctx context.Context) {
		if _, err := h.store.Update(ctx, patch); err != nil {
			h.logger.Printf("session: update failed: %v", err)
		}
	})
	return merged, nil
}

// Flush waits for in-flight store writes. Used at shutdown and in tests.
func (h *Holder) Flush() {
	h.wg.Wait()
}

func (h *Holder) dispatch(fn func(ctx context.Context)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		fn(ctx)
	}()
}
