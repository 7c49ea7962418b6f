// Package sessionrepo provides durable backends for the single-slot session
// store.
package sessionrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneydream/internal/domain"
	"moneydream/internal/session"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a session.Store backed by a single row keyed by the
// fixed slot.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) session.Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Load(ctx context.Context) (*domain.Identity, error) {
	const q = `
SELECT user_id, email, name, role, phone, address, city, state, zip
FROM session_slots
WHERE slot = $1
`
	var id domain.Identity
	err := s.pool.QueryRow(ctx, q, session.SlotKey).Scan(
		&id.ID, &id.Email, &id.Name, &id.Role,
		&id.Phone, &id.Address, &id.City, &id.State, &id.Zip,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Printf("session repo: load error=%v", err)
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &id, nil
}

func (s *postgresStore) Save(ctx context.Context, id domain.Identity) error {
	const q = `
INSERT INTO session_slots (slot, user_id, email, name, role, phone, address, city, state, zip, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
ON CONFLICT (slot) DO UPDATE SET
    user_id = EXCLUDED.user_id,
    email = EXCLUDED.email,
    name = EXCLUDED.name,
    role = EXCLUDED.role,
    phone = EXCLUDED.phone,
    address = EXCLUDED.address,
    city = EXCLUDED.city,
    state = EXCLUDED.state,
    zip = EXCLUDED.zip,
    updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, session.SlotKey,
		id.ID, id.Email, id.Name, id.Role,
		id.Phone, id.Address, id.City, id.State, id.Zip,
	)
	if err != nil {
		s.logger.Printf("session repo: save email=%s error=%v", id.Email, err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *postgresStore) Remove(ctx context.Context) error {
	// Removing an empty slot is a valid no-op.
	_, err := s.pool.Exec(ctx, `DELETE FROM session_slots WHERE slot = $1`, session.SlotKey)
	if err != nil {
		s.logger.Printf("session repo: remove error=%v", err)
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *postgresStore) Update(ctx context.Context, patch domain.IdentityPatch) (*domain.Identity, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, session.ErrNoSession
	}
	merged := patch.Apply(*current)
	if err := s.Save(ctx, merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
