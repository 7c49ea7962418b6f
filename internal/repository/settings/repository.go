package settings

import (
	"context"

	"moneydream/internal/domain"
)

type Repository interface {
	// Get returns the settings row, or domain.ErrNotFound before the first
	// save.
	Get(ctx context.Context) (*domain.Settings, error)
	// Save upserts the single settings row.
	Save(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}
