package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneydream/internal/domain"
)

// The settings table holds at most one row, pinned by a constant id.
const settingsRowID = 1

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context) (*domain.Settings, error) {
	const q = `
SELECT store_name, currency, free_shipping_threshold_cents, flat_shipping_cents, tax_rate_basis_points
FROM store_settings
WHERE id = $1
`
	var s domain.Settings
	err := r.pool.QueryRow(ctx, q, settingsRowID).Scan(
		&s.StoreName, &s.Currency,
		&s.FreeShippingThresholdCents, &s.FlatShippingCents, &s.TaxRateBasisPoints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	const q = `
INSERT INTO store_settings (id, store_name, currency, free_shipping_threshold_cents, flat_shipping_cents, tax_rate_basis_points)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    store_name = EXCLUDED.store_name,
    currency = EXCLUDED.currency,
    free_shipping_threshold_cents = EXCLUDED.free_shipping_threshold_cents,
    flat_shipping_cents = EXCLUDED.flat_shipping_cents,
    tax_rate_basis_points = EXCLUDED.tax_rate_basis_points
RETURNING store_name, currency, free_shipping_threshold_cents, flat_shipping_cents, tax_rate_basis_points
`
	var out domain.Settings
	err := r.pool.QueryRow(ctx, q, settingsRowID,
		s.StoreName, s.Currency,
		s.FreeShippingThresholdCents, s.FlatShippingCents, s.TaxRateBasisPoints,
	).Scan(
		&out.StoreName, &out.Currency,
		&out.FreeShippingThresholdCents, &out.FlatShippingCents, &out.TaxRateBasisPoints,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
