package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type productSeed struct {
	Name        string
	Category    string
	PriceCents  int64
	Stock       int
	Sizes       []string
	Colors      []string
	Image       string
	Description string
}

// Apply inserts demo accounts, a starter catalog and the default store
// settings. It is idempotent via ON CONFLICT upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "admin@moneydream.com", Password: "123456", Name: "Administrador", Role: "admin"},
		{Email: "cliente@moneydream.com", Password: "123456", Name: "Cliente Demo", Role: "client"},
	}
	for _, u := range users {
		if err := upsertUser(ctx, pool, u); err != nil {
			return fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
	}

	products := []productSeed{
		{
			Name:        "Classic Tee",
			Category:    "shirts",
			PriceCents:  1999,
			Stock:       40,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"white", "black"},
			Description: "Soft cotton tee, everyday fit",
		},
		{
			Name:        "Denim Jacket",
			Category:    "jackets",
			PriceCents:  5999,
			Stock:       12,
			Sizes:       []string{"M", "L"},
			Colors:      []string{"blue"},
			Description: "Mid-weight denim jacket",
		},
		{
			Name:        "Canvas Sneakers",
			Category:    "shoes",
			PriceCents:  3499,
			Stock:       25,
			Sizes:       []string{"40", "41", "42", "43"},
			Colors:      []string{"white", "red"},
			Description: "Low-top canvas sneakers",
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureSettings(ctx, pool); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}
	return nil
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, password_hash, name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    role = EXCLUDED.role
`
	_, err = pool.Exec(ctx, q, u.Email, string(hash), u.Name, u.Role)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, category, price_cents, stock, sizes, colors, image, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO UPDATE
SET category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    sizes = EXCLUDED.sizes,
    colors = EXCLUDED.colors,
    image = EXCLUDED.image,
    description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, p.Name, p.Category, p.PriceCents, p.Stock, p.Sizes, p.Colors, p.Image, p.Description)
	return err
}

// ensureSettings writes the settings row only when absent so an operator's
// edits survive reseeding.
func ensureSettings(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO store_settings (id, store_name, currency, free_shipping_threshold_cents, flat_shipping_cents, tax_rate_basis_points)
VALUES (1, 'Money Dream', 'USD', 5000, 1000, 1600)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, q)
	return err
}
