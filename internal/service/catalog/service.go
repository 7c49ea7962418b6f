// Package catalog exposes storefront product browsing and the admin CRUD
// over the same repository.
package catalog

import (
	"context"
	"errors"
	"strings"

	"moneydream/internal/domain"
	productrepo "moneydream/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ProductInput carries the admin product form.
type ProductInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	PriceCents  int64    `json:"priceCents"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if in.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

func (in ProductInput) toDomain() domain.Product {
	return domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Image:       strings.TrimSpace(in.Image),
		Description: in.Description,
	}
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in.toDomain())
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toDomain()
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
