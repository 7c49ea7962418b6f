package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"moneydream/internal/domain"
)

type ProductWriter interface {
	UpsertByName(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a storefront catalog export (a JSON array of products)
// and inserts/updates products keyed by name.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

type jsonRow struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	PriceCents  *int64   `json:"priceCents"`
	Price       *float64 `json:"price"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

// Run parses the catalog and upserts every product. Exports written by hand
// tend to carry dollar amounts, so a `price` of 19.99 becomes 1999 cents
// unless `priceCents` is given explicitly.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var rows []jsonRow
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	imported := 0
	for _, row := range rows {
		p, err := rowToProduct(row)
		if err != nil {
			return imported, err
		}
		if _, err := i.productRepo.UpsertByName(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		imported++
	}
	return imported, nil
}

func rowToProduct(row jsonRow) (*domain.Product, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid product row (missing name)")
	}

	var cents int64
	switch {
	case row.PriceCents != nil:
		cents = *row.PriceCents
	case row.Price != nil:
		cents = int64(math.Round(*row.Price * 100))
	}
	if cents <= 0 {
		return nil, fmt.Errorf("invalid price for product %q", name)
	}
	if row.Stock < 0 {
		return nil, fmt.Errorf("invalid stock for product %q", name)
	}

	return &domain.Product{
		Name:        name,
		Category:    strings.TrimSpace(row.Category),
		PriceCents:  cents,
		Stock:       row.Stock,
		Sizes:       row.Sizes,
		Colors:      row.Colors,
		Image:       strings.TrimSpace(row.Image),
		Description: row.Description,
	}, nil
}
