// Package settings serves the store configuration and keeps a live copy of
// the pricing rules. Cart preview and checkout both read rules from here, so
// an admin edit switches them together.
package settings

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"moneydream/internal/domain"
	"moneydream/internal/pricing"
	settingsrepo "moneydream/internal/repository/settings"
)

type Service struct {
	repo   settingsrepo.Repository
	logger *log.Logger

	mu      sync.RWMutex
	current domain.Settings
}

// New creates the service with defaults taken from configuration. Load
// replaces them with the stored row when one exists.
func New(repo settingsrepo.Repository, defaults domain.Settings, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, current: defaults}
}

// Load reads the stored settings once at startup. A missing row or a failing
// repository keeps the configured defaults.
func (s *Service) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("settings: load failed, keeping defaults: %v", err)
		}
		return
	}
	s.mu.Lock()
	s.current = *stored
	s.mu.Unlock()
}

// Current returns the active settings.
func (s *Service) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Rules returns the active pricing rules.
func (s *Service) Rules() pricing.Rules {
	return pricing.FromSettings(s.Current())
}

// Update validates, persists and atomically swaps the live settings.
func (s *Service) Update(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	if strings.TrimSpace(in.StoreName) == "" {
		return nil, errors.New("store name required")
	}
	if in.FreeShippingThresholdCents < 0 || in.FlatShippingCents < 0 {
		return nil, errors.New("shipping values must not be negative")
	}
	if in.TaxRateBasisPoints < 0 || in.TaxRateBasisPoints > 10000 {
		return nil, errors.New("tax rate must be between 0 and 10000 basis points")
	}

	saved := &in
	if s.repo != nil {
		var err error
		saved, err = s.repo.Save(ctx, in)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.current = *saved
	s.mu.Unlock()
	return saved, nil
}
