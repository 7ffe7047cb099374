package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

// DocumentRepositoryImpl implements the DocumentRepository interface for the
// settings and portfolio documents, which are replaced wholesale on save.
type DocumentRepositoryImpl struct {
	store store.Store
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(s store.Store) domain.DocumentRepository {
	return &DocumentRepositoryImpl{store: s}
}

// GetSettings returns the saved settings, or the defaults when nothing has
// been saved or the saved document is malformed.
func (r *DocumentRepositoryImpl) GetSettings(ctx context.Context) (*domain.Settings, error) {
	raw, err := r.store.Get(ctx, store.KeySettings)
	if err == store.ErrKeyNotFound {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := &domain.Settings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		log.Printf("WARNING: malformed settings, returning defaults: %v", err)
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings replaces the settings document
func (r *DocumentRepositoryImpl) SaveSettings(ctx context.Context, s *domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := r.store.Set(ctx, store.KeySettings, raw); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// GetPortfolio returns the saved portfolio snapshot, or a zeroed one
func (r *DocumentRepositoryImpl) GetPortfolio(ctx context.Context) (*domain.Portfolio, error) {
	raw, err := r.store.Get(ctx, store.KeyPortfolio)
	if err == store.ErrKeyNotFound {
		return domain.DefaultPortfolio(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}

	portfolio := &domain.Portfolio{}
	if err := json.Unmarshal(raw, portfolio); err != nil {
		log.Printf("WARNING: malformed portfolio, returning defaults: %v", err)
		return domain.DefaultPortfolio(), nil
	}
	return portfolio, nil
}

// SavePortfolio replaces the portfolio document
func (r *DocumentRepositoryImpl) SavePortfolio(ctx context.Context, p *domain.Portfolio) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyPortfolio, raw); err != nil {
		return fmt.Errorf("failed to write portfolio: %w", err)
	}
	return nil
}
