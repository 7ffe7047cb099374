package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

// HoldingRepositoryImpl implements the HoldingRepository interface over the
// velox_holdings document.
type HoldingRepositoryImpl struct {
	store store.Store
}

// NewHoldingRepository creates a new HoldingRepository
func NewHoldingRepository(s store.Store) domain.HoldingRepository {
	return &HoldingRepositoryImpl{store: s}
}

func (r *HoldingRepositoryImpl) readAll(ctx context.Context) ([]*domain.Holding, error) {
	raw, err := r.store.Get(ctx, store.KeyHoldings)
	if err == store.ErrKeyNotFound {
		return []*domain.Holding{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}

	var holdings []*domain.Holding
	if err := json.Unmarshal(raw, &holdings); err != nil {
		log.Printf("WARNING: malformed holdings, treating as empty: %v", err)
		return []*domain.Holding{}, nil
	}
	return holdings, nil
}

func (r *HoldingRepositoryImpl) writeAll(ctx context.Context, holdings []*domain.Holding) error {
	raw, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to marshal holdings: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyHoldings, raw); err != nil {
		return fmt.Errorf("failed to write holdings: %w", err)
	}
	return nil
}

// Append adds a holding record
func (r *HoldingRepositoryImpl) Append(ctx context.Context, holding *domain.Holding) error {
	holdings, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	return r.writeAll(ctx, append(holdings, holding))
}

// GetByBroker retrieves holdings recorded against a broker
func (r *HoldingRepositoryImpl) GetByBroker(ctx context.Context, brokerID string) ([]*domain.Holding, error) {
	holdings, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Holding, 0)
	for _, holding := range holdings {
		if holding.BrokerID == brokerID {
			matched = append(matched, holding)
		}
	}
	return matched, nil
}

// ReplaceByBroker swaps all holdings for a broker with a fresh set, used
// after a successful upstream sync.
func (r *HoldingRepositoryImpl) ReplaceByBroker(ctx context.Context, brokerID string, fresh []*domain.Holding) error {
	holdings, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	kept := holdings[:0]
	for _, holding := range holdings {
		if holding.BrokerID != brokerID {
			kept = append(kept, holding)
		}
	}
	kept = append(kept, fresh...)

	return r.writeAll(ctx, kept)
}
