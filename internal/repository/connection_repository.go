package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

// ConnectionRepositoryImpl implements the ConnectionRepository interface
// over the velox_broker_connections document.
type ConnectionRepositoryImpl struct {
	store store.Store
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(s store.Store) domain.ConnectionRepository {
	return &ConnectionRepositoryImpl{store: s}
}

func (r *ConnectionRepositoryImpl) readAll(ctx context.Context) ([]*domain.BrokerConnection, error) {
	raw, err := r.store.Get(ctx, store.KeyConnections)
	if err == store.ErrKeyNotFound {
		return []*domain.BrokerConnection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read broker connections: %w", err)
	}

	var conns []*domain.BrokerConnection
	if err := json.Unmarshal(raw, &conns); err != nil {
		log.Printf("WARNING: malformed broker connections, treating as empty: %v", err)
		return []*domain.BrokerConnection{}, nil
	}
	return conns, nil
}

func (r *ConnectionRepositoryImpl) writeAll(ctx context.Context, conns []*domain.BrokerConnection) error {
	raw, err := json.Marshal(conns)
	if err != nil {
		return fmt.Errorf("failed to marshal broker connections: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyConnections, raw); err != nil {
		return fmt.Errorf("failed to write broker connections: %w", err)
	}
	return nil
}

// Upsert saves a connection, replacing any record with the same broker ID.
// This keeps the at-most-one-connection-per-broker invariant.
func (r *ConnectionRepositoryImpl) Upsert(ctx context.Context, conn *domain.BrokerConnection) error {
	conns, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range conns {
		if existing.BrokerID == conn.BrokerID {
			conns[i] = conn
			replaced = true
			break
		}
	}
	if !replaced {
		conns = append(conns, conn)
	}

	return r.writeAll(ctx, conns)
}

// Get retrieves the connection for a broker
func (r *ConnectionRepositoryImpl) Get(ctx context.Context, brokerID string) (*domain.BrokerConnection, error) {
	conns, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, conn := range conns {
		if conn.BrokerID == brokerID {
			return conn, nil
		}
	}
	return nil, domain.ErrNotConnected
}

// Delete removes the connection for a broker
func (r *ConnectionRepositoryImpl) Delete(ctx context.Context, brokerID string) error {
	conns, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	kept := conns[:0]
	for _, conn := range conns {
		if conn.BrokerID != brokerID {
			kept = append(kept, conn)
		}
	}

	return r.writeAll(ctx, kept)
}

// GetAll retrieves every connection record
func (r *ConnectionRepositoryImpl) GetAll(ctx context.Context) ([]*domain.BrokerConnection, error) {
	return r.readAll(ctx)
}
