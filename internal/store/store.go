// Package store provides the key-value persistence layer backing the typed
// entity repositories. Values are JSON documents; writes replace the whole
// record (last-write-wins).
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been deleted.
var ErrKeyNotFound = errors.New("key not found")

// Store is the backend-agnostic key-value contract. Implementations exist
// for memory, Redis, and Postgres; services never touch a backend directly.
type Store interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key currently present
	Keys(ctx context.Context) ([]string, error)

	// ClearAll removes every key except those listed. Used to wipe state
	// while preserving the user directory on logout-style resets.
	ClearAll(ctx context.Context, except ...string) error

	// Close releases backend resources
	Close() error
}

// Entity keys. The velox_ prefix is the legacy namespace carried over from
// the dashboard's storage layer.
const (
	KeyUsers       = "velox_users"
	KeyConnections = "velox_broker_connections"
	KeyOrders      = "velox_orders"
	KeyHoldings    = "velox_holdings"
	KeySettings    = "velox_settings"
	KeyPortfolio   = "velox_portfolio"
)
