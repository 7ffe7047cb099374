package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user directory operations
type UserRepository interface {
	// Create appends a new user to the directory
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update replaces the directory entry matching user.ID
	Update(ctx context.Context, user *User) error

	// GetAll retrieves the whole directory
	GetAll(ctx context.Context) ([]*User, error)
}

// ConnectionRepository defines the interface for broker connection records
type ConnectionRepository interface {
	// Upsert saves a connection, replacing any record with the same broker ID
	Upsert(ctx context.Context, conn *BrokerConnection) error

	// Get retrieves the connection for a broker, or ErrNotConnected
	Get(ctx context.Context, brokerID string) (*BrokerConnection, error)

	// Delete removes the connection for a broker. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, brokerID string) error

	// GetAll retrieves every connection record
	GetAll(ctx context.Context) ([]*BrokerConnection, error)
}

// OrderRepository defines the interface for the append-only order log
type OrderRepository interface {
	// Append adds an order to the log
	Append(ctx context.Context, order *Order) error

	// GetByBroker retrieves all orders placed against a broker
	GetByBroker(ctx context.Context, brokerID string) ([]*Order, error)

	// GetByID retrieves an order by its order ID, or ErrOrderNotFound
	GetByID(ctx context.Context, orderID string) (*Order, error)

	// GetAll retrieves the whole order log
	GetAll(ctx context.Context) ([]*Order, error)
}

// HoldingRepository defines the interface for recorded holdings
type HoldingRepository interface {
	// Append adds a holding record
	Append(ctx context.Context, holding *Holding) error

	// GetByBroker retrieves holdings recorded against a broker
	GetByBroker(ctx context.Context, brokerID string) ([]*Holding, error)

	// ReplaceByBroker swaps all holdings for a broker with a fresh set
	ReplaceByBroker(ctx context.Context, brokerID string, holdings []*Holding) error
}

// DocumentRepository defines the interface for the wholesale-replaced
// settings and portfolio documents
type DocumentRepository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error
	GetPortfolio(ctx context.Context) (*Portfolio, error)
	SavePortfolio(ctx context.Context, p *Portfolio) error
}

// BrokerGateway is the upstream broker API surface. The real implementation
// talks HTTP; tests substitute a fake.
type BrokerGateway interface {
	// Connect asks the upstream API to open a session with the broker
	Connect(ctx context.Context, brokerID string, creds Credentials) (*BrokerConnection, error)

	// Disconnect asks the upstream API to close the session
	Disconnect(ctx context.Context, brokerID string) error

	// PlaceOrder submits an order and returns the upstream record
	PlaceOrder(ctx context.Context, brokerID string, req OrderRequest) (*Order, error)

	// Holdings fetches live holdings from the broker
	Holdings(ctx context.Context, brokerID string) ([]*Holding, error)

	// OrderStatus fetches the live status of an order
	OrderStatus(ctx context.Context, brokerID, orderID string) (*Order, error)
}
