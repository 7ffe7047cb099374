package domain

import "time"

// BrokerConnection represents a connection to a brokerage account.
// At most one record exists per broker ID; a new connect replaces the old one.
type BrokerConnection struct {
	BrokerID    string    `json:"broker_id"`
	Status      string    `json:"status"`
	IsMock      bool      `json:"is_mock"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSync    time.Time `json:"last_sync"`
}

// ConnectionStatus constants
const (
	ConnectionConnected = "connected"
)

// Credentials carries the fields a broker asks for at connect time.
// Secrets pass through to the upstream API and are never persisted.
type Credentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	ClientID  string `json:"client_id,omitempty"`
	TOTP      string `json:"totp,omitempty"`
}

// BrokerConfig describes a broker supported by the gateway
type BrokerConfig struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	CredentialFields []string `json:"credential_fields"`
}

// Holding represents a position held at a broker
type Holding struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	CurrentPrice float64 `json:"current_price"`
	BrokerID     string  `json:"broker_id"`
	TradeType    string  `json:"trade_type"`
}

// SyncResult reports the outcome of syncing one broker
type SyncResult struct {
	BrokerID string    `json:"broker_id"`
	Success  bool      `json:"success"`
	Holdings int       `json:"holdings"`
	Orders   int       `json:"orders"`
	Error    string    `json:"error,omitempty"`
	SyncedAt time.Time `json:"synced_at"`
}

// Tick is a single quote update pushed to stream subscribers
type Tick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	Volume    int64     `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}
