package domain

import "time"

// Order represents a placed order. Orders are append-only: status is fixed
// at creation and records are never mutated or deleted.
type Order struct {
	OrderID   string    `json:"order_id"`
	BrokerID  string    `json:"broker_id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	TradeType string    `json:"trade_type,omitempty"`
	Status    string    `json:"status"`
	IsMock    bool      `json:"is_mock"`
	PlacedAt  time.Time `json:"placed_at"`
}

// OrderSide constants
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// OrderStatus constants
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
)

// OrderRequest carries the caller-supplied fields of a new order
type OrderRequest struct {
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	TradeType string  `json:"trade_type,omitempty"`
}

// Validate checks an order request before it reaches a broker
func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return ErrInvalidOrder
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return ErrInvalidOrder
	}
	if r.Quantity <= 0 || r.Price <= 0 {
		return ErrInvalidOrder
	}
	return nil
}
