package dto

import "veloxtrade/internal/domain"

// ConnectRequest represents the broker connect payload
type ConnectRequest struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	ClientID  string `json:"client_id,omitempty"`
	TOTP      string `json:"totp,omitempty"`
}

// Credentials converts the request into the domain type
func (r *ConnectRequest) Credentials() domain.Credentials {
	return domain.Credentials{
		APIKey:    r.APIKey,
		APISecret: r.APISecret,
		ClientID:  r.ClientID,
		TOTP:      r.TOTP,
	}
}

// PlaceOrderRequest represents the order placement payload
type PlaceOrderRequest struct {
	Symbol    string  `json:"symbol" validate:"required"`
	Side      string  `json:"side" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	TradeType string  `json:"trade_type,omitempty"`
}

// OrderRequest converts the payload into the domain type
func (r *PlaceOrderRequest) OrderRequest() domain.OrderRequest {
	return domain.OrderRequest{
		Symbol:    r.Symbol,
		Side:      r.Side,
		Quantity:  r.Quantity,
		Price:     r.Price,
		TradeType: r.TradeType,
	}
}

// ConnectionOutput represents a broker connection in API responses
type ConnectionOutput struct {
	BrokerID    string `json:"broker_id"`
	Status      string `json:"status"`
	IsMock      bool   `json:"is_mock"`
	ConnectedAt string `json:"connected_at"`
	LastSync    string `json:"last_sync"`
}
