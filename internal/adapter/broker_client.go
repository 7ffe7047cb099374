package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"veloxtrade/internal/domain"
)

// BrokerClient implements BrokerGateway over the upstream broker API.
// Broker APIs rate-limit aggressively, so every request passes a per-broker
// token bucket before it goes on the wire.
type BrokerClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewBrokerClient creates a new upstream broker API client. An empty baseURL
// produces a client whose every call fails, which pushes the service layer
// onto its demo fallback path.
func NewBrokerClient(baseURL string) domain.BrokerGateway {
	return &BrokerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the token bucket for a broker, creating it on first use.
// 5 req/s with burst 10 stays under every supported broker's documented cap.
func (c *BrokerClient) limiter(brokerID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[brokerID]
	if !ok {
		l = rate.NewLimiter(rate.Limit(5), 10)
		c.limiters[brokerID] = l
	}
	return l
}

func (c *BrokerClient) do(ctx context.Context, brokerID, method, path string, body, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("no upstream broker API configured: %w", domain.ErrConnectionFailed)
	}

	if err := c.limiter(brokerID).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call broker API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("broker API returned error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Connect asks the upstream API to open a session with the broker
func (c *BrokerClient) Connect(ctx context.Context, brokerID string, creds domain.Credentials) (*domain.BrokerConnection, error) {
	var result struct {
		ConnectionID string `json:"connection_id"`
		Status       string `json:"status"`
	}

	path := fmt.Sprintf("/api/v1/brokers/%s/connect", brokerID)
	if err := c.do(ctx, brokerID, http.MethodPost, path, creds, &result); err != nil {
		return nil, err
	}

	now := time.Now()
	return &domain.BrokerConnection{
		BrokerID:    brokerID,
		Status:      domain.ConnectionConnected,
		IsMock:      false,
		ConnectedAt: now,
		LastSync:    now,
	}, nil
}

// Disconnect asks the upstream API to close the session
func (c *BrokerClient) Disconnect(ctx context.Context, brokerID string) error {
	path := fmt.Sprintf("/api/v1/brokers/%s/disconnect", brokerID)
	return c.do(ctx, brokerID, http.MethodPost, path, nil, nil)
}

// PlaceOrder submits an order and returns the upstream record
func (c *BrokerClient) PlaceOrder(ctx context.Context, brokerID string, req domain.OrderRequest) (*domain.Order, error) {
	var result struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}

	path := fmt.Sprintf("/api/v1/brokers/%s/orders", brokerID)
	if err := c.do(ctx, brokerID, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}

	return &domain.Order{
		OrderID:  result.OrderID,
		BrokerID: brokerID,
		Symbol:   req.Symbol,
		Side:     req.Side,
		Quantity: req.Quantity,
		Price:    req.Price,
		Status:   result.Status,
		IsMock:   false,
		PlacedAt: time.Now(),
	}, nil
}

// Holdings fetches live holdings from the broker
func (c *BrokerClient) Holdings(ctx context.Context, brokerID string) ([]*domain.Holding, error) {
	var result struct {
		Holdings []*domain.Holding `json:"holdings"`
	}

	path := fmt.Sprintf("/api/v1/brokers/%s/holdings", brokerID)
	if err := c.do(ctx, brokerID, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Holdings, nil
}

// OrderStatus fetches the live status of an order
func (c *BrokerClient) OrderStatus(ctx context.Context, brokerID, orderID string) (*domain.Order, error) {
	order := &domain.Order{}

	path := fmt.Sprintf("/api/v1/brokers/%s/orders/%s", brokerID, orderID)
	if err := c.do(ctx, brokerID, http.MethodGet, path, nil, order); err != nil {
		return nil, err
	}
	return order, nil
}
