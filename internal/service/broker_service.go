package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"veloxtrade/internal/domain"
)

// FallbackDelays are the simulated latencies applied before a demo-mode
// fallback resolves, mirroring what a real broker round trip feels like.
type FallbackDelays struct {
	Connect  time.Duration
	Order    time.Duration
	Holdings time.Duration
}

// BrokerService owns the per-broker connection lifecycle and the order log.
// Every upstream failure is either surfaced (demo mode off) or papered over
// with a synthesized result tagged is_mock (demo mode on).
type BrokerService struct {
	gateway     domain.BrokerGateway
	connRepo    domain.ConnectionRepository
	orderRepo   domain.OrderRepository
	holdingRepo domain.HoldingRepository
	demoMode    bool
	delays      FallbackDelays
}

// NewBrokerService creates a new BrokerService
func NewBrokerService(
	gateway domain.BrokerGateway,
	connRepo domain.ConnectionRepository,
	orderRepo domain.OrderRepository,
	holdingRepo domain.HoldingRepository,
	demoMode bool,
	delays FallbackDelays,
) *BrokerService {
	return &BrokerService{
		gateway:     gateway,
		connRepo:    connRepo,
		orderRepo:   orderRepo,
		holdingRepo: holdingRepo,
		demoMode:    demoMode,
		delays:      delays,
	}
}

// Connect opens (or replaces) the connection to a broker. In demo mode an
// upstream failure still yields a connected record, tagged is_mock.
func (s *BrokerService) Connect(ctx context.Context, brokerID string, creds domain.Credentials) (*domain.BrokerConnection, error) {
	if _, err := LookupBroker(brokerID); err != nil {
		return nil, err
	}

	conn, err := s.gateway.Connect(ctx, brokerID, creds)
	if err != nil {
		if !s.demoMode {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrConnectionFailed, brokerID, err)
		}

		log.Printf("[WARN] Upstream connect failed for %s, falling back to mock: %v", brokerID, err)
		if err := s.waitFallback(ctx, s.delays.Connect); err != nil {
			return nil, err
		}

		now := time.Now()
		conn = &domain.BrokerConnection{
			BrokerID:    brokerID,
			Status:      domain.ConnectionConnected,
			IsMock:      true,
			ConnectedAt: now,
			LastSync:    now,
		}
	}

	if err := s.connRepo.Upsert(ctx, conn); err != nil {
		return nil, err
	}

	log.Printf("[OK] Broker %s connected (mock=%v)", brokerID, conn.IsMock)
	return conn, nil
}

// Disconnect closes the connection to a broker. The upstream call is best
// effort; the local record is removed regardless.
func (s *BrokerService) Disconnect(ctx context.Context, brokerID string) error {
	if err := s.gateway.Disconnect(ctx, brokerID); err != nil {
		log.Printf("[WARN] Upstream disconnect failed for %s (ignored): %v", brokerID, err)
	}

	if err := s.connRepo.Delete(ctx, brokerID); err != nil {
		return err
	}

	log.Printf("[OK] Broker %s disconnected", brokerID)
	return nil
}

// PlaceOrder submits an order against a broker and appends it to the order
// log. In demo mode an upstream failure yields a completed mock order.
func (s *BrokerService) PlaceOrder(ctx context.Context, brokerID string, req domain.OrderRequest) (*domain.Order, error) {
	if _, err := LookupBroker(brokerID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.gateway.PlaceOrder(ctx, brokerID, req)
	if err != nil {
		if !s.demoMode {
			return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrOrderPlacement, req.Side, req.Symbol, err)
		}

		log.Printf("[WARN] Upstream order failed for %s, falling back to mock: %v", brokerID, err)
		if err := s.waitFallback(ctx, s.delays.Order); err != nil {
			return nil, err
		}

		order = &domain.Order{
			OrderID:   fmt.Sprintf("MOCK_ORD_%d", time.Now().UnixMilli()),
			BrokerID:  brokerID,
			Symbol:    req.Symbol,
			Side:      req.Side,
			Quantity:  req.Quantity,
			Price:     req.Price,
			TradeType: req.TradeType,
			Status:    domain.OrderCompleted,
			IsMock:    true,
			PlacedAt:  time.Now(),
		}
	} else {
		order.TradeType = req.TradeType
	}

	if err := s.orderRepo.Append(ctx, order); err != nil {
		return nil, err
	}

	// A filled BUY shows up in holdings immediately
	if order.Side == domain.SideBuy {
		holding := &domain.Holding{
			Symbol:       order.Symbol,
			Quantity:     order.Quantity,
			AveragePrice: order.Price,
			CurrentPrice: order.Price,
			BrokerID:     brokerID,
			TradeType:    order.TradeType,
		}
		if err := s.holdingRepo.Append(ctx, holding); err != nil {
			log.Printf("ERROR: Failed to record holding for %s: %v", order.Symbol, err)
		}
	}

	log.Printf("[OK] Order %s placed: %s %s x%.2f @ %.2f (mock=%v)",
		order.OrderID, order.Side, order.Symbol, order.Quantity, order.Price, order.IsMock)
	return order, nil
}

// Holdings returns holdings for a broker. The upstream fetch is preferred;
// on failure the locally recorded holdings are returned after the fallback
// delay. No mock holdings are ever synthesized.
func (s *BrokerService) Holdings(ctx context.Context, brokerID string) ([]*domain.Holding, error) {
	holdings, err := s.gateway.Holdings(ctx, brokerID)
	if err == nil {
		if replaceErr := s.holdingRepo.ReplaceByBroker(ctx, brokerID, holdings); replaceErr != nil {
			log.Printf("ERROR: Failed to cache holdings for %s: %v", brokerID, replaceErr)
		}
		return holdings, nil
	}

	log.Printf("[WARN] Upstream holdings failed for %s, serving local records: %v", brokerID, err)
	if err := s.waitFallback(ctx, s.delays.Holdings); err != nil {
		return nil, err
	}
	return s.holdingRepo.GetByBroker(ctx, brokerID)
}

// OrderStatus returns the status of an order, preferring the upstream view
// and falling back to the local order log.
func (s *BrokerService) OrderStatus(ctx context.Context, brokerID, orderID string) (*domain.Order, error) {
	if order, err := s.gateway.OrderStatus(ctx, brokerID, orderID); err == nil {
		return order, nil
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// Orders returns every order placed against a broker
func (s *BrokerService) Orders(ctx context.Context, brokerID string) ([]*domain.Order, error) {
	return s.orderRepo.GetByBroker(ctx, brokerID)
}

// ConnectedBrokers returns every connection record
func (s *BrokerService) ConnectedBrokers(ctx context.Context) ([]*domain.BrokerConnection, error) {
	return s.connRepo.GetAll(ctx)
}

// IsConnected reports whether a broker currently has a connection record
func (s *BrokerService) IsConnected(ctx context.Context, brokerID string) bool {
	_, err := s.connRepo.Get(ctx, brokerID)
	return err == nil
}

// SyncAll refreshes holdings and orders for every connected broker,
// continuing past individual failures and reporting one row per broker.
func (s *BrokerService) SyncAll(ctx context.Context) ([]*domain.SyncResult, error) {
	conns, err := s.connRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSyncFailed, err)
	}

	results := make([]*domain.SyncResult, 0, len(conns))
	for _, conn := range conns {
		result := &domain.SyncResult{
			BrokerID: conn.BrokerID,
			SyncedAt: time.Now(),
		}

		holdings, hErr := s.Holdings(ctx, conn.BrokerID)
		orders, oErr := s.Orders(ctx, conn.BrokerID)

		if hErr != nil || oErr != nil {
			result.Success = false
			if hErr != nil {
				result.Error = hErr.Error()
			} else {
				result.Error = oErr.Error()
			}
			log.Printf("ERROR: Sync failed for broker %s: %s", conn.BrokerID, result.Error)
		} else {
			result.Success = true
			result.Holdings = len(holdings)
			result.Orders = len(orders)

			conn.LastSync = result.SyncedAt
			if err := s.connRepo.Upsert(ctx, conn); err != nil {
				log.Printf("ERROR: Failed to record last sync for %s: %v", conn.BrokerID, err)
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// waitFallback simulates the latency of a broker round trip before a
// fallback resolves. Cancelling the context aborts the wait.
func (s *BrokerService) waitFallback(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
