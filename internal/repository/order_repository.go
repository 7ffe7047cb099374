package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

// OrderRepositoryImpl implements the OrderRepository interface over the
// velox_orders document. The order log is append-only.
type OrderRepositoryImpl struct {
	store store.Store
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(s store.Store) domain.OrderRepository {
	return &OrderRepositoryImpl{store: s}
}

func (r *OrderRepositoryImpl) readAll(ctx context.Context) ([]*domain.Order, error) {
	raw, err := r.store.Get(ctx, store.KeyOrders)
	if err == store.ErrKeyNotFound {
		return []*domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order log: %w", err)
	}

	var orders []*domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Printf("WARNING: malformed order log, treating as empty: %v", err)
		return []*domain.Order{}, nil
	}
	return orders, nil
}

// Append adds an order to the log
func (r *OrderRepositoryImpl) Append(ctx context.Context, order *domain.Order) error {
	orders, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	orders = append(orders, order)

	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal order log: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyOrders, raw); err != nil {
		return fmt.Errorf("failed to write order log: %w", err)
	}
	return nil
}

// GetByBroker retrieves all orders placed against a broker
func (r *OrderRepositoryImpl) GetByBroker(ctx context.Context, brokerID string) ([]*domain.Order, error) {
	orders, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Order, 0)
	for _, order := range orders {
		if order.BrokerID == brokerID {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

// GetByID retrieves an order by its order ID
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	orders, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// GetAll retrieves the whole order log
func (r *OrderRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Order, error) {
	return r.readAll(ctx)
}
