package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"veloxtrade/internal/delivery/http/dto"
	"veloxtrade/internal/domain"
	"veloxtrade/internal/service"
)

// BrokerHandler handles broker connection and order requests
type BrokerHandler struct {
	brokerService *service.BrokerService
}

// NewBrokerHandler creates a new BrokerHandler
func NewBrokerHandler(brokerService *service.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService}
}

// Brokers lists the supported broker registry
// GET /api/v1/brokers
func (h *BrokerHandler) Brokers(c echo.Context) error {
	return SuccessResponse(c, service.SupportedBrokers())
}

// Connected lists every active broker connection
// GET /api/v1/brokers/connected
func (h *BrokerHandler) Connected(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conns, err := h.brokerService.ConnectedBrokers(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list connections", err)
	}

	out := make([]*dto.ConnectionOutput, 0, len(conns))
	for _, conn := range conns {
		out = append(out, connectionOutput(conn))
	}
	return SuccessResponse(c, out)
}

// Connect opens a connection to a broker
// POST /api/v1/brokers/:id/connect
func (h *BrokerHandler) Connect(c echo.Context) error {
	brokerID := c.Param("id")

	var req dto.ConnectRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	// Connect may sit through a simulated broker round trip, so give it
	// more room than the usual request budget.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	conn, err := h.brokerService.Connect(ctx, brokerID, req.Credentials())
	if errors.Is(err, domain.ErrBrokerNotFound) {
		return NotFoundResponse(c, "Unknown broker: "+brokerID)
	}
	if errors.Is(err, domain.ErrConnectionFailed) {
		return BadGatewayResponse(c, "Broker connection failed", err)
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to connect broker", err)
	}

	return SuccessResponse(c, connectionOutput(conn))
}

// Disconnect closes the connection to a broker
// POST /api/v1/brokers/:id/disconnect
func (h *BrokerHandler) Disconnect(c echo.Context) error {
	brokerID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.brokerService.Disconnect(ctx, brokerID); err != nil {
		return InternalServerErrorResponse(c, "Failed to disconnect broker", err)
	}

	return SuccessMessageResponse(c, "Broker disconnected", nil)
}

// Status reports whether a broker is connected
// GET /api/v1/brokers/:id/status
func (h *BrokerHandler) Status(c echo.Context) error {
	brokerID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	return SuccessResponse(c, map[string]interface{}{
		"broker_id": brokerID,
		"connected": h.brokerService.IsConnected(ctx, brokerID),
	})
}

// PlaceOrder submits an order against a broker
// POST /api/v1/brokers/:id/orders
func (h *BrokerHandler) PlaceOrder(c echo.Context) error {
	brokerID := c.Param("id")

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	order, err := h.brokerService.PlaceOrder(ctx, brokerID, req.OrderRequest())
	if errors.Is(err, domain.ErrBrokerNotFound) {
		return NotFoundResponse(c, "Unknown broker: "+brokerID)
	}
	if errors.Is(err, domain.ErrInvalidOrder) {
		return BadRequestResponse(c, "Invalid order: symbol, side, positive quantity and price are required")
	}
	if errors.Is(err, domain.ErrOrderPlacement) {
		return BadGatewayResponse(c, "Order placement failed", err)
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to place order", err)
	}

	return CreatedResponse(c, order)
}

// Orders lists every order placed against a broker
// GET /api/v1/brokers/:id/orders
func (h *BrokerHandler) Orders(c echo.Context) error {
	brokerID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.brokerService.Orders(ctx, brokerID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list orders", err)
	}
	return SuccessResponse(c, orders)
}

// OrderStatus returns the status of a single order
// GET /api/v1/brokers/:id/orders/:orderId
func (h *BrokerHandler) OrderStatus(c echo.Context) error {
	brokerID := c.Param("id")
	orderID := c.Param("orderId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	order, err := h.brokerService.OrderStatus(ctx, brokerID, orderID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return NotFoundResponse(c, "Order not found: "+orderID)
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get order status", err)
	}
	return SuccessResponse(c, order)
}

// Holdings lists holdings for a broker
// GET /api/v1/brokers/:id/holdings
func (h *BrokerHandler) Holdings(c echo.Context) error {
	brokerID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	holdings, err := h.brokerService.Holdings(ctx, brokerID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get holdings", err)
	}
	return SuccessResponse(c, holdings)
}

// SyncAll refreshes every connected broker and reports per-broker results
// POST /api/v1/brokers/sync
func (h *BrokerHandler) SyncAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	results, err := h.brokerService.SyncAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Broker sync failed", err)
	}
	return SuccessResponse(c, results)
}

func connectionOutput(conn *domain.BrokerConnection) *dto.ConnectionOutput {
	return &dto.ConnectionOutput{
		BrokerID:    conn.BrokerID,
		Status:      conn.Status,
		IsMock:      conn.IsMock,
		ConnectedAt: conn.ConnectedAt.Format(time.RFC3339),
		LastSync:    conn.LastSync.Format(time.RFC3339),
	}
}
