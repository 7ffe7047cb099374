package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/repository"
	"veloxtrade/internal/store"
)

var errUpstreamDown = errors.New("dial tcp: connection refused")

// fakeGateway simulates the upstream broker API. With failing=true every
// call errors, which is the expected state when no upstream is deployed.
type fakeGateway struct {
	failing  bool
	holdings []*domain.Holding
}

func (g *fakeGateway) Connect(ctx context.Context, brokerID string, creds domain.Credentials) (*domain.BrokerConnection, error) {
	if g.failing {
		return nil, errUpstreamDown
	}
	now := time.Now()
	return &domain.BrokerConnection{BrokerID: brokerID, Status: domain.ConnectionConnected, ConnectedAt: now, LastSync: now}, nil
}

func (g *fakeGateway) Disconnect(ctx context.Context, brokerID string) error {
	if g.failing {
		return errUpstreamDown
	}
	return nil
}

func (g *fakeGateway) PlaceOrder(ctx context.Context, brokerID string, req domain.OrderRequest) (*domain.Order, error) {
	if g.failing {
		return nil, errUpstreamDown
	}
	return &domain.Order{
		OrderID: "UP_123", BrokerID: brokerID, Symbol: req.Symbol, Side: req.Side,
		Quantity: req.Quantity, Price: req.Price, Status: domain.OrderPending, PlacedAt: time.Now(),
	}, nil
}

func (g *fakeGateway) Holdings(ctx context.Context, brokerID string) ([]*domain.Holding, error) {
	if g.failing {
		return nil, errUpstreamDown
	}
	return g.holdings, nil
}

func (g *fakeGateway) OrderStatus(ctx context.Context, brokerID, orderID string) (*domain.Order, error) {
	if g.failing {
		return nil, errUpstreamDown
	}
	return &domain.Order{OrderID: orderID, BrokerID: brokerID, Status: domain.OrderCompleted}, nil
}

func newBrokerService(gateway domain.BrokerGateway, demoMode bool) *BrokerService {
	s := store.NewMemoryStore()
	return NewBrokerService(
		gateway,
		repository.NewConnectionRepository(s),
		repository.NewOrderRepository(s),
		repository.NewHoldingRepository(s),
		demoMode,
		FallbackDelays{}, // zero delays keep tests fast
	)
}

func TestConnect_UpstreamFailureFallsBackToMock(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	conn, err := svc.Connect(ctx, "zerodha", domain.Credentials{APIKey: "k"})
	require.NoError(t, err)
	assert.True(t, conn.IsMock)
	assert.Equal(t, domain.ConnectionConnected, conn.Status)
	assert.True(t, svc.IsConnected(ctx, "zerodha"))
}

func TestConnect_DemoModeOffSurfacesFailure(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, false)
	ctx := context.Background()

	_, err := svc.Connect(ctx, "zerodha", domain.Credentials{})
	assert.ErrorIs(t, err, domain.ErrConnectionFailed)
	assert.False(t, svc.IsConnected(ctx, "zerodha"))
}

func TestConnect_UnknownBrokerRejected(t *testing.T) {
	svc := newBrokerService(&fakeGateway{}, true)

	_, err := svc.Connect(context.Background(), "robinhood", domain.Credentials{})
	assert.ErrorIs(t, err, domain.ErrBrokerNotFound)
}

func TestConnect_TwiceKeepsSingleRecord(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	_, err := svc.Connect(ctx, "zerodha", domain.Credentials{})
	require.NoError(t, err)
	_, err = svc.Connect(ctx, "zerodha", domain.Credentials{})
	require.NoError(t, err)

	conns, err := svc.ConnectedBrokers(ctx)
	require.NoError(t, err)
	assert.Len(t, conns, 1)
}

func TestDisconnect_AlwaysClearsConnection(t *testing.T) {
	gw := &fakeGateway{failing: true}
	svc := newBrokerService(gw, true)
	ctx := context.Background()

	_, err := svc.Connect(ctx, "zerodha", domain.Credentials{})
	require.NoError(t, err)

	// Upstream disconnect fails, local record must still go
	require.NoError(t, svc.Disconnect(ctx, "zerodha"))
	assert.False(t, svc.IsConnected(ctx, "zerodha"))
}

func TestPlaceOrder_MockFallbackShape(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, "upstox", domain.OrderRequest{
		Symbol: "TCS", Side: domain.SideBuy, Quantity: 10, Price: 3500,
	})
	require.NoError(t, err)

	assert.True(t, order.IsMock)
	assert.Equal(t, domain.OrderCompleted, order.Status)
	assert.Regexp(t, regexp.MustCompile(`^MOCK_ORD_\d+$`), order.OrderID)
}

func TestPlaceOrder_DemoModeOffSurfacesFailure(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, false)

	_, err := svc.PlaceOrder(context.Background(), "upstox", domain.OrderRequest{
		Symbol: "TCS", Side: domain.SideBuy, Quantity: 10, Price: 3500,
	})
	assert.ErrorIs(t, err, domain.ErrOrderPlacement)
}

func TestPlaceOrder_RejectsInvalidRequest(t *testing.T) {
	svc := newBrokerService(&fakeGateway{}, true)
	ctx := context.Background()

	cases := []domain.OrderRequest{
		{Side: domain.SideBuy, Quantity: 10, Price: 3500},                    // no symbol
		{Symbol: "TCS", Side: "HOLD", Quantity: 10, Price: 3500},             // bad side
		{Symbol: "TCS", Side: domain.SideBuy, Quantity: -1, Price: 3500},     // negative qty
		{Symbol: "TCS", Side: domain.SideBuy, Quantity: 10, Price: 0},        // zero price
	}
	for _, req := range cases {
		_, err := svc.PlaceOrder(ctx, "upstox", req)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	}
}

func TestPlaceOrder_BuyRecordsHolding(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "upstox", domain.OrderRequest{
		Symbol: "TCS", Side: domain.SideBuy, Quantity: 10, Price: 3500,
	})
	require.NoError(t, err)

	holdings, err := svc.Holdings(ctx, "upstox")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "TCS", holdings[0].Symbol)
	assert.Equal(t, 10.0, holdings[0].Quantity)
}

func TestPlaceOrder_SellRecordsNoHolding(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "upstox", domain.OrderRequest{
		Symbol: "TCS", Side: domain.SideSell, Quantity: 10, Price: 3500,
	})
	require.NoError(t, err)

	holdings, err := svc.Holdings(ctx, "upstox")
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestHoldings_UpstreamFailureServesLocalWithoutSynthesis(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	holdings, err := svc.Holdings(ctx, "zerodha")
	require.NoError(t, err)
	assert.Empty(t, holdings, "no mock holdings are ever synthesized")
}

func TestHoldings_UpstreamSuccessReplacesLocal(t *testing.T) {
	gw := &fakeGateway{holdings: []*domain.Holding{{Symbol: "INFY", BrokerID: "zerodha", Quantity: 4}}}
	svc := newBrokerService(gw, true)
	ctx := context.Background()

	holdings, err := svc.Holdings(ctx, "zerodha")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "INFY", holdings[0].Symbol)
}

func TestOrderStatus_FallsBackToLocalLog(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, "upstox", domain.OrderRequest{
		Symbol: "TCS", Side: domain.SideBuy, Quantity: 1, Price: 100,
	})
	require.NoError(t, err)

	got, err := svc.OrderStatus(ctx, "upstox", placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, got.OrderID)

	_, err = svc.OrderStatus(ctx, "upstox", "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSyncAll_ContinuesPastFailuresAndStampsLastSync(t *testing.T) {
	svc := newBrokerService(&fakeGateway{failing: true}, true)
	ctx := context.Background()

	_, err := svc.Connect(ctx, "zerodha", domain.Credentials{})
	require.NoError(t, err)
	_, err = svc.Connect(ctx, "upstox", domain.Credentials{})
	require.NoError(t, err)

	results, err := svc.SyncAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// With the gateway down, holdings fall back to local records, so the
	// sync itself succeeds per broker.
	for _, r := range results {
		assert.True(t, r.Success, "broker %s", r.BrokerID)
	}
}

func TestSyncAll_NoConnectionsYieldsEmptyResults(t *testing.T) {
	svc := newBrokerService(&fakeGateway{}, true)

	results, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestConnect_FallbackDelayIsCancellable(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewBrokerService(
		&fakeGateway{failing: true},
		repository.NewConnectionRepository(s),
		repository.NewOrderRepository(s),
		repository.NewHoldingRepository(s),
		true,
		FallbackDelays{Connect: 5 * time.Second},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Connect(ctx, "zerodha", domain.Credentials{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "cancellation must abort the simulated delay")
}
