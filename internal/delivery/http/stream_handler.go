package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/service"
)

// StreamHandler upgrades clients to a websocket and forwards quote ticks
type StreamHandler struct {
	streamService *service.StreamService
	upgrader      websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(streamService *service.StreamService) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from a different origin in dev
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream streams synthetic quote ticks for a symbol until the client
// disconnects. Each connection owns exactly one feed subscription.
// GET /api/v1/stream/:symbol
func (h *StreamHandler) Stream(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "Symbol is required")
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ticks := make(chan domain.Tick, 8)
	unsubscribe := h.streamService.Subscribe(symbol, func(tick domain.Tick) {
		select {
		case ticks <- tick:
		default:
			// Slow client: drop the tick rather than block the feed
		}
	})
	defer unsubscribe()

	// Reader goroutine: its only job is to notice the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case tick := <-ticks:
			if err := ws.WriteJSON(tick); err != nil {
				log.Printf("[WARN] Stream write failed for %s: %v", symbol, err)
				return nil
			}
		}
	}
}
