package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "veloxtrade/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler     *AuthHandler
	BrokerHandler   *BrokerHandler
	SettingsHandler *SettingsHandler
	StreamHandler   *StreamHandler
}

// SetupRoutes configures all HTTP routes on the single /api/v1 base path
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// The dashboard polls these; logging them is pure noise
			path := c.Request().URL.Path
			return path == "/api/v1/brokers/connected" || path == "/api/v1/portfolio"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// Authenticated auth routes
	authed := api.Group("/auth", custommiddleware.AuthMiddleware)
	{
		authed.GET("/me", config.AuthHandler.Me)
		authed.PUT("/profile", config.AuthHandler.UpdateProfile)
	}

	// Broker routes (protected)
	brokers := api.Group("/brokers", custommiddleware.AuthMiddleware)
	{
		brokers.GET("", config.BrokerHandler.Brokers)
		brokers.GET("/connected", config.BrokerHandler.Connected)
		brokers.POST("/sync", config.BrokerHandler.SyncAll)
		brokers.POST("/:id/connect", config.BrokerHandler.Connect)
		brokers.POST("/:id/disconnect", config.BrokerHandler.Disconnect)
		brokers.GET("/:id/status", config.BrokerHandler.Status)
		brokers.POST("/:id/orders", config.BrokerHandler.PlaceOrder)
		brokers.GET("/:id/orders", config.BrokerHandler.Orders)
		brokers.GET("/:id/orders/:orderId", config.BrokerHandler.OrderStatus)
		brokers.GET("/:id/holdings", config.BrokerHandler.Holdings)
	}

	// Settings and portfolio documents (protected)
	docs := api.Group("", custommiddleware.AuthMiddleware)
	{
		docs.GET("/settings", config.SettingsHandler.GetSettings)
		docs.PUT("/settings", config.SettingsHandler.SaveSettings)
		docs.GET("/portfolio", config.SettingsHandler.GetPortfolio)
		docs.PUT("/portfolio", config.SettingsHandler.SavePortfolio)
	}

	// Quote stream (protected; token can come via cookie for websockets)
	api.GET("/stream/:symbol", config.StreamHandler.Stream, custommiddleware.AuthMiddleware)
}
