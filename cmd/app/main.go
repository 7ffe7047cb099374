package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"veloxtrade/configs"
	"veloxtrade/internal/adapter"
	"veloxtrade/internal/database"
	delivery "veloxtrade/internal/delivery/http"
	"veloxtrade/internal/infra"
	"veloxtrade/internal/repository"
	"veloxtrade/internal/service"
	"veloxtrade/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()
	ctx := context.Background()

	// Initialize the entity store
	entityStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer entityStore.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(entityStore)
	connRepo := repository.NewConnectionRepository(entityStore)
	orderRepo := repository.NewOrderRepository(entityStore)
	holdingRepo := repository.NewHoldingRepository(entityStore)
	docRepo := repository.NewDocumentRepository(entityStore)

	// Initialize the upstream broker gateway
	if cfg.Broker.APIURL == "" {
		log.Println("[WARN] BROKER_API_URL not set; all broker calls will take the demo fallback path")
	}
	gateway := adapter.NewBrokerClient(cfg.Broker.APIURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Auth.TrialDays, cfg.Auth.AutoProvision)
	brokerService := service.NewBrokerService(gateway, connRepo, orderRepo, holdingRepo, cfg.Broker.DemoMode, service.FallbackDelays{
		Connect:  cfg.Broker.ConnectDelay,
		Order:    cfg.Broker.OrderDelay,
		Holdings: cfg.Broker.HoldingsDelay,
	})
	streamService := service.NewStreamService(cfg.Stream.TickInterval)
	defer streamService.Shutdown()

	// Initialize scheduler (broker sync + trial sweep)
	scheduler := infra.NewScheduler(brokerService, authService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize the API router
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:     delivery.NewAuthHandler(authService),
		BrokerHandler:   delivery.NewBrokerHandler(brokerService),
		SettingsHandler: delivery.NewSettingsHandler(docRepo),
		StreamHandler:   delivery.NewStreamHandler(streamService),
	})

	// Root router carries the ops endpoints and mounts the API
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Get("/health", handleHealth(entityStore))
	r.Post("/sync/trigger", handleTriggerSync(scheduler))
	r.Mount("/", e)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("VeloxTrade gateway starting on %s", addr)
	log.Printf("Environment: %s | Store: %s | Demo mode: %v", cfg.Server.Env, cfg.Store.Backend, cfg.Broker.DemoMode)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// newStore builds the configured store backend
func newStore(ctx context.Context, cfg *configs.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		log.Println("[OK] Using in-memory store (state is lost on restart)")
		return store.NewMemoryStore(), nil

	case "redis":
		s, err := store.NewRedisStore(cfg.Store.RedisURL)
		if err != nil {
			return nil, err
		}
		log.Println("[OK] Using Redis store")
		return s, nil

	case "postgres":
		db, err := infra.NewDatabase(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			return nil, err
		}
		log.Println("[OK] Using Postgres store")
		return store.NewPostgresStore(db), nil

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

func handleHealth(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "healthy"
		if _, err := s.Keys(ctx); err != nil {
			storeStatus = "unhealthy"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"velox-gateway","store":"%s","timestamp":"%s"}`,
			storeStatus, time.Now().Format(time.RFC3339))
	}
}

func handleTriggerSync(scheduler *infra.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("Manual broker sync triggered via ops endpoint")

		go func() {
			if err := scheduler.RunSyncNow(); err != nil {
				log.Printf("ERROR: Manual broker sync failed: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"message":"Broker sync triggered","status":"processing"}`))
	}
}
