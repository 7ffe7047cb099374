package configs

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the gateway
type Config struct {
	Server Server
	Store  Store
	Auth   Auth
	Broker Broker
	Stream Stream
}

// Server holds HTTP server configuration
type Server struct {
	Port string
	Env  string
}

// Store holds persistence configuration. Backend selects between
// "memory", "redis", and "postgres".
type Store struct {
	Backend     string
	DatabaseURL string
	RedisURL    string
}

// Auth holds authentication configuration. The JWT signing secret is not
// carried here; the middleware reads JWT_SECRET itself so there is a single
// source of truth for the key.
type Auth struct {
	TrialDays int

	// AutoProvision makes login create a trial account for an unknown
	// email instead of failing. Preserves the legacy dashboard behavior;
	// turn off for anything resembling production.
	AutoProvision bool
}

// Broker holds upstream broker API configuration
type Broker struct {
	// APIURL is the upstream broker API origin. Empty means no upstream
	// is wired and every call takes the demo fallback path.
	APIURL string

	// DemoMode substitutes a synthesized success (tagged is_mock) when
	// the upstream call fails. With DemoMode off, upstream failures
	// surface as errors.
	DemoMode bool

	// Simulated latencies applied before a demo fallback resolves
	ConnectDelay  time.Duration
	OrderDelay    time.Duration
	HoldingsDelay time.Duration
}

// Stream holds quote stream configuration
type Stream struct {
	TickInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Store: Store{
			Backend:     getEnv("STORE_BACKEND", "memory"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
		},
		Auth: Auth{
			TrialDays:     getEnvInt("TRIAL_DAYS", 7),
			AutoProvision: getEnvBool("AUTH_AUTO_PROVISION", true),
		},
		Broker: Broker{
			APIURL:        getEnv("BROKER_API_URL", ""),
			DemoMode:      getEnvBool("DEMO_MODE", true),
			ConnectDelay:  getEnvDuration("CONNECT_FALLBACK_DELAY", 1500*time.Millisecond),
			OrderDelay:    getEnvDuration("ORDER_FALLBACK_DELAY", 2000*time.Millisecond),
			HoldingsDelay: getEnvDuration("HOLDINGS_FALLBACK_DELAY", 1000*time.Millisecond),
		},
		Stream: Stream{
			TickInterval: getEnvDuration("STREAM_TICK_INTERVAL", 3*time.Second),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
