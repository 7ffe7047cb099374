package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GO_ENV", "STORE_BACKEND", "TRIAL_DAYS", "AUTH_AUTO_PROVISION",
		"BROKER_API_URL", "DEMO_MODE", "CONNECT_FALLBACK_DELAY", "STREAM_TICK_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 7, cfg.Auth.TrialDays)
	assert.True(t, cfg.Auth.AutoProvision)
	assert.True(t, cfg.Broker.DemoMode)
	assert.Equal(t, 1500*time.Millisecond, cfg.Broker.ConnectDelay)
	assert.Equal(t, 3*time.Second, cfg.Stream.TickInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("TRIAL_DAYS", "14")
	t.Setenv("AUTH_AUTO_PROVISION", "false")
	t.Setenv("DEMO_MODE", "false")
	t.Setenv("CONNECT_FALLBACK_DELAY", "10ms")

	cfg := Load()

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 14, cfg.Auth.TrialDays)
	assert.False(t, cfg.Auth.AutoProvision)
	assert.False(t, cfg.Broker.DemoMode)
	assert.Equal(t, 10*time.Millisecond, cfg.Broker.ConnectDelay)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("TRIAL_DAYS", "a-week")
	t.Setenv("DEMO_MODE", "maybe")
	t.Setenv("CONNECT_FALLBACK_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 7, cfg.Auth.TrialDays)
	assert.True(t, cfg.Broker.DemoMode)
	assert.Equal(t, 1500*time.Millisecond, cfg.Broker.ConnectDelay)
}
