package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloxtrade/internal/domain"
)

func TestStream_SubscribeDeliversPeriodicTicks(t *testing.T) {
	svc := NewStreamService(5 * time.Millisecond)
	defer svc.Shutdown()

	var count atomic.Int64
	unsubscribe := svc.Subscribe("RELIANCE", func(tick domain.Tick) {
		assert.Equal(t, "RELIANCE", tick.Symbol)
		assert.Greater(t, tick.Price, 0.0)
		count.Add(1)
	})
	defer unsubscribe()

	require.Eventually(t, func() bool { return count.Load() >= 3 },
		time.Second, time.Millisecond, "expected at least three ticks")
}

func TestStream_UnsubscribeStopsTicks(t *testing.T) {
	svc := NewStreamService(5 * time.Millisecond)
	defer svc.Shutdown()

	var count atomic.Int64
	unsubscribe := svc.Subscribe("TCS", func(domain.Tick) { count.Add(1) })

	require.Eventually(t, func() bool { return count.Load() >= 1 },
		time.Second, time.Millisecond)

	unsubscribe()
	assert.Equal(t, 0, svc.ActiveFeeds())

	settled := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, count.Load(), "ticks must stop after unsubscribe")
}

func TestStream_UnsubscribeIsIdempotent(t *testing.T) {
	svc := NewStreamService(time.Minute)
	defer svc.Shutdown()

	unsubscribe := svc.Subscribe("INFY", func(domain.Tick) {})

	assert.NotPanics(t, func() {
		unsubscribe()
		unsubscribe()
	})
	assert.Equal(t, 0, svc.ActiveFeeds())
}

func TestStream_IndependentFeedsPerSubscription(t *testing.T) {
	svc := NewStreamService(5 * time.Millisecond)
	defer svc.Shutdown()

	var first, second atomic.Int64
	stopFirst := svc.Subscribe("TCS", func(domain.Tick) { first.Add(1) })
	stopSecond := svc.Subscribe("TCS", func(domain.Tick) { second.Add(1) })
	defer stopSecond()

	assert.Equal(t, 2, svc.ActiveFeeds())

	require.Eventually(t, func() bool { return first.Load() >= 1 && second.Load() >= 1 },
		time.Second, time.Millisecond)

	stopFirst()
	assert.Equal(t, 1, svc.ActiveFeeds())

	settled := second.Load()
	require.Eventually(t, func() bool { return second.Load() > settled },
		time.Second, time.Millisecond, "the remaining feed must keep ticking")
}

func TestStream_ShutdownStopsAllFeeds(t *testing.T) {
	svc := NewStreamService(5 * time.Millisecond)

	var count atomic.Int64
	svc.Subscribe("TCS", func(domain.Tick) { count.Add(1) })
	svc.Subscribe("INFY", func(domain.Tick) { count.Add(1) })

	svc.Shutdown()
	assert.Equal(t, 0, svc.ActiveFeeds())

	settled := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, count.Load())
}
