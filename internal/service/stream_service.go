package service

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"veloxtrade/internal/domain"
)

// StreamService generates synthetic quote ticks for subscribed symbols.
// There is no real market feed behind it; ticks are noise around a fixed
// base price, which is all the dashboard needs to animate.
type StreamService struct {
	interval time.Duration

	mu   sync.Mutex
	subs map[int64]chan struct{}
	next int64
	wg   sync.WaitGroup
}

// NewStreamService creates a new StreamService emitting at the given interval
func NewStreamService(interval time.Duration) *StreamService {
	return &StreamService{
		interval: interval,
		subs:     make(map[int64]chan struct{}),
	}
}

// Subscribe starts a tick feed for a symbol. The callback runs on the feed's
// goroutine once per interval until the returned unsubscribe function is
// called. Unsubscribe is idempotent.
func (s *StreamService) Subscribe(symbol string, callback func(domain.Tick)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	stop := make(chan struct{})
	s.subs[id] = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				callback(syntheticTick(symbol))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(stop)
		})
	}
}

// Shutdown stops every active feed and waits for their goroutines to exit
func (s *StreamService) Shutdown() {
	s.mu.Lock()
	for id, stop := range s.subs {
		close(stop)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("[OK] Quote streams stopped")
}

// ActiveFeeds returns the number of live subscriptions
func (s *StreamService) ActiveFeeds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func syntheticTick(symbol string) domain.Tick {
	price := 100 + rand.Float64()*10
	return domain.Tick{
		Symbol:    symbol,
		Price:     price,
		Change:    rand.Float64()*4 - 2,
		Volume:    int64(rand.Intn(10000)),
		Timestamp: time.Now(),
	}
}
