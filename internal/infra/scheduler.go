package infra

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"veloxtrade/internal/service"
)

// Scheduler runs the gateway's periodic jobs: the broker sync loop and the
// trial-expiry sweep.
type Scheduler struct {
	cron          *cron.Cron
	brokerService *service.BrokerService
	authService   *service.AuthService
}

// NewScheduler creates a new scheduler
func NewScheduler(brokerService *service.BrokerService, authService *service.AuthService) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		brokerService: brokerService,
		authService:   authService,
	}
}

// Start registers the cron jobs and starts the scheduler
func (s *Scheduler) Start() error {
	// Refresh holdings and orders for every connected broker each minute
	if _, err := s.cron.AddFunc("*/1 * * * *", func() {
		if err := s.RunSyncNow(); err != nil {
			log.Printf("ERROR: Scheduled broker sync failed: %v", err)
		}
	}); err != nil {
		return err
	}

	// Sweep for expired trials at minute 10 of every hour
	if _, err := s.cron.AddFunc("10 * * * *", func() {
		ctx := context.Background()
		expired, err := s.authService.ExpireTrials(ctx)
		if err != nil {
			log.Printf("ERROR: Trial expiry sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("[OK] Trial sweep downgraded %d account(s)", expired)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[OK] Scheduler started: broker sync every minute, trial sweep hourly")
	return nil
}

// RunSyncNow triggers a broker sync outside the schedule
func (s *Scheduler) RunSyncNow() error {
	ctx := context.Background()
	results, err := s.brokerService.SyncAll(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Success {
			log.Printf("[OK] Synced broker %s: %d holdings, %d orders", r.BrokerID, r.Holdings, r.Orders)
		}
	}
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}
