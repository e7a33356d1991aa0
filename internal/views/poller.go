package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/labmall/storefront/internal/logging"
)

// Poller runs one job on a fixed interval until stopped.
type Poller struct {
	mu   sync.Mutex
	cron *cron.Cron
}

func NewPoller() *Poller {
	return &Poller{}
}

// Start schedules job every interval. Starting a running poller replaces
// the previous schedule.
func (p *Poller) Start(interval time.Duration, job func(ctx context.Context)) error {
	if interval < time.Second {
		return fmt.Errorf("poll interval %s is below one second", interval)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc("@every "+interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	p.Stop()
	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()

	logging.Base().WithField("interval", interval.String()).Debug("poller started")
	c.Start()
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}
