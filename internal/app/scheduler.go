package app

import (
	"fmt"
	"time"
)

// Scheduler is the periodic measurement trigger. Start arms a ticker whose
// goroutine does nothing but set the work signal each period; all real work
// happens in the supervisor loop. The tick body performs no allocation, no
// blocking call, and touches no sensor or network state.
type Scheduler struct {
	signal *WorkSignal
	ticker *time.Ticker
	done   chan struct{}
}

// NewScheduler creates a scheduler that sets the given signal on each tick.
func NewScheduler(signal *WorkSignal) *Scheduler {
	return &Scheduler{signal: signal}
}

// Start arms the periodic timer. Returns an error if the period is not
// positive or the scheduler is already running.
func (s *Scheduler) Start(period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("scheduler period must be positive, got %v", period)
	}
	if s.ticker != nil {
		return fmt.Errorf("scheduler already started")
	}

	s.ticker = time.NewTicker(period)
	s.done = make(chan struct{})

	go func(ticks <-chan time.Time, done <-chan struct{}) {
		for {
			select {
			case <-ticks:
				s.signal.Set()
			case <-done:
				return
			}
		}
	}(s.ticker.C, s.done)

	return nil
}

// Stop disarms the timer. Safe to call when never started, and idempotent.
func (s *Scheduler) Stop() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
}
