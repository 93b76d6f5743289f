package app

import (
	"context"
	"sync"
	"time"

	"github.com/edge-labs/telemship/internal/ports"
)

// Default pipeline timing values.
const (
	DefaultMeasureInterval = 5 * time.Second
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultLinkTimeout     = 15 * time.Second
	DefaultReconnectDelay  = 5 * time.Second
	DefaultRestartDelay    = 10 * time.Second
)

// Phase is the supervisor's position in the delivery pipeline state machine.
type Phase int

const (
	PhaseBooting Phase = iota
	PhaseAwaitingLink
	PhaseRunning
	PhaseBackoff
	PhaseFatalRestart
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "Booting"
	case PhaseAwaitingLink:
		return "AwaitingLink"
	case PhaseRunning:
		return "Running"
	case PhaseBackoff:
		return "Backoff"
	case PhaseFatalRestart:
		return "FatalRestart"
	default:
		return "Unknown"
	}
}

// SupervisorConfig contains timing configuration for the supervisor loop.
type SupervisorConfig struct {
	// MeasureInterval is the scheduler period between measurements.
	MeasureInterval time.Duration

	// PollInterval is how often the loop checks the work signal.
	PollInterval time.Duration

	// LinkTimeout bounds the startup network bring-up attempt.
	LinkTimeout time.Duration

	// ReconnectDelay is the fixed backoff before a reconnect attempt.
	ReconnectDelay time.Duration

	// RestartDelay is the pause before the fatal device restart.
	RestartDelay time.Duration
}

// SetDefaults fills zero fields with default values.
func (c *SupervisorConfig) SetDefaults() {
	if c.MeasureInterval <= 0 {
		c.MeasureInterval = DefaultMeasureInterval
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.LinkTimeout <= 0 {
		c.LinkTimeout = DefaultLinkTimeout
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = DefaultReconnectDelay
	}
	if c.RestartDelay <= 0 {
		c.RestartDelay = DefaultRestartDelay
	}
}

// CycleEventEmitter is called on cycle outcomes and phase transitions.
type CycleEventEmitter interface {
	OnCycle(result CycleResult)
	OnPhaseChange(previous, current Phase)
}

// Supervisor owns the main loop: startup ordering, work-signal polling, the
// retry/backoff policy, and the fatal-restart decision. All side-effecting
// work in the pipeline runs sequentially inside Run; no two blocking
// operations ever execute concurrently.
type Supervisor struct {
	config    SupervisorConfig
	link      ports.Link
	session   ports.Session
	publisher *Publisher
	scheduler *Scheduler
	signal    *WorkSignal
	restarter ports.Restarter
	logger    ports.Logger
	emitter   CycleEventEmitter

	mu    sync.RWMutex
	phase Phase
}

// NewSupervisor creates a supervisor with the given collaborators.
// The emitter may be nil.
func NewSupervisor(
	config SupervisorConfig,
	link ports.Link,
	session ports.Session,
	publisher *Publisher,
	scheduler *Scheduler,
	signal *WorkSignal,
	restarter ports.Restarter,
	logger ports.Logger,
	emitter CycleEventEmitter,
) *Supervisor {
	config.SetDefaults()
	return &Supervisor{
		config:    config,
		link:      link,
		session:   session,
		publisher: publisher,
		scheduler: scheduler,
		signal:    signal,
		restarter: restarter,
		logger:    logger,
		emitter:   emitter,
		phase:     PhaseBooting,
	}
}

// Phase returns the current pipeline phase. Safe for concurrent use.
func (s *Supervisor) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Supervisor) setPhase(p Phase) {
	s.mu.Lock()
	previous := s.phase
	s.phase = p
	s.mu.Unlock()

	if previous == p {
		return
	}
	s.logger.Debug("phase transition",
		ports.String("from", previous.String()),
		ports.String("to", p.String()),
	)
	if s.emitter != nil {
		s.emitter.OnPhaseChange(previous, p)
	}
}

// Run executes the pipeline until the context is canceled or the fatal
// link bring-up path is taken. On cancellation it stops the scheduler,
// disconnects the session, and returns the context error.
func (s *Supervisor) Run(ctx context.Context) error {
	s.setPhase(PhaseAwaitingLink)

	if err := s.link.Connect(s.config.LinkTimeout); err != nil {
		s.setPhase(PhaseFatalRestart)
		s.logger.Error("network bring-up failed, restarting device",
			ports.Err(err),
			ports.Duration("restart_delay", s.config.RestartDelay),
		)
		if !s.sleep(ctx, s.config.RestartDelay) {
			return s.shutdown(ctx.Err())
		}
		if rerr := s.restarter.Restart(); rerr != nil {
			s.logger.Error("device restart failed", ports.Err(rerr))
		}
		return err
	}

	if err := s.scheduler.Start(s.config.MeasureInterval); err != nil {
		return err
	}
	s.logger.Info("scheduler started", ports.Duration("period", s.config.MeasureInterval))

	// Best-effort initial connect. A failure here is discovered on the
	// first publish attempt and handled by the backoff path.
	if err := s.session.Connect(); err != nil {
		s.logger.Warn("initial session connect failed", ports.Err(err))
	}

	s.setPhase(PhaseRunning)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(ctx.Err())
		case <-time.After(s.config.PollInterval):
		}

		if !s.signal.Take() {
			continue
		}

		result := s.publisher.RunCycle()
		if s.emitter != nil {
			s.emitter.OnCycle(result)
		}

		switch result {
		case CyclePublished, CycleSensorReadFailed:
			// Stay in Running: a skipped reading is retried on the next
			// scheduled tick, never within the same cycle.
		case CycleNotConnected, CyclePublishFailed:
			s.setPhase(PhaseBackoff)
			s.logger.Info("entering backoff before reconnect",
				ports.Duration("delay", s.config.ReconnectDelay),
				ports.String("cause", result.String()),
			)
			if !s.sleep(ctx, s.config.ReconnectDelay) {
				return s.shutdown(ctx.Err())
			}
			if err := s.session.Connect(); err != nil {
				s.logger.Warn("reconnect failed, will retry after next failed publish", ports.Err(err))
			}
			s.setPhase(PhaseRunning)
		}
	}
}

// sleep waits for d or until the context is canceled. Returns false on
// cancellation.
func (s *Supervisor) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// shutdown performs the stop sequence: scheduler first so no new work is
// signaled, then the session teardown (idempotent, errors swallowed by
// contract).
func (s *Supervisor) shutdown(cause error) error {
	s.scheduler.Stop()
	s.session.Disconnect()
	s.logger.Info("supervisor stopped")
	return cause
}
