package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/edge-labs/telemship/internal/domain"
)

// fakeLink implements ports.Link for testing.
type fakeLink struct {
	mu         sync.Mutex
	connectErr error
	state      domain.LinkState
	connects   int
}

func (f *fakeLink) Connect(timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr != nil {
		f.state = domain.LinkFailed
		return f.connectErr
	}
	f.state = domain.LinkUp
	return nil
}

func (f *fakeLink) IsUp() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == domain.LinkUp
}

func (f *fakeLink) State() domain.LinkState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// fakeRestarter implements ports.Restarter for testing.
type fakeRestarter struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRestarter) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func (f *fakeRestarter) restartCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func fastConfig() SupervisorConfig {
	return SupervisorConfig{
		MeasureInterval: 2 * time.Millisecond,
		PollInterval:    time.Millisecond,
		LinkTimeout:     20 * time.Millisecond,
		ReconnectDelay:  time.Millisecond,
		RestartDelay:    time.Millisecond,
	}
}

type supFixture struct {
	sup       *Supervisor
	link      *fakeLink
	session   *fakeSession
	sensor    *fakeSensor
	restarter *fakeRestarter
	signal    *WorkSignal
}

func newSupFixture(t *testing.T, cfg SupervisorConfig) *supFixture {
	t.Helper()
	f := &supFixture{
		link:      &fakeLink{},
		session:   &fakeSession{},
		sensor:    &fakeSensor{reading: domain.Reading{TemperatureC: 22, HumidityPct: 48}},
		restarter: &fakeRestarter{},
		signal:    NewWorkSignal(),
	}
	publisher := NewPublisher(testIdentity(t), f.sensor, f.session, mockLogger{})
	scheduler := NewScheduler(f.signal)
	f.sup = NewSupervisor(cfg, f.link, f.session, publisher, scheduler, f.signal, f.restarter, mockLogger{}, nil)
	return f
}

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSupervisor_LinkUpEntersRunning(t *testing.T) {
	f := newSupFixture(t, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.sup.Run(ctx) }()

	waitFor(t, "running phase", func() bool { return f.sup.Phase() == PhaseRunning })
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if f.session.disconnects == 0 {
		t.Error("session not disconnected on shutdown")
	}
}

func TestSupervisor_LinkTimeoutIsFatal(t *testing.T) {
	f := newSupFixture(t, fastConfig())
	f.link.connectErr = fmt.Errorf("%w after 15s", domain.ErrLinkTimeout)

	err := f.sup.Run(context.Background())
	if !errors.Is(err, domain.ErrLinkTimeout) {
		t.Fatalf("Run() = %v, want ErrLinkTimeout", err)
	}
	if f.restarter.restartCount() != 1 {
		t.Errorf("restart calls = %d, want 1", f.restarter.restartCount())
	}
	if f.sup.Phase() != PhaseFatalRestart {
		t.Errorf("phase = %v, want FatalRestart", f.sup.Phase())
	}
	if f.session.publishCount() != 0 {
		t.Error("publish attempted without a link")
	}
}

func TestSupervisor_NotConnectedTriggersBackoffThenRecovers(t *testing.T) {
	f := newSupFixture(t, fastConfig())
	// The initial best-effort connect fails once; the backoff reconnect
	// succeeds and the following cycle publishes.
	f.session.connectErr = fmt.Errorf("%w: handshake refused", domain.ErrSessionConnect)
	f.session.oneShot = true

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.sup.Run(ctx) }()

	waitFor(t, "a delivered sample after reconnect", func() bool { return f.session.delivered() >= 1 })
	cancel()
	<-errCh

	f.session.mu.Lock()
	connects := f.session.connects
	f.session.mu.Unlock()
	if connects < 2 {
		t.Errorf("connect attempts = %d, want at least 2 (initial + backoff reconnect)", connects)
	}
}

func TestSupervisor_SensorFailureSkipsCycleAndStaysRunning(t *testing.T) {
	f := newSupFixture(t, fastConfig())
	f.sensor.err = fmt.Errorf("%w: checksum mismatch", domain.ErrSensorRead)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.sup.Run(ctx) }()

	waitFor(t, "several skipped cycles", func() bool { return f.sensor.readCount() >= 3 })

	if f.sup.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want Running after sensor failures", f.sup.Phase())
	}
	if f.session.publishCount() != 0 {
		t.Error("publish attempted despite sensor failure")
	}

	// Sensor recovers: the next scheduled tick publishes.
	f.sensor.mu.Lock()
	f.sensor.err = nil
	f.sensor.mu.Unlock()
	waitFor(t, "a delivered sample after sensor recovery", func() bool { return f.session.delivered() >= 1 })

	cancel()
	<-errCh
}

func TestSupervisor_ReconnectFailureReturnsToRunning(t *testing.T) {
	cfg := fastConfig()
	f := newSupFixture(t, cfg)
	// Every connect fails: the supervisor must bound each failure to one
	// backoff delay and keep cycling rather than looping in reconnect.
	f.session.connectErr = fmt.Errorf("%w: auth rejected", domain.ErrSessionConnect)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.sup.Run(ctx) }()

	waitFor(t, "repeated backoff rounds", func() bool {
		f.session.mu.Lock()
		defer f.session.mu.Unlock()
		return f.session.connects >= 3
	})
	cancel()
	<-errCh
}

func TestSupervisorConfig_SetDefaults(t *testing.T) {
	var cfg SupervisorConfig
	cfg.SetDefaults()

	if cfg.MeasureInterval != DefaultMeasureInterval {
		t.Errorf("MeasureInterval = %v, want %v", cfg.MeasureInterval, DefaultMeasureInterval)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.LinkTimeout != DefaultLinkTimeout {
		t.Errorf("LinkTimeout = %v, want %v", cfg.LinkTimeout, DefaultLinkTimeout)
	}
	if cfg.ReconnectDelay != DefaultReconnectDelay {
		t.Errorf("ReconnectDelay = %v, want %v", cfg.ReconnectDelay, DefaultReconnectDelay)
	}
	if cfg.RestartDelay != DefaultRestartDelay {
		t.Errorf("RestartDelay = %v, want %v", cfg.RestartDelay, DefaultRestartDelay)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseBooting, "Booting"},
		{PhaseAwaitingLink, "AwaitingLink"},
		{PhaseRunning, "Running"},
		{PhaseBackoff, "Backoff"},
		{PhaseFatalRestart, "FatalRestart"},
		{Phase(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %s, want %s", tt.phase, got, tt.want)
		}
	}
}
