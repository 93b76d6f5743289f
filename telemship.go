package telemship

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/edge-labs/telemship/internal/adapters/fs"
	logAdapter "github.com/edge-labs/telemship/internal/adapters/log"
	"github.com/edge-labs/telemship/internal/adapters/mqtt"
	"github.com/edge-labs/telemship/internal/adapters/netlink"
	"github.com/edge-labs/telemship/internal/adapters/sensor"
	"github.com/edge-labs/telemship/internal/adapters/sysreboot"
	"github.com/edge-labs/telemship/internal/app"
	"github.com/edge-labs/telemship/internal/domain"
	"github.com/edge-labs/telemship/internal/ports"
)

// Re-exported sentinel errors for use with errors.Is.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrLinkTimeout     = domain.ErrLinkTimeout
)

// Config holds the configuration for the telemetry agent.
// At minimum, set ThingName, BrokerEndpoint, HardwareID, and the
// client certificate and key paths. All other fields have defaults
// set via SetDefaults.
type Config struct {
	// ThingName identifies the device in topics and payloads.
	ThingName string

	// BrokerEndpoint is the MQTT broker hostname.
	BrokerEndpoint string
	// BrokerPort is the broker TLS port. Default 8883.
	BrokerPort int
	// KeepAlive is the MQTT keepalive interval. Default 60s.
	KeepAlive time.Duration

	// RootCAPath is the CA bundle used to authenticate the broker.
	// Optional; the system pool is used when empty.
	RootCAPath string
	// ClientCertPath and PrivateKeyPath hold the device credential.
	ClientCertPath string
	PrivateKeyPath string

	// Interface is the network interface watched for link state.
	Interface string
	// SensorDevice names the IIO device exposing the sensor.
	SensorDevice string

	// HardwareID is the hardware-unique value the MQTT client
	// identifier is derived from.
	HardwareID []byte

	MeasureInterval time.Duration
	PollInterval    time.Duration
	LinkTimeout     time.Duration
	ReconnectDelay  time.Duration
	RestartDelay    time.Duration
}

// SetDefaults fills in zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.BrokerPort == 0 {
		c.BrokerPort = mqtt.DefaultPort
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = mqtt.DefaultKeepAlive
	}
	if c.MeasureInterval == 0 {
		c.MeasureInterval = app.DefaultMeasureInterval
	}
	if c.PollInterval == 0 {
		c.PollInterval = app.DefaultPollInterval
	}
	if c.LinkTimeout == 0 {
		c.LinkTimeout = app.DefaultLinkTimeout
	}
	if c.ReconnectDelay == 0 {
		c.ReconnectDelay = app.DefaultReconnectDelay
	}
	if c.RestartDelay == 0 {
		c.RestartDelay = app.DefaultRestartDelay
	}
	if c.Interface == "" {
		c.Interface = netlink.DefaultInterface
	}
	if c.SensorDevice == "" {
		c.SensorDevice = sensor.DefaultDevice
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.ThingName == "" {
		return fmt.Errorf("%w: thing name is required", domain.ErrInvalidConfig)
	}
	if c.BrokerEndpoint == "" {
		return fmt.Errorf("%w: broker endpoint is required", domain.ErrInvalidConfig)
	}
	if len(c.HardwareID) == 0 {
		return fmt.Errorf("%w: hardware id is required", domain.ErrInvalidConfig)
	}
	return nil
}

// Plugin extends a Telemship instance with auxiliary behavior.
// Plugins are initialized when the agent starts and shut down in
// reverse order when it stops.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string
	// Initialize starts the plugin. The context is canceled when the
	// agent stops.
	Initialize(ctx context.Context, cfg PluginConfig) error
	// Shutdown stops the plugin and releases its resources.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries agent configuration and hooks into plugins.
type PluginConfig struct {
	ThingName      string
	RootCAPath     string
	ClientCertPath string
	PrivateKeyPath string
	Logger         Logger

	// RequestStop asks the agent to shut down. Safe to call from any
	// goroutine, including plugin callbacks.
	RequestStop func(reason string)
}

// Telemship is a telemetry publishing agent that can be embedded in
// other applications. Use New to create an instance, then Start to
// begin publishing.
type Telemship struct {
	config     Config
	opts       options
	lifecycle  *app.Lifecycle
	supervisor *app.Supervisor
	logger     ports.Logger

	plugins []Plugin

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Telemship instance with the given configuration.
// The instance is created stopped; call Start to begin publishing.
// Returns an error if configuration is invalid or credentials cannot
// be loaded.
func New(cfg Config, opts ...Option) (*Telemship, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = logAdapter.NewNoopLogger()
	}

	identity, err := domain.NewIdentity(cfg.ThingName, cfg.HardwareID)
	if err != nil {
		return nil, err
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(logger, emitter)

	sensorReader := o.sensor
	if sensorReader == nil {
		sensorReader = sensor.New(cfg.SensorDevice)
	}

	link := o.link
	if link == nil {
		link = netlink.New(cfg.Interface, logger)
	}

	session := o.session
	if session == nil {
		creds, err := fs.LoadCredentials(cfg.RootCAPath, cfg.ClientCertPath, cfg.PrivateKeyPath)
		if err != nil {
			return nil, err
		}
		session, err = mqtt.New(identity, creds, mqtt.Config{
			Endpoint:  cfg.BrokerEndpoint,
			Port:      cfg.BrokerPort,
			KeepAlive: cfg.KeepAlive,
		}, logger)
		if err != nil {
			return nil, err
		}
	}

	restarter := o.restarter
	if restarter == nil {
		restarter = sysreboot.New(logger)
	}

	signal := app.NewWorkSignal()
	scheduler := app.NewScheduler(signal)
	publisher := app.NewPublisher(identity, sensorReader, session, logger)

	supervisor := app.NewSupervisor(app.SupervisorConfig{
		MeasureInterval: cfg.MeasureInterval,
		PollInterval:    cfg.PollInterval,
		LinkTimeout:     cfg.LinkTimeout,
		ReconnectDelay:  cfg.ReconnectDelay,
		RestartDelay:    cfg.RestartDelay,
	}, link, session, publisher, scheduler, signal, restarter, logger, emitter)

	return &Telemship{
		config:     cfg,
		opts:       o,
		lifecycle:  lifecycle,
		supervisor: supervisor,
		logger:     logger,
		plugins:    o.plugins,
	}, nil
}

// Start begins the telemetry pipeline in the background.
// Returns immediately after starting the pipeline goroutine.
// Returns an error if already running or if a plugin fails to
// initialize. The provided context bounds the lifetime of the
// pipeline.
func (t *Telemship) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := t.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.ctx = runCtx
	t.cancel = cancel
	t.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ThingName:      t.config.ThingName,
		RootCAPath:     t.config.RootCAPath,
		ClientCertPath: t.config.ClientCertPath,
		PrivateKeyPath: t.config.PrivateKeyPath,
		Logger:         t.logger,
		RequestStop:    t.requestStop,
	}
	for _, p := range t.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			t.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = t.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		t.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	t.lifecycle.AddWorker()
	go func() {
		defer t.lifecycle.WorkerDone()

		if err := t.lifecycle.TransitionTo(app.StateRunning, "pipeline starting"); err != nil {
			t.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := t.supervisor.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			t.logger.Error("pipeline error", ports.Err(err))
			_ = t.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the agent. It disconnects the broker
// session and waits up to ShutdownTimeout before forcing shutdown.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (t *Telemship) Stop() error {
	t.mu.Lock()

	if !t.lifecycle.CanStop() {
		t.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := t.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		t.mu.Unlock()
		return err
	}

	if t.cancel != nil {
		t.cancel()
	}

	t.mu.Unlock()

	err := t.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	shutdownCtx := context.Background()
	for i := len(t.plugins) - 1; i >= 0; i-- {
		p := t.plugins[i]
		if shutdownErr := p.Shutdown(shutdownCtx); shutdownErr != nil {
			t.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(shutdownErr))
		} else {
			t.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}

	if err != nil {
		_ = t.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = t.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (t *Telemship) Status() State {
	return convertState(t.lifecycle.State())
}

// PipelinePhase returns the current supervisor phase.
// Safe to call concurrently from any goroutine.
func (t *Telemship) PipelinePhase() Phase {
	return t.supervisor.Phase()
}

// requestStop is handed to plugins; it stops the agent without
// blocking the caller.
func (t *Telemship) requestStop(reason string) {
	t.logger.Info("stop requested", ports.String("reason", reason))
	go func() {
		if err := t.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
			t.logger.Error("requested stop failed", ports.Err(err))
		}
	}()
}
