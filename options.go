package telemship

import (
	"github.com/edge-labs/telemship/internal/ports"
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// SensorReader reads a single measurement from the sensor hardware.
type SensorReader = ports.SensorReader

// Link manages the network link used to reach the broker.
type Link = ports.Link

// Session manages the broker session used to publish telemetry.
type Session = ports.Session

// Restarter performs the fatal-restart action.
type Restarter = ports.Restarter

// Option configures optional behavior of Telemship.
type Option func(*options)

// options holds the optional configuration for a Telemship instance.
type options struct {
	logger       ports.Logger
	sensor       ports.SensorReader
	link         ports.Link
	session      ports.Session
	restarter    ports.Restarter
	eventHandler EventHandler
	plugins      []Plugin
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSensor replaces the default IIO sysfs sensor reader.
func WithSensor(sensor SensorReader) Option {
	return func(o *options) {
		o.sensor = sensor
	}
}

// WithLink replaces the default network interface watcher.
func WithLink(link Link) Option {
	return func(o *options) {
		o.link = link
	}
}

// WithSession replaces the default MQTT session manager.
// When a session is injected, credential files are not loaded.
func WithSession(session Session) Option {
	return func(o *options) {
		o.session = session
	}
}

// WithRestarter replaces the default system reboot restarter.
func WithRestarter(restarter Restarter) Option {
	return func(o *options) {
		o.restarter = restarter
	}
}

// WithEventHandler sets a handler for telemship events.
// Events are called synchronously from the pipeline goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Telemship starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
