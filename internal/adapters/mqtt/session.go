// Package mqtt implements ports.Session on the paho MQTT client over
// mutually-authenticated TLS.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/edge-labs/telemship/internal/domain"
	"github.com/edge-labs/telemship/internal/ports"
)

// Broker session constants. Fixed for the AWS IoT style deployment this
// device targets.
const (
	DefaultPort       = 8883
	DefaultKeepAlive  = 60 * time.Second
	connectTimeout    = 30 * time.Second
	disconnectQuiesce = 250 // milliseconds granted to in-flight work on teardown
)

// Config holds session configuration.
type Config struct {
	// Endpoint is the broker hostname.
	Endpoint string

	// Port is the broker TLS port. Zero means DefaultPort.
	Port int

	// KeepAlive is the protocol keepalive interval. Zero means DefaultKeepAlive.
	KeepAlive time.Duration
}

// client is the subset of paho.Client the session manager uses. Extracted so
// tests can substitute a fake transport.
type client interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// SessionManager implements ports.Session. It owns the one outbound broker
// connection; connect, publish, and disconnect are idempotent with respect
// to repeated calls in a bad state. All calls come from the main loop; the
// mutex only guards the state against concurrent State queries.
type SessionManager struct {
	mu     sync.Mutex
	client client
	state  domain.SessionState
	logger ports.Logger
}

// New creates a session manager for the given identity and credentials.
// Credentials are consumed here, once, to build the TLS configuration.
func New(identity domain.Identity, creds domain.Credentials, cfg Config, logger ports.Logger) (*SessionManager, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: broker endpoint is required", domain.ErrInvalidConfig)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = DefaultKeepAlive
	}

	tlsCfg, err := creds.TLSConfig()
	if err != nil {
		return nil, fmt.Errorf("build tls config: %w", err)
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tls://%s:%d", cfg.Endpoint, cfg.Port))
	opts.SetClientID(identity.ClientID)
	opts.SetTLSConfig(tlsCfg)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetCleanSession(true)
	// Reconnect policy belongs to the supervisor, not the transport.
	opts.SetAutoReconnect(false)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("broker connection lost", ports.Err(err))
	})

	return &SessionManager{
		client: paho.NewClient(opts),
		logger: logger,
	}, nil
}

// newWithClient is the test seam.
func newWithClient(c client, logger ports.Logger) *SessionManager {
	return &SessionManager{client: c, logger: logger}
}

// Connect opens the broker session. A no-op returning nil when already
// connected. On failure the session is left disconnected.
func (s *SessionManager) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.SessionConnected {
		return nil
	}

	s.state = domain.SessionConnecting
	token := s.client.Connect()
	if token.Wait() && token.Error() != nil {
		s.state = domain.SessionDisconnected
		return fmt.Errorf("%w: %v", domain.ErrSessionConnect, token.Error())
	}

	s.state = domain.SessionConnected
	s.logger.Info("broker session established")
	return nil
}

// Publish sends one message at QoS 0. It requires a connected session; on a
// transport failure the session is torn down so the caller reconnects before
// the next attempt.
func (s *SessionManager) Publish(topic string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionConnected {
		return domain.ErrNotConnected
	}

	token := s.client.Publish(topic, 0, false, payload)
	if token.Wait() && token.Error() != nil {
		// Do not reuse a half-broken transport.
		s.client.Disconnect(disconnectQuiesce)
		s.state = domain.SessionDisconnected
		return fmt.Errorf("%w: %v", domain.ErrPublish, token.Error())
	}

	return nil
}

// Disconnect tears the session down. Idempotent and never fails.
func (s *SessionManager) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.SessionDisconnected {
		return
	}

	s.client.Disconnect(disconnectQuiesce)
	s.state = domain.SessionDisconnected
	s.logger.Info("broker session closed")
}

// State returns the current session state.
func (s *SessionManager) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
