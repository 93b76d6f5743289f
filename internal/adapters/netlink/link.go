// Package netlink implements ports.Link by watching a network interface's
// operational flags. Association itself (SSID, passphrase, DHCP) is the
// system supplicant's job; this adapter only waits for the link to come up
// and answers status queries.
package netlink

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/edge-labs/telemship/internal/domain"
	"github.com/edge-labs/telemship/internal/ports"
)

// DefaultInterface is the interface watched when none is configured.
const DefaultInterface = "wlan0"

// probeInterval is how often Connect re-checks the link while waiting.
const probeInterval = 500 * time.Millisecond

// Manager implements ports.Link for one named interface.
type Manager struct {
	iface  string
	probe  func() bool
	poll   time.Duration
	logger ports.Logger

	mu    sync.Mutex
	state domain.LinkState
}

// New creates a link manager for the named interface (e.g. "wlan0").
func New(iface string, logger ports.Logger) *Manager {
	m := &Manager{
		iface:  iface,
		poll:   probeInterval,
		logger: logger,
		state:  domain.LinkDown,
	}
	m.probe = m.interfaceUp
	return m
}

// newWithProbe is the test seam.
func newWithProbe(iface string, probe func() bool, logger ports.Logger) *Manager {
	return &Manager{
		iface:  iface,
		probe:  probe,
		poll:   probeInterval,
		logger: logger,
		state:  domain.LinkDown,
	}
}

// interfaceUp reports whether the interface exists and is up and running.
func (m *Manager) interfaceUp() bool {
	ifi, err := net.InterfaceByName(m.iface)
	if err != nil {
		return false
	}
	const want = net.FlagUp | net.FlagRunning
	return ifi.Flags&want == want
}

// Connect blocks polling link status until the link is up or the timeout
// elapses. One bring-up attempt per call; main-loop context only.
func (m *Manager) Connect(timeout time.Duration) error {
	m.setState(domain.LinkConnecting)
	m.logger.Info("waiting for network link",
		ports.String("interface", m.iface),
		ports.Duration("timeout", timeout),
	)

	deadline := time.Now().Add(timeout)
	for {
		if m.probe() {
			m.setState(domain.LinkUp)
			m.logger.Info("network link up", ports.String("interface", m.iface))
			return nil
		}
		if time.Now().After(deadline) {
			m.setState(domain.LinkFailed)
			return fmt.Errorf("%w: interface %s not up after %v", domain.ErrLinkTimeout, m.iface, timeout)
		}
		time.Sleep(m.poll)
	}
}

// IsUp is a non-blocking status query. It re-probes the interface so a link
// drop after a successful Connect is observed.
func (m *Manager) IsUp() bool {
	up := m.probe()
	if !up {
		m.mu.Lock()
		if m.state == domain.LinkUp {
			m.state = domain.LinkDown
		}
		m.mu.Unlock()
	}
	return up
}

// State returns the last observed link state.
func (m *Manager) State() domain.LinkState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(s domain.LinkState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
