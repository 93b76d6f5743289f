package domain

// LinkState describes the device's network link. Owned by the network
// manager; transitions only on explicit connect calls or detected link loss.
type LinkState int

const (
	LinkDown LinkState = iota
	LinkConnecting
	LinkUp
	LinkFailed
)

// String returns a human-readable representation of the link state.
func (s LinkState) String() string {
	switch s {
	case LinkDown:
		return "Down"
	case LinkConnecting:
		return "Connecting"
	case LinkUp:
		return "Up"
	case LinkFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// SessionState describes the broker session. Owned by the session manager;
// at most one session may be Connected at a time.
type SessionState int

const (
	SessionDisconnected SessionState = iota
	SessionConnecting
	SessionConnected
)

// String returns a human-readable representation of the session state.
func (s SessionState) String() string {
	switch s {
	case SessionDisconnected:
		return "Disconnected"
	case SessionConnecting:
		return "Connecting"
	case SessionConnected:
		return "Connected"
	default:
		return "Unknown"
	}
}
