package ports

import "github.com/edge-labs/telemship/internal/domain"

// Session owns the mutually-authenticated connection to the broker.
// All methods are idempotent with respect to repeated calls in a bad state,
// and are only called from the main loop.
type Session interface {
	// Connect opens the broker session. Calling Connect while already
	// connected is a no-op that returns nil without re-negotiating.
	// On failure the session is left disconnected (no half-open state)
	// and the error wraps domain.ErrSessionConnect.
	Connect() error

	// Publish sends one message. It requires a connected session, else it
	// fails with domain.ErrNotConnected without attempting I/O. On a
	// transport-level failure it returns an error wrapping
	// domain.ErrPublish and forces the session to disconnected, so the
	// caller must reconnect before retrying.
	Publish(topic string, payload []byte) error

	// Disconnect tears the session down. Idempotent: calling it while
	// already disconnected has no effect and never fails.
	Disconnect()

	// State returns the current session state.
	State() domain.SessionState
}
