package ports

import (
	"time"

	"github.com/edge-labs/telemship/internal/domain"
)

// Link brings the device's network link up and reports link state.
// One Connect call performs one bring-up attempt; reconnection after a
// detected drop is the caller's responsibility.
type Link interface {
	// Connect blocks the caller polling link status at short intervals
	// until the link is up or the timeout elapses. Returns an error
	// wrapping domain.ErrLinkTimeout on deadline expiry.
	// Main-loop context only.
	Connect(timeout time.Duration) error

	// IsUp is a non-blocking status query.
	IsUp() bool

	// State returns the last observed link state.
	State() domain.LinkState
}
