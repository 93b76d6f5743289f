package domain

import "errors"

// Domain errors represent the failure kinds of the telemetry pipeline.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrLinkTimeout is returned when network bring-up exceeds its deadline.
	// This is the only fatal error: the supervisor restarts the device.
	ErrLinkTimeout = errors.New("telemship: link bring-up timed out")

	// ErrSessionConnect is returned on a handshake, authentication, or
	// transport failure while opening the broker session. The session is
	// left disconnected.
	ErrSessionConnect = errors.New("telemship: session connect failed")

	// ErrNotConnected is returned when a publish is attempted without a
	// connected session. No I/O is performed.
	ErrNotConnected = errors.New("telemship: session not connected")

	// ErrPublish is returned on a transport-level send failure. The session
	// is forced to disconnected so the caller reconnects before retrying.
	ErrPublish = errors.New("telemship: publish failed")

	// ErrSensorRead is returned on a transient sensor read or checksum
	// failure. The cycle is skipped; no publish is attempted.
	ErrSensorRead = errors.New("telemship: sensor read failed")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("telemship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("telemship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("telemship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("telemship: invalid configuration")
)
