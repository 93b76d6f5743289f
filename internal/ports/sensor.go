package ports

import "github.com/edge-labs/telemship/internal/domain"

// SensorReader performs one ambient temperature/humidity measurement.
// Implementations handle the sensor protocol; callers only see a reading or
// a failure.
type SensorReader interface {
	// Read performs one measurement. It blocks for the duration of the
	// sensor transaction and must only be called from the main loop.
	// Returns an error wrapping domain.ErrSensorRead on a read or checksum
	// failure; such failures are transient and the cycle is simply skipped.
	Read() (domain.Reading, error)
}
