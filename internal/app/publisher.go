package app

import (
	"errors"
	"time"

	"github.com/edge-labs/telemship/internal/domain"
	"github.com/edge-labs/telemship/internal/ports"
)

// CycleResult is the outcome of one measure-and-publish cycle.
type CycleResult int

const (
	// CyclePublished: the sample was read, serialized, and delivered.
	CyclePublished CycleResult = iota

	// CycleSensorReadFailed: the sensor read failed; the cycle ended with
	// no publish attempt and no session state change.
	CycleSensorReadFailed

	// CycleNotConnected: the session was down before any I/O; the caller
	// must reconnect before the next attempt.
	CycleNotConnected

	// CyclePublishFailed: the send failed at the transport level; the
	// session has been forced down.
	CyclePublishFailed
)

// String returns a human-readable representation of the cycle result.
func (r CycleResult) String() string {
	switch r {
	case CyclePublished:
		return "Published"
	case CycleSensorReadFailed:
		return "SensorReadFailed"
	case CycleNotConnected:
		return "NotConnected"
	case CyclePublishFailed:
		return "PublishFailed"
	default:
		return "Unknown"
	}
}

// Publisher reads one sample, serializes it, and drives a publish attempt
// through the session. It holds no mutable state of its own; each cycle
// builds a fresh sample and discards it once the attempt resolves.
type Publisher struct {
	identity domain.Identity
	sensor   ports.SensorReader
	session  ports.Session
	logger   ports.Logger
	now      func() time.Time
}

// NewPublisher creates a publisher for the given device identity.
func NewPublisher(identity domain.Identity, sensor ports.SensorReader, session ports.Session, logger ports.Logger) *Publisher {
	return &Publisher{
		identity: identity,
		sensor:   sensor,
		session:  session,
		logger:   logger,
		now:      time.Now,
	}
}

// RunCycle performs one measure-and-publish cycle. Main-loop context only.
func (p *Publisher) RunCycle() CycleResult {
	reading, err := p.sensor.Read()
	if err != nil {
		p.logger.Warn("sensor read failed, skipping cycle", ports.Err(err))
		return CycleSensorReadFailed
	}

	sample := domain.NewSample(p.identity.ThingName, reading, p.now().Unix())
	payload, err := sample.Payload()
	if err != nil {
		p.logger.Error("sample serialization failed", ports.Err(err))
		return CyclePublishFailed
	}

	topic := domain.TelemetryTopic(p.identity.ThingName)
	if err := p.session.Publish(topic, payload); err != nil {
		if errors.Is(err, domain.ErrNotConnected) {
			p.logger.Warn("publish skipped, session not connected", ports.String("topic", topic))
			return CycleNotConnected
		}
		p.logger.Error("publish failed", ports.String("topic", topic), ports.Err(err))
		return CyclePublishFailed
	}

	p.logger.Info("published sample",
		ports.String("topic", topic),
		ports.Int("temperature_C", sample.TemperatureC),
		ports.Uint("humidity_pct", sample.HumidityPct),
		ports.Int64("timestamp", sample.Timestamp),
	)
	return CyclePublished
}
