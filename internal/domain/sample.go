package domain

import (
	"encoding/json"
	"fmt"
)

// Reading is the raw output of one sensor measurement.
type Reading struct {
	// TemperatureC is the ambient temperature in whole degrees Celsius.
	TemperatureC int

	// HumidityPct is the relative humidity in whole percent.
	HumidityPct uint
}

// Sample is a single telemetry measurement, created fresh each scheduling
// cycle and discarded once its publish attempt resolves. It is immutable
// after construction.
type Sample struct {
	ThingName    string
	TemperatureC int
	HumidityPct  uint
	Timestamp    int64
}

// NewSample builds a sample from a sensor reading taken at the given unix time.
func NewSample(thing string, r Reading, unixTime int64) Sample {
	return Sample{
		ThingName:    thing,
		TemperatureC: r.TemperatureC,
		HumidityPct:  r.HumidityPct,
		Timestamp:    unixTime,
	}
}

// payload is the wire format of a sample. Field names are part of the
// external contract with the ingestion side.
type payload struct {
	Thing        string `json:"thing"`
	Timestamp    int64  `json:"timestamp"`
	TemperatureC int    `json:"temperature_C"`
	HumidityPct  uint   `json:"humidity_pct"`
}

// Payload serializes the sample to its wire payload.
func (s Sample) Payload() ([]byte, error) {
	b, err := json.Marshal(payload{
		Thing:        s.ThingName,
		Timestamp:    s.Timestamp,
		TemperatureC: s.TemperatureC,
		HumidityPct:  s.HumidityPct,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sample: %w", err)
	}
	return b, nil
}

// ParsePayload decodes a wire payload back into a sample.
func ParsePayload(b []byte) (Sample, error) {
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Sample{}, fmt.Errorf("parse sample payload: %w", err)
	}
	return Sample{
		ThingName:    p.Thing,
		TemperatureC: p.TemperatureC,
		HumidityPct:  p.HumidityPct,
		Timestamp:    p.Timestamp,
	}, nil
}

// TelemetryTopic returns the destination topic for a device's telemetry.
func TelemetryTopic(thingName string) string {
	return "devices/" + thingName + "/telemetry"
}
