// Package domain contains the core domain entities and value objects for
// telemship.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (MQTT, file system, logging) and
// contains only domain types and rules.
//
// # Entities
//
//   - [Sample]: A single telemetry measurement with its wire payload format
//   - [Identity]: The device's thing name and derived MQTT client identifier
//   - [Credentials]: TLS material for the mutually-authenticated session
//   - [LinkState], [SessionState]: Connectivity state enums
//
// The wire payload format and the topic scheme are part of the device's
// external contract and must not change without coordinating with the
// ingestion side.
package domain
