// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the pipeline core and the outside world.
// They define what the application needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [SensorReader]: Performs one ambient measurement
//   - [Link]: Brings the device's network link up and reports its state
//   - [Session]: Owns the mutually-authenticated broker connection
//   - [Restarter]: Performs a full device restart on a fatal condition
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (IIO sysfs, interface flags, paho MQTT, reboot(2), zerolog).
//
// This separation enables testing the pipeline with mock implementations and
// swapping infrastructure without touching the supervisor logic.
package ports
