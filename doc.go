// Package telemship provides an embeddable telemetry publishing agent
// for Linux edge devices.
//
// Telemship reads temperature and humidity from an industrial I/O (IIO)
// sensor on a fixed schedule and publishes each sample over a mutually
// authenticated MQTT/TLS session. It can be used as a standalone CLI
// application or embedded as a library in other Go programs.
//
// # Basic Usage
//
// To embed telemship in your application:
//
//	cfg := telemship.Config{
//	    ThingName:      "greenhouse-7",
//	    BrokerEndpoint: "broker.example.com",
//	    ClientCertPath: "/etc/telemship/cert.pem",
//	    PrivateKeyPath: "/etc/telemship/key.pem",
//	    HardwareID:     hardwareID,
//	}
//
//	agent, err := telemship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := agent.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := agent.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// Create a [Config] with at minimum ThingName, BrokerEndpoint,
// HardwareID, and the client certificate and key paths. All other
// fields have sensible defaults set via [Config.SetDefaults].
//
// # Event Handling
//
// To receive notifications about agent operations, implement
// [EventHandler] and pass it via [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	agent, err := telemship.New(cfg, telemship.WithEventHandler(handler))
//
// # Plugins
//
// Auxiliary behavior can be attached via [WithPlugin]. The bundled
// credwatcher plugin restarts the agent when credential files rotate
// on disk:
//
//	agent, err := telemship.New(cfg,
//	    credwatcher.WithCredentialWatcher(credwatcher.DefaultConfig()),
//	)
//
// # Restart Semantics
//
// When the network link cannot be brought up within the configured
// timeout, the agent invokes its [Restarter] and reports StateCrashed.
// The default restarter reboots the machine; inject a custom one via
// [WithRestarter] to change that policy.
package telemship
