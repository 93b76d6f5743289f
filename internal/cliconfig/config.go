package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/edge-labs/telemship/internal/adapters/mqtt"
	"github.com/edge-labs/telemship/internal/adapters/netlink"
	"github.com/edge-labs/telemship/internal/adapters/sensor"
	"github.com/edge-labs/telemship/internal/app"
)

// DefaultInterface is the network interface watched for link state.
const DefaultInterface = netlink.DefaultInterface

// DefaultSensorDevice is the IIO device exposing the DHT sensor.
const DefaultSensorDevice = sensor.DefaultDevice

// Config holds CLI configuration for telemship.
type Config struct {
	ThingName string

	BrokerEndpoint string
	BrokerPort     int
	KeepAlive      time.Duration

	RootCAPath     string
	ClientCertPath string
	PrivateKeyPath string

	Interface    string
	WifiSSID     string
	SensorDevice string

	// HardwareID is the hardware-unique value the client identifier is
	// derived from. Populated by LoadHardwareID when left empty.
	HardwareID []byte

	MeasureInterval time.Duration
	PollInterval    time.Duration
	LinkTimeout     time.Duration
	ReconnectDelay  time.Duration
	RestartDelay    time.Duration

	WatchCredentials bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BrokerPort:      mqtt.DefaultPort,
		KeepAlive:       mqtt.DefaultKeepAlive,
		Interface:       DefaultInterface,
		SensorDevice:    DefaultSensorDevice,
		MeasureInterval: app.DefaultMeasureInterval,
		PollInterval:    app.DefaultPollInterval,
		LinkTimeout:     app.DefaultLinkTimeout,
		ReconnectDelay:  app.DefaultReconnectDelay,
		RestartDelay:    app.DefaultRestartDelay,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ThingName == "" {
		return fmt.Errorf("thing-name is required")
	}
	if c.BrokerEndpoint == "" {
		return fmt.Errorf("broker-endpoint is required")
	}
	if c.ClientCertPath == "" {
		return fmt.Errorf("client-cert is required")
	}
	if c.PrivateKeyPath == "" {
		return fmt.Errorf("private-key is required")
	}

	if c.BrokerPort <= 0 || c.BrokerPort > 65535 {
		return fmt.Errorf("invalid broker port %d", c.BrokerPort)
	}
	if c.Interface == "" {
		c.Interface = DefaultInterface
	}
	if c.SensorDevice == "" {
		c.SensorDevice = DefaultSensorDevice
	}

	if c.MeasureInterval <= 0 {
		return fmt.Errorf("measure interval must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.LinkTimeout <= 0 {
		return fmt.Errorf("link timeout must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
