package cliconfig

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ThingName      string `toml:"thing_name"`
	BrokerEndpoint string `toml:"broker_endpoint"`
	BrokerPort     int    `toml:"broker_port"`
	KeepAlive      string `toml:"keepalive"`

	RootCAPath     string `toml:"root_ca"`
	ClientCertPath string `toml:"client_cert"`
	PrivateKeyPath string `toml:"private_key"`

	Interface    string `toml:"interface"`
	WifiSSID     string `toml:"wifi_ssid"`
	SensorDevice string `toml:"sensor_device"`

	MeasureInterval string `toml:"measure_interval"`
	PollInterval    string `toml:"poll_interval"`
	LinkTimeout     string `toml:"link_timeout"`
	ReconnectDelay  string `toml:"reconnect_delay"`
	RestartDelay    string `toml:"restart_delay"`

	WatchCredentials *bool `toml:"watch_credentials"`
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return "/etc/telemship/config.toml"
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("thing-name", fc.ThingName, &cfg.ThingName)
	s.setString("broker-endpoint", fc.BrokerEndpoint, &cfg.BrokerEndpoint)
	s.setInt("broker-port", fc.BrokerPort, &cfg.BrokerPort)

	s.setString("root-ca", fc.RootCAPath, &cfg.RootCAPath)
	s.setString("client-cert", fc.ClientCertPath, &cfg.ClientCertPath)
	s.setString("private-key", fc.PrivateKeyPath, &cfg.PrivateKeyPath)

	s.setString("interface", fc.Interface, &cfg.Interface)
	s.setString("wifi-ssid", fc.WifiSSID, &cfg.WifiSSID)
	s.setString("sensor-device", fc.SensorDevice, &cfg.SensorDevice)

	if err := s.setDuration("keepalive", fc.KeepAlive, &cfg.KeepAlive); err != nil {
		return err
	}
	if err := s.setDuration("measure-interval", fc.MeasureInterval, &cfg.MeasureInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll-interval", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("link-timeout", fc.LinkTimeout, &cfg.LinkTimeout); err != nil {
		return err
	}
	if err := s.setDuration("reconnect-delay", fc.ReconnectDelay, &cfg.ReconnectDelay); err != nil {
		return err
	}
	if err := s.setDuration("restart-delay", fc.RestartDelay, &cfg.RestartDelay); err != nil {
		return err
	}

	s.setBool("watch-credentials", fc.WatchCredentials, &cfg.WatchCredentials)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
