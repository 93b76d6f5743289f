package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TELEMSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("thing-name", os.Getenv("TELEMSHIP_THING_NAME"), &cfg.ThingName)
	s.setString("broker-endpoint", os.Getenv("TELEMSHIP_BROKER_ENDPOINT"), &cfg.BrokerEndpoint)

	s.setString("root-ca", os.Getenv("TELEMSHIP_ROOT_CA"), &cfg.RootCAPath)
	s.setString("client-cert", os.Getenv("TELEMSHIP_CLIENT_CERT"), &cfg.ClientCertPath)
	s.setString("private-key", os.Getenv("TELEMSHIP_PRIVATE_KEY"), &cfg.PrivateKeyPath)

	s.setString("interface", os.Getenv("TELEMSHIP_INTERFACE"), &cfg.Interface)
	s.setString("wifi-ssid", os.Getenv("TELEMSHIP_WIFI_SSID"), &cfg.WifiSSID)
	s.setString("sensor-device", os.Getenv("TELEMSHIP_SENSOR_DEVICE"), &cfg.SensorDevice)

	if err := s.setIntFromString("broker-port", os.Getenv("TELEMSHIP_BROKER_PORT"), &cfg.BrokerPort); err != nil {
		return err
	}

	if err := s.setDuration("keepalive", os.Getenv("TELEMSHIP_KEEPALIVE"), &cfg.KeepAlive); err != nil {
		return err
	}
	if err := s.setDuration("measure-interval", os.Getenv("TELEMSHIP_MEASURE_INTERVAL"), &cfg.MeasureInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll-interval", os.Getenv("TELEMSHIP_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("link-timeout", os.Getenv("TELEMSHIP_LINK_TIMEOUT"), &cfg.LinkTimeout); err != nil {
		return err
	}
	if err := s.setDuration("reconnect-delay", os.Getenv("TELEMSHIP_RECONNECT_DELAY"), &cfg.ReconnectDelay); err != nil {
		return err
	}
	if err := s.setDuration("restart-delay", os.Getenv("TELEMSHIP_RESTART_DELAY"), &cfg.RestartDelay); err != nil {
		return err
	}

	s.setBoolFromString("watch-credentials", os.Getenv("TELEMSHIP_WATCH_CREDENTIALS"), &cfg.WatchCredentials)

	return nil
}
