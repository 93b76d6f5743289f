package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BrokerPort != 8883 {
		t.Errorf("BrokerPort = %v, want 8883", cfg.BrokerPort)
	}
	if cfg.KeepAlive != 60*time.Second {
		t.Errorf("KeepAlive = %v, want 60s", cfg.KeepAlive)
	}
	if cfg.Interface != DefaultInterface {
		t.Errorf("Interface = %v, want %v", cfg.Interface, DefaultInterface)
	}
	if cfg.SensorDevice != DefaultSensorDevice {
		t.Errorf("SensorDevice = %v, want %v", cfg.SensorDevice, DefaultSensorDevice)
	}
	if cfg.MeasureInterval != 5*time.Second {
		t.Errorf("MeasureInterval = %v, want 5s", cfg.MeasureInterval)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want 100ms", cfg.PollInterval)
	}
	if cfg.LinkTimeout != 15*time.Second {
		t.Errorf("LinkTimeout = %v, want 15s", cfg.LinkTimeout)
	}
	if cfg.ReconnectDelay != 5*time.Second {
		t.Errorf("ReconnectDelay = %v, want 5s", cfg.ReconnectDelay)
	}
	if cfg.RestartDelay != 10*time.Second {
		t.Errorf("RestartDelay = %v, want 10s", cfg.RestartDelay)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.ThingName = "dev-01"
		cfg.BrokerEndpoint = "broker.example.com"
		cfg.ClientCertPath = "/etc/telemship/cert.pem"
		cfg.PrivateKeyPath = "/etc/telemship/key.pem"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing thing name",
			mutate:  func(c *Config) { c.ThingName = "" },
			wantErr: true,
		},
		{
			name:    "missing broker endpoint",
			mutate:  func(c *Config) { c.BrokerEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "missing client cert",
			mutate:  func(c *Config) { c.ClientCertPath = "" },
			wantErr: true,
		},
		{
			name:    "missing private key",
			mutate:  func(c *Config) { c.PrivateKeyPath = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.BrokerPort = 70000 },
			wantErr: true,
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.BrokerPort = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive measure interval",
			mutate:  func(c *Config) { c.MeasureInterval = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive poll interval",
			mutate:  func(c *Config) { c.PollInterval = -time.Second },
			wantErr: true,
		},
		{
			name:    "non-positive link timeout",
			mutate:  func(c *Config) { c.LinkTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_FillsDerivedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThingName = "dev-01"
	cfg.BrokerEndpoint = "broker.example.com"
	cfg.ClientCertPath = "/etc/telemship/cert.pem"
	cfg.PrivateKeyPath = "/etc/telemship/key.pem"
	cfg.Interface = ""
	cfg.SensorDevice = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Interface != DefaultInterface {
		t.Errorf("Interface = %v, want %v", cfg.Interface, DefaultInterface)
	}
	if cfg.SensorDevice != DefaultSensorDevice {
		t.Errorf("SensorDevice = %v, want %v", cfg.SensorDevice, DefaultSensorDevice)
	}
}
