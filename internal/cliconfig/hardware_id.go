package cliconfig

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	sysNetDir     = "/sys/class/net"
	machineIDPath = "/etc/machine-id"
)

// LoadHardwareID fills cfg.HardwareID from the machine if it is not already
// set. It prefers the MAC address of the configured network interface and
// falls back to the machine-id. The bytes feed the MQTT client identity.
func LoadHardwareID(cfg *Config) error {
	if len(cfg.HardwareID) > 0 {
		return nil
	}

	if cfg.Interface != "" {
		b, err := os.ReadFile(filepath.Join(sysNetDir, cfg.Interface, "address"))
		if err == nil {
			if id, perr := parseMAC(string(b)); perr == nil {
				cfg.HardwareID = id
				return nil
			}
		}
	}

	b, err := os.ReadFile(machineIDPath)
	if err != nil {
		return fmt.Errorf("load hardware id: %w", err)
	}
	id, err := parseHexID(string(b))
	if err != nil {
		return fmt.Errorf("load hardware id: %w", err)
	}
	cfg.HardwareID = id
	return nil
}

// parseMAC decodes a colon-separated MAC address into raw bytes.
func parseMAC(s string) ([]byte, error) {
	return parseHexID(strings.ReplaceAll(s, ":", ""))
}

// parseHexID decodes a hex identifier, rejecting empty input.
func parseHexID(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	id, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hardware id %q: %w", s, err)
	}
	if len(id) == 0 {
		return nil, fmt.Errorf("empty hardware id")
	}
	return id, nil
}
