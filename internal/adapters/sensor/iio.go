// Package sensor implements ports.SensorReader on the Linux industrial I/O
// (IIO) subsystem. DHT-class drivers expose one-shot temperature and
// relative-humidity attributes under /sys/bus/iio/devices; a failed sensor
// transaction (bad checksum, no response) surfaces as a read error on the
// attribute file.
package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edge-labs/telemship/internal/domain"
)

// DefaultDevice is the IIO device read when none is configured.
const DefaultDevice = "iio:device0"

const (
	iioRoot = "/sys/bus/iio/devices"

	// Attribute names per the IIO ABI. Values are in milli-units.
	tempAttr     = "in_temp_input"
	humidityAttr = "in_humidityrelative_input"
)

// IIOReader reads one measurement per call from an IIO device directory.
type IIOReader struct {
	dir string
}

// New creates a reader for the named IIO device (e.g. "iio:device0").
func New(device string) *IIOReader {
	return &IIOReader{dir: filepath.Join(iioRoot, device)}
}

// newWithDir is the test seam.
func newWithDir(dir string) *IIOReader {
	return &IIOReader{dir: dir}
}

// Read performs one measurement. Both attributes are read in a single call
// so the reading is coherent; any failure maps to domain.ErrSensorRead.
func (r *IIOReader) Read() (domain.Reading, error) {
	milliTemp, err := r.readAttr(tempAttr)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("%w: %v", domain.ErrSensorRead, err)
	}

	milliHum, err := r.readAttr(humidityAttr)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("%w: %v", domain.ErrSensorRead, err)
	}
	if milliHum < 0 {
		return domain.Reading{}, fmt.Errorf("%w: negative humidity %d", domain.ErrSensorRead, milliHum)
	}

	return domain.Reading{
		TemperatureC: int(milliTemp / 1000),
		HumidityPct:  uint(milliHum / 1000),
	}, nil
}

// readAttr reads and parses one milli-unit attribute file.
func (r *IIOReader) readAttr(name string) (int64, error) {
	path := filepath.Join(r.dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %v", name, err)
	}
	return v, nil
}
