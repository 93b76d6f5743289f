package sensor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/edge-labs/telemship/internal/domain"
)

func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestIIOReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, tempAttr, "24000\n")
	writeAttr(t, dir, humidityAttr, "55000\n")

	r := newWithDir(dir)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := domain.Reading{TemperatureC: 24, HumidityPct: 55}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
}

func TestIIOReader_ReadNegativeTemperature(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, tempAttr, "-5000")
	writeAttr(t, dir, humidityAttr, "80000")

	r := newWithDir(dir)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.TemperatureC != -5 {
		t.Errorf("TemperatureC = %d, want -5", got.TemperatureC)
	}
}

func TestIIOReader_ReadFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			"missing temperature attribute",
			func(t *testing.T, dir string) {
				writeAttr(t, dir, humidityAttr, "55000")
			},
		},
		{
			"missing humidity attribute",
			func(t *testing.T, dir string) {
				writeAttr(t, dir, tempAttr, "24000")
			},
		},
		{
			"garbage temperature value",
			func(t *testing.T, dir string) {
				writeAttr(t, dir, tempAttr, "not-a-number")
				writeAttr(t, dir, humidityAttr, "55000")
			},
		},
		{
			"negative humidity value",
			func(t *testing.T, dir string) {
				writeAttr(t, dir, tempAttr, "24000")
				writeAttr(t, dir, humidityAttr, "-1000")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			if _, err := newWithDir(dir).Read(); !errors.Is(err, domain.ErrSensorRead) {
				t.Errorf("Read() = %v, want ErrSensorRead", err)
			}
		})
	}
}

func TestNew_DevicePath(t *testing.T) {
	r := New("iio:device0")
	want := filepath.Join(iioRoot, "iio:device0")
	if r.dir != want {
		t.Errorf("dir = %s, want %s", r.dir, want)
	}
}
