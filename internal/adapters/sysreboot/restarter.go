// Package sysreboot implements ports.Restarter with a full system reboot.
package sysreboot

import (
	"github.com/edge-labs/telemship/internal/ports"
)

// Restarter reboots the device via the kernel. Requires the process to run
// with CAP_SYS_BOOT, which is the normal situation for a device agent
// started by the init system.
type Restarter struct {
	logger ports.Logger
}

// New creates a system restarter.
func New(logger ports.Logger) *Restarter {
	return &Restarter{logger: logger}
}

// Restart syncs filesystems and reboots. On success it does not return.
func (r *Restarter) Restart() error {
	r.logger.Error("rebooting device")
	return reboot()
}
