//go:build !linux

package sysreboot

import "errors"

func reboot() error {
	return errors.New("reboot is only supported on linux")
}
