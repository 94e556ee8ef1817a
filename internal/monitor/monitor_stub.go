//go:build !windows

package monitor

import "errors"

// ErrUnsupported indicates display enumeration is not available on this platform.
var ErrUnsupported = errors.New("monitor enumeration is only supported on Windows")

// ListMonitors returns ErrUnsupported on non-Windows platforms.
func ListMonitors() ([]Monitor, error) {
	return nil, ErrUnsupported
}
