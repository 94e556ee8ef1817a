//go:build windows

package monitor

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// ListMonitors returns the displays attached to this host using WinAPI.
func ListMonitors() ([]Monitor, error) {
	var list []Monitor
	callback := syscall.NewCallback(func(hMonitor win.HMONITOR, _ win.HDC, _ *win.RECT, _ uintptr) uintptr {
		var info win.MONITORINFO
		info.CbSize = uint32(unsafe.Sizeof(info))
		if win.GetMonitorInfo(hMonitor, &info) {
			list = append(list, fromRect(len(list)+1, info.RcMonitor, info.DwFlags&win.MONITORINFOF_PRIMARY != 0))
		}
		return 1
	})

	if ok := win.EnumDisplayMonitors(0, nil, callback, 0); !ok {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", syscall.GetLastError())
	}
	if len(list) == 0 {
		return nil, errors.New("no monitors detected")
	}
	return list, nil
}

// fromRect converts a WinAPI rectangle into a Monitor.
func fromRect(index int, r win.RECT, primary bool) Monitor {
	return Monitor{
		Index:   index,
		X:       int(r.Left),
		Y:       int(r.Top),
		W:       int(r.Right - r.Left),
		H:       int(r.Bottom - r.Top),
		Primary: primary,
	}
}
