// Package monitor detects display bounds used as the default viewport.
package monitor

import (
	"errors"
	"fmt"

	"github.com/frudas24/dragbox/internal/geom"
)

// Monitor describes a display and its bounds.
type Monitor struct {
	Index   int
	X       int
	Y       int
	W       int
	H       int
	Primary bool
}

// Size returns the display extent as a viewport size.
func (m Monitor) Size() geom.Size {
	return geom.Size{W: float64(m.W), H: float64(m.H)}
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// PrimaryOf returns the primary display, or the first one when none is flagged.
func PrimaryOf(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	if len(list) == 0 {
		return Monitor{}, false
	}
	return list[0], true
}

// Select returns the display for a 1-based index, or the primary display for 0.
func Select(list []Monitor, index int) (Monitor, error) {
	if index == 0 {
		if m, ok := PrimaryOf(list); ok {
			return m, nil
		}
		return Monitor{}, errors.New("no monitors detected")
	}
	if m, ok := GetMonitorByIndex(list, index); ok {
		return m, nil
	}
	return Monitor{}, fmt.Errorf("monitor %d not found (%d detected)", index, len(list))
}

// Viewport returns the size of the display selected by index on this host.
func Viewport(index int) (geom.Size, error) {
	list, err := ListMonitors()
	if err != nil {
		return geom.Size{}, err
	}
	m, err := Select(list, index)
	if err != nil {
		return geom.Size{}, err
	}
	return m.Size(), nil
}
