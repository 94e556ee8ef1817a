// Package replay drives a geometry controller from a recorded event script.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/geom"
	"gopkg.in/yaml.v3"
)

// Script is a YAML event recording.
type Script struct {
	Viewport   geom.Size `yaml:"viewport"`
	Rect       geom.Rect `yaml:"rect"`
	Limits     *Limits   `yaml:"limits"`
	HandleSize float64   `yaml:"handleSize"`
	Events     []Event   `yaml:"events"`
}

// Limits overrides the default size limits.
type Limits struct {
	MinWidth  float64 `yaml:"minWidth"`
	MaxWidth  float64 `yaml:"maxWidth"`
	MinHeight float64 `yaml:"minHeight"`
}

// Event is one scripted input. T is down, move, up, cancel or viewport.
type Event struct {
	T      string  `yaml:"t"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Target string  `yaml:"target"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
}

// Step is the controller state after one event.
type Step struct {
	Index   int       `json:"step"`
	Event   string    `json:"event"`
	Changed bool      `json:"changed"`
	State   box.State `json:"state"`
}

// Load reads a script from disk.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, err
	}
	if !s.Viewport.Usable() {
		return Script{}, errors.New("viewport must have a finite positive size")
	}
	return s, nil
}

// Run plays the script and returns the state after every event.
func Run(s Script) ([]Step, error) {
	limits := box.DefaultLimits()
	if s.Limits != nil {
		limits = box.Limits{MinWidth: s.Limits.MinWidth, MaxWidth: s.Limits.MaxWidth, MinHeight: s.Limits.MinHeight}
	}
	viewport := s.Viewport
	ctl, err := box.New(s.Rect, limits, func() geom.Size { return viewport })
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(s.Events))
	for i, ev := range s.Events {
		p := geom.Point{X: ev.X, Y: ev.Y}
		var changed bool
		switch kind := box.EventKind(ev.T); kind {
		case box.EventDown:
			if handle, ok := box.ResolveTarget(ev.Target, ctl.Rect(), p, s.HandleSize); ok {
				changed = ctl.Handle(box.Event{Kind: kind, Point: p, Handle: handle})
			}
		case box.EventMove, box.EventUp, box.EventCancel:
			changed = ctl.Handle(box.Event{Kind: kind, Point: p})
		case "viewport":
			next := geom.Size{W: ev.W, H: ev.H}
			if !next.Usable() {
				return nil, fmt.Errorf("step %d: viewport must have a finite positive size", i+1)
			}
			viewport = next
		default:
			return nil, fmt.Errorf("step %d: unknown event %q", i+1, ev.T)
		}
		steps = append(steps, Step{Index: i + 1, Event: ev.T, Changed: changed, State: ctl.State()})
	}
	return steps, nil
}

// Write prints steps as aligned text or as JSON lines.
func Write(w io.Writer, steps []Step, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, st := range steps {
			if err := enc.Encode(st); err != nil {
				return err
			}
		}
		return nil
	}
	for _, st := range steps {
		r := st.State.Rect
		if _, err := fmt.Fprintf(w, "%3d %-8s %-8s x=%g y=%g w=%g h=%g cursor=%s\n",
			st.Index, st.Event, st.State.Session, r.X, r.Y, r.W, r.H, st.State.Cursor); err != nil {
			return err
		}
	}
	return nil
}
