package box

import (
	"errors"
	"fmt"

	"github.com/frudas24/dragbox/internal/geom"
)

// ViewportFunc reports the current viewport size. It is read on every move.
type ViewportFunc func() geom.Size

// State is the read-only view handed to renderers.
type State struct {
	Rect      geom.Rect   `json:"rect"`
	Session   SessionKind `json:"session"`
	Direction Direction   `json:"dir,omitempty"`
	Cursor    string      `json:"cursor"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithCapturer acquires pointer capture for every session.
func WithCapturer(c Capturer) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.capturer = c
		}
	}
}

// WithObserver registers a callback invoked after every state change.
func WithObserver(fn func(State)) Option {
	return func(ctl *Controller) {
		ctl.observer = fn
	}
}

// Controller owns the box geometry and the active session.
// It is not safe for concurrent use; callers serialise access.
type Controller struct {
	limits   Limits
	viewport ViewportFunc
	capturer Capturer
	observer func(State)

	rect    geom.Rect
	session Session
	release func()
}

// New returns an idle controller for the initial rectangle.
func New(initial geom.Rect, limits Limits, viewport ViewportFunc, opts ...Option) (*Controller, error) {
	if viewport == nil {
		return nil, errors.New("viewport provider is required")
	}
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("limits: %w", err)
	}
	if err := limits.Check(initial); err != nil {
		return nil, fmt.Errorf("initial rect: %w", err)
	}
	c := &Controller{
		limits:   limits,
		viewport: viewport,
		capturer: noCapture{},
		rect:     initial,
		session:  Session{Kind: Idle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Rect returns the current rectangle.
func (c *Controller) Rect() geom.Rect {
	return c.rect
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	return c.session
}

// Limits returns the size limits the controller enforces.
func (c *Controller) Limits() Limits {
	return c.limits
}

// State returns the renderer view of the controller.
func (c *Controller) State() State {
	return State{
		Rect:      c.rect,
		Session:   c.session.Kind,
		Direction: c.session.Direction,
		Cursor:    cursorOf(c.session),
	}
}

// Down starts a session. An empty handle starts a drag, a direction starts a
// resize. It reports false when a session is already active, the handle is
// unknown or p is not a real position.
func (c *Controller) Down(p geom.Point, handle Direction) bool {
	if c.session.Active() || !p.Finite() {
		return false
	}
	switch {
	case handle == "":
		c.session = startDrag(c.rect, p)
	case handle.Valid():
		c.session = startResize(c.rect, p, handle)
	default:
		return false
	}
	c.release = c.capturer.Capture()
	c.notify()
	return true
}

// Move recomputes the rectangle for pointer p and reports whether it changed.
// Moves while idle are ignored, and so are results that overflow to a
// non-finite rectangle; the previous rectangle is kept.
func (c *Controller) Move(p geom.Point) bool {
	var next geom.Rect
	switch c.session.Kind {
	case Dragging:
		next = dragTo(c.rect, c.session.Offset, p, c.viewport())
	case Resizing:
		next = resizeTo(c.session, p, c.viewport(), c.limits)
	default:
		return false
	}
	if next == c.rect || !next.Finite() {
		return false
	}
	c.rect = next
	c.notify()
	return true
}

// Up ends the active session. Ups while idle are ignored.
func (c *Controller) Up() bool {
	return c.end()
}

// Cancel ends the active session without a pointer up, for example when the
// input source disconnects. The rectangle keeps its last computed value.
func (c *Controller) Cancel() bool {
	return c.end()
}

// end returns to Idle and releases pointer capture exactly once.
func (c *Controller) end() bool {
	if !c.session.Active() {
		return false
	}
	c.session = Session{Kind: Idle}
	if release := c.release; release != nil {
		c.release = nil
		release()
	}
	c.notify()
	return true
}

// notify hands the current state to the observer.
func (c *Controller) notify() {
	if c.observer != nil {
		c.observer(c.State())
	}
}
