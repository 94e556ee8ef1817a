package box

import "github.com/frudas24/dragbox/internal/geom"

// EventKind identifies a pointer event.
type EventKind string

const (
	// EventDown presses the pointer.
	EventDown EventKind = "down"
	// EventMove moves the pointer.
	EventMove EventKind = "move"
	// EventUp releases the pointer.
	EventUp EventKind = "up"
	// EventCancel abandons the session without a release.
	EventCancel EventKind = "cancel"
)

// Event is a classified pointer event. Handle is only read for EventDown.
type Event struct {
	Kind   EventKind
	Point  geom.Point
	Handle Direction
}

// Handle dispatches ev and reports whether the controller state changed.
func (c *Controller) Handle(ev Event) bool {
	switch ev.Kind {
	case EventDown:
		return c.Down(ev.Point, ev.Handle)
	case EventMove:
		return c.Move(ev.Point)
	case EventUp:
		return c.Up()
	case EventCancel:
		return c.Cancel()
	default:
		return false
	}
}
