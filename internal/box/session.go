package box

import "github.com/frudas24/dragbox/internal/geom"

// SessionKind identifies the active interaction.
type SessionKind string

const (
	// Idle means no interaction is in progress.
	Idle SessionKind = "idle"
	// Dragging means the body is being moved.
	Dragging SessionKind = "dragging"
	// Resizing means a handle is being pulled.
	Resizing SessionKind = "resizing"
)

// Anchor holds the edges of the rectangle captured when a resize starts.
// Edges opposite the handle stay at these coordinates for the whole session.
type Anchor struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Session is the interaction state between a down and an up.
// Only the fields for Kind are meaningful.
type Session struct {
	Kind SessionKind

	// Dragging.
	Offset geom.Point

	// Resizing.
	Direction    Direction
	Anchor       Anchor
	StartPointer geom.Point
	StartRect    geom.Rect
}

// Active reports whether a drag or resize is in progress.
func (s Session) Active() bool {
	return s.Kind == Dragging || s.Kind == Resizing
}

// anchorOf captures the edges of r.
func anchorOf(r geom.Rect) Anchor {
	return Anchor{Left: r.X, Top: r.Y, Right: r.Right(), Bottom: r.Bottom()}
}
