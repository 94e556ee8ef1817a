package box

const (
	// CursorGrab is shown over an idle body.
	CursorGrab = "grab"
	// CursorGrabbing is shown while dragging.
	CursorGrabbing = "grabbing"
)

// CursorFor returns the static cursor of a handle, or CursorGrab for the body.
func CursorFor(d Direction) string {
	switch d {
	case DirTop, DirBottom:
		return "ns-resize"
	case DirLeft, DirRight:
		return "ew-resize"
	case DirTopLeft, DirBottomRight:
		return "nwse-resize"
	case DirTopRight, DirBottomLeft:
		return "nesw-resize"
	default:
		return CursorGrab
	}
}

// cursorOf picks the cursor for the current session.
func cursorOf(s Session) string {
	switch s.Kind {
	case Dragging:
		return CursorGrabbing
	case Resizing:
		return CursorFor(s.Direction)
	default:
		return CursorGrab
	}
}
