// Package box implements the drag/resize geometry controller.
package box

// Direction identifies a resize handle. The empty value means the body.
type Direction string

const (
	// DirTop resizes from the top edge.
	DirTop Direction = "top"
	// DirRight resizes from the right edge.
	DirRight Direction = "right"
	// DirBottom resizes from the bottom edge.
	DirBottom Direction = "bottom"
	// DirLeft resizes from the left edge.
	DirLeft Direction = "left"
	// DirTopLeft resizes from the top-left corner.
	DirTopLeft Direction = "top-left"
	// DirTopRight resizes from the top-right corner.
	DirTopRight Direction = "top-right"
	// DirBottomLeft resizes from the bottom-left corner.
	DirBottomLeft Direction = "bottom-left"
	// DirBottomRight resizes from the bottom-right corner.
	DirBottomRight Direction = "bottom-right"
)

// Directions lists every handle in a stable order.
var Directions = []Direction{
	DirTop, DirRight, DirBottom, DirLeft,
	DirTopLeft, DirTopRight, DirBottomLeft, DirBottomRight,
}

// edge names the side of an axis a handle moves.
type edge int

const (
	edgeNone edge = iota
	edgeStart
	edgeEnd
)

// ParseDirection returns the direction named by s.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(s)
	return d, d.Valid()
}

// Valid reports whether d is one of the eight handles.
func (d Direction) Valid() bool {
	h, v := d.edges()
	return h != edgeNone || v != edgeNone
}

// edges splits d into its horizontal and vertical components.
// edgeStart is left/top, edgeEnd is right/bottom.
func (d Direction) edges() (h edge, v edge) {
	switch d {
	case DirTop:
		return edgeNone, edgeStart
	case DirBottom:
		return edgeNone, edgeEnd
	case DirLeft:
		return edgeStart, edgeNone
	case DirRight:
		return edgeEnd, edgeNone
	case DirTopLeft:
		return edgeStart, edgeStart
	case DirTopRight:
		return edgeEnd, edgeStart
	case DirBottomLeft:
		return edgeStart, edgeEnd
	case DirBottomRight:
		return edgeEnd, edgeEnd
	default:
		return edgeNone, edgeNone
	}
}
