package box

import (
	"math"

	"github.com/frudas24/dragbox/internal/geom"
)

// TargetBody names the body in client messages.
const TargetBody = "body"

// Classify maps a down position to a handle, the body, or nothing.
// Handle zones are handleSize thick and centred on the border. Corners are
// tested before edges and every handle before the body, so a press on a handle
// never starts a drag. ok is false when p misses the box entirely.
func Classify(r geom.Rect, p geom.Point, handleSize float64) (d Direction, ok bool) {
	if handleSize > 0 {
		half := handleSize / 2
		inX := p.X >= r.X-half && p.X <= r.Right()+half
		inY := p.Y >= r.Y-half && p.Y <= r.Bottom()+half
		if inX && inY {
			top := math.Abs(p.Y-r.Y) <= half
			bottom := math.Abs(p.Y-r.Bottom()) <= half
			left := math.Abs(p.X-r.X) <= half
			right := math.Abs(p.X-r.Right()) <= half
			switch {
			case top && left:
				return DirTopLeft, true
			case top && right:
				return DirTopRight, true
			case bottom && left:
				return DirBottomLeft, true
			case bottom && right:
				return DirBottomRight, true
			case top:
				return DirTop, true
			case bottom:
				return DirBottom, true
			case left:
				return DirLeft, true
			case right:
				return DirRight, true
			}
		}
	}
	return "", geom.Contains(r, p)
}

// ResolveTarget turns a client target into a handle direction.
// "body" selects the body, a direction selects that handle, and an empty target
// is classified from the position. ok is false for misses and unknown targets.
func ResolveTarget(target string, r geom.Rect, p geom.Point, handleSize float64) (Direction, bool) {
	switch target {
	case TargetBody:
		return "", true
	case "":
		return Classify(r, p, handleSize)
	default:
		return ParseDirection(target)
	}
}
