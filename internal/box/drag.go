package box

import (
	"math"

	"github.com/frudas24/dragbox/internal/geom"
)

// startDrag records the pointer offset from the box origin.
func startDrag(r geom.Rect, p geom.Point) Session {
	return Session{
		Kind:   Dragging,
		Offset: geom.Point{X: p.X - r.X, Y: p.Y - r.Y},
	}
}

// dragTo translates r so the pointer keeps its offset.
// Horizontally the box may leave the viewport until half its width is hidden;
// vertically only the top edge is enforced.
func dragTo(r geom.Rect, offset, p geom.Point, viewport geom.Size) geom.Rect {
	maxX := viewport.W - r.W*0.5
	r.X = math.Max(0, math.Min(p.X-offset.X, maxX))
	r.Y = math.Max(0, p.Y-offset.Y)
	return r
}
