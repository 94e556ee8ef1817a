package box

import (
	"math"

	"github.com/frudas24/dragbox/internal/geom"
)

// startResize snapshots the box and pointer for a resize from d.
func startResize(r geom.Rect, p geom.Point, d Direction) Session {
	return Session{
		Kind:         Resizing,
		Direction:    d,
		Anchor:       anchorOf(r),
		StartPointer: p,
		StartRect:    r,
	}
}

// resizeTo computes the box for pointer p using the session snapshot.
// Each axis is handled independently, so corners never couple width and height.
func resizeTo(s Session, p geom.Point, viewport geom.Size, lim Limits) geom.Rect {
	start := s.StartRect
	next := start
	dx := p.X - s.StartPointer.X
	dy := p.Y - s.StartPointer.Y

	h, v := s.Direction.edges()
	switch h {
	case edgeEnd:
		next.W = geom.Clamp(start.W+dx, lim.MinWidth, lim.MaxWidth)
	case edgeStart:
		// The right edge is pinned; the box cannot grow past x=0.
		w := geom.Clamp(start.W-dx, lim.MinWidth, lim.MaxWidth)
		w = math.Min(w, s.Anchor.Right)
		next.W = w
		next.X = s.Anchor.Right - w
	}

	switch v {
	case edgeEnd:
		next.H = geom.Clamp(start.H+dy, lim.MinHeight, viewport.H-start.Y)
	case edgeStart:
		height := math.Max(lim.MinHeight, start.H-dy)
		next.Y = math.Max(0, s.Anchor.Bottom-height)
		next.H = math.Min(height, s.Anchor.Bottom)
	}
	return next
}
