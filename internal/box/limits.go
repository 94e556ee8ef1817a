package box

import (
	"fmt"
	"math"

	"github.com/frudas24/dragbox/internal/geom"
)

const (
	// DefaultMinWidth is the narrowest the box may become.
	DefaultMinWidth = 150
	// DefaultMaxWidth is the widest the box may become.
	DefaultMaxWidth = 500
	// DefaultMinHeight is the shortest the box may become. There is no maximum height.
	DefaultMinHeight = 240
)

// Limits bounds the box size. Height has no upper limit.
type Limits struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
}

// DefaultLimits returns the stock size limits.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:  DefaultMinWidth,
		MaxWidth:  DefaultMaxWidth,
		MinHeight: DefaultMinHeight,
	}
}

// Validate checks the limits are usable.
func (l Limits) Validate() error {
	if math.IsInf(l.MinWidth, 0) || math.IsInf(l.MaxWidth, 0) || math.IsInf(l.MinHeight, 0) {
		return fmt.Errorf("limits must be finite, got %+v", l)
	}
	if !(l.MinWidth > 0) {
		return fmt.Errorf("min width must be > 0, got %v", l.MinWidth)
	}
	if !(l.MaxWidth >= l.MinWidth) {
		return fmt.Errorf("max width %v is below min width %v", l.MaxWidth, l.MinWidth)
	}
	if !(l.MinHeight > 0) {
		return fmt.Errorf("min height must be > 0, got %v", l.MinHeight)
	}
	return nil
}

// Check reports the first bound r violates, or nil. Comparisons are written
// so that NaN fails them.
func (l Limits) Check(r geom.Rect) error {
	switch {
	case !r.Finite():
		return fmt.Errorf("rect %+v is not finite", r)
	case !(r.X >= 0 && r.Y >= 0):
		return fmt.Errorf("origin (%v,%v) is outside the viewport", r.X, r.Y)
	case !(r.W >= l.MinWidth && r.W <= l.MaxWidth):
		return fmt.Errorf("width %v is outside [%v,%v]", r.W, l.MinWidth, l.MaxWidth)
	case !(r.H >= l.MinHeight):
		return fmt.Errorf("height %v is below %v", r.H, l.MinHeight)
	}
	return nil
}
