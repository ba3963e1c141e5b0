package geo

import (
	"fmt"
	"math"
)

var (
	ErrNegativeSize = fmt.Errorf("rectangle width and height must be non-negative")
	ErrNotFinite    = fmt.Errorf("rectangle fields must be finite numbers")
)

// Point is a position on the plane.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// A Rect value never changes after construction.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect validates the given fields and returns the rectangle. Negative
// sizes are rejected: the containment and intersection predicates silently
// misbehave on inverted rectangles, so they never get built.
func NewRect(x, y, width, height float64) (Rect, error) {
	for _, v := range [...]float64{x, y, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Rect{}, ErrNotFinite
		}
	}
	if width < 0 || height < 0 {
		return Rect{}, ErrNegativeSize
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

// Origin returns the anchor point of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

func (r Rect) MidX() float64 {
	return r.X + r.Width/2
}

func (r Rect) MidY() float64 {
	return r.Y + r.Height/2
}

// Contains reports whether inner lies fully inside r on all four sides.
// Touching edges count as contained.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.MaxX() <= r.MaxX() &&
		inner.Y >= r.Y && inner.MaxY() <= r.MaxY()
}

// Intersects reports whether r and o overlap with positive area on both
// axes. The comparison is strict: rectangles that merely share an edge or
// a corner do not intersect, so adjacent items never collide.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X &&
		r.Y < o.MaxY() && r.MaxY() > o.Y
}

func (r Rect) Equal(o Rect) bool {
	return r.X == o.X && r.Y == o.Y && r.Width == o.Width && r.Height == o.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
