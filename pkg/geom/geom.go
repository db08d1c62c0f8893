// Package geom provides the coordinate primitives for diagram rendering.
//
// All absolute geometry is expressed in canvas units, a single integer
// linear unit (the same unit the emitter consumes). Placement in deck
// descriptions is percentage-based; Resolve converts a percentage
// rectangle into canvas units relative to a reference rectangle.
package geom

// Point is an absolute position in canvas units.
type Point struct {
	X int64 `json:"x" bson:"x"`
	Y int64 `json:"y" bson:"y"`
}

// Rect is an absolute rectangle in canvas units.
// Width and Height are expected to be non-negative after resolution,
// but degenerate rectangles are passed through rather than rejected.
type Rect struct {
	Left   int64 `json:"left" bson:"left"`
	Top    int64 `json:"top" bson:"top"`
	Width  int64 `json:"width" bson:"width"`
	Height int64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int64 { return r.Top + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() int64 { return r.Top + r.Height/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// RelRect is a rectangle expressed as percentages (0-100) of a reference
// rectangle's width and height. Out-of-range values are legal and resolve
// to out-of-reference geometry; clamping is the caller's decision.
type RelRect struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
	W float64 `json:"w" yaml:"w" bson:"w"`
	H float64 `json:"h" yaml:"h" bson:"h"`
}

// Resolve converts rel into canvas units relative to ref.
//
// Each component is truncated toward zero after scaling (floor for the
// non-negative case) so repeated resolution never accumulates drift.
// Resolve is pure and cannot fail.
func Resolve(rel RelRect, ref Rect) Rect {
	return Rect{
		Left:   ref.Left + scale(ref.Width, rel.X),
		Top:    ref.Top + scale(ref.Height, rel.Y),
		Width:  scale(ref.Width, rel.W),
		Height: scale(ref.Height, rel.H),
	}
}

// scale returns total * pct/100 truncated to an integer.
func scale(total int64, pct float64) int64 {
	return int64(float64(total) * pct / 100.0)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
