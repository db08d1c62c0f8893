// Package route decides how two axis-aligned rectangles are connected.
//
// Given the resolved geometry of two shapes, Route classifies their spatial
// relationship and produces a connector kind (straight horizontal, straight
// vertical, or elbow), the start and end anchor points, and the attachment
// sites on each shape's boundary. The decision is total: every pair of
// rectangles resolves to exactly one of the three kinds.
package route

import "github.com/matzehuels/deckdraw/pkg/geom"

// Site identifies a cardinal attachment point on a rectangle's boundary.
// The numeric values match the connection site indices used by shape
// emitters that support anchored connectors.
type Site int

// Attachment sites in emitter site order.
const (
	SiteTop Site = iota
	SiteLeft
	SiteBottom
	SiteRight
)

// String returns the lowercase site name.
func (s Site) String() string {
	switch s {
	case SiteTop:
		return "top"
	case SiteLeft:
		return "left"
	case SiteBottom:
		return "bottom"
	case SiteRight:
		return "right"
	}
	return "unknown"
}

// Kind classifies the routed connector geometry.
type Kind int

const (
	// KindHorizontal is a straight line between facing vertical edges.
	KindHorizontal Kind = iota
	// KindVertical is a straight line between facing horizontal edges.
	KindVertical
	// KindElbow is a right-angled line between shape centers, used when
	// the rectangles are diagonal to each other or overlapping.
	KindElbow
)

// String returns the connector kind name.
func (k Kind) String() string {
	switch k {
	case KindHorizontal:
		return "straight-horizontal"
	case KindVertical:
		return "straight-vertical"
	case KindElbow:
		return "elbow"
	}
	return "unknown"
}

// Result holds a routing decision for one connector.
// Results are ephemeral: computed per connector and never persisted.
type Result struct {
	Start, End         geom.Point
	Kind               Kind
	BeginSite, EndSite Site
}

// Midpoint returns the point halfway along the anchor segment.
// Connector labels are centered here regardless of kind.
func (r Result) Midpoint() geom.Point {
	return geom.Midpoint(r.Start, r.End)
}

// alignDivisor controls the "aligned" heuristic: two rectangles count as
// horizontally (vertically) aligned when their center offset on the cross
// axis is less than a quarter of their combined height (width). The value
// is empirical; non-default aspect ratios may want a different divisor.
const alignDivisor = 4

// Route classifies the relationship between from and to and returns the
// connector kind, anchor points, and attachment sites.
//
// Rules are tried in priority order:
//
//  1. Side by side and roughly level → straight horizontal between the
//     facing edge midpoints, offset outward by margin.
//  2. Stacked and roughly centered → straight vertical, analogous.
//  3. Anything else (diagonal or overlapping) → elbow between centers,
//     with sites picked along the axis of greater displacement.
//
// Route is pure and never fails.
func Route(from, to geom.Rect, margin int64) Result {
	fc, tc := from.Center(), to.Center()

	dx := abs(tc.X - fc.X)
	dy := abs(tc.Y - fc.Y)

	horizAligned := dy < (from.Height+to.Height)/alignDivisor
	vertAligned := dx < (from.Width+to.Width)/alignDivisor

	// Straight horizontal: level and separated on the x axis.
	if horizAligned && (from.Right() <= to.Left || to.Right() <= from.Left) {
		if from.Right() <= to.Left {
			return Result{
				Start:     geom.Point{X: from.Right() + margin, Y: fc.Y},
				End:       geom.Point{X: to.Left - margin, Y: tc.Y},
				Kind:      KindHorizontal,
				BeginSite: SiteRight,
				EndSite:   SiteLeft,
			}
		}
		return Result{
			Start:     geom.Point{X: from.Left - margin, Y: fc.Y},
			End:       geom.Point{X: to.Right() + margin, Y: tc.Y},
			Kind:      KindHorizontal,
			BeginSite: SiteLeft,
			EndSite:   SiteRight,
		}
	}

	// Straight vertical: centered and separated on the y axis.
	if vertAligned && (from.Bottom() <= to.Top || to.Bottom() <= from.Top) {
		if from.Bottom() <= to.Top {
			return Result{
				Start:     geom.Point{X: fc.X, Y: from.Bottom() + margin},
				End:       geom.Point{X: tc.X, Y: to.Top - margin},
				Kind:      KindVertical,
				BeginSite: SiteBottom,
				EndSite:   SiteTop,
			}
		}
		return Result{
			Start:     geom.Point{X: fc.X, Y: from.Top - margin},
			End:       geom.Point{X: tc.X, Y: to.Bottom() + margin},
			Kind:      KindVertical,
			BeginSite: SiteTop,
			EndSite:   SiteBottom,
		}
	}

	// Elbow: anchor at both centers, sites along the dominant axis.
	r := Result{Start: fc, End: tc, Kind: KindElbow}
	if dx >= dy {
		if tc.X > fc.X {
			r.BeginSite, r.EndSite = SiteRight, SiteLeft
		} else {
			r.BeginSite, r.EndSite = SiteLeft, SiteRight
		}
		return r
	}
	if tc.Y > fc.Y {
		r.BeginSite, r.EndSite = SiteBottom, SiteTop
	} else {
		r.BeginSite, r.EndSite = SiteTop, SiteBottom
	}
	return r
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
