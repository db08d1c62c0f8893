// Package emit defines the shape emitter boundary.
//
// The composer never writes document markup itself: it resolves geometry
// and routing and issues emitter calls. Implementations turn those calls
// into a concrete output (SVG, a recorded scene, a slide file). Anchored
// connector binding is a declared capability: the composer only attempts
// attachment when the emitter supports it, so emitters without anchoring
// still receive fully positioned line segments.
package emit

import (
	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
)

// ShapeKind is the closed set of shape variants an emitter can draw.
type ShapeKind int

const (
	// ShapeRect is the default rectangular variant.
	ShapeRect ShapeKind = iota
	// ShapeRounded is a rounded rectangle.
	ShapeRounded
	// ShapeCylinder is a database-style cylinder.
	ShapeCylinder
	// ShapePill is a fully rounded capsule, used for actor/user nodes.
	ShapePill
)

// String returns the shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeRounded:
		return "rounded"
	case ShapeCylinder:
		return "cylinder"
	case ShapePill:
		return "pill"
	}
	return "unknown"
}

// Dash selects the stroke dash pattern.
type Dash int

const (
	DashSolid Dash = iota
	DashDashed
)

// Arrow selects which connector ends carry arrowheads.
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowEnd
	ArrowStart
	ArrowBoth
)

// Align selects horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Handle identifies an emitted element for follow-up styling calls.
type Handle string

// TextOptions styles an emitted text box.
type TextOptions struct {
	SizePt float64
	Bold   bool
	Italic bool
	Color  string
	Align  Align
}

// Emitter materializes resolved geometry into an output document.
//
// All coordinates are canvas units. Calls arrive in z-order; emitters
// may rely on shapes being emitted before the connectors that reference
// them.
type Emitter interface {
	// AddShape draws a shape of the given kind.
	AddShape(kind ShapeKind, rect geom.Rect) Handle

	// AddConnector draws a routed line of the given kind between the
	// two anchor points.
	AddConnector(kind route.Kind, start, end geom.Point) Handle

	// AttachConnector binds a connector end to a shape attachment site
	// so the line follows the shape. Only called when
	// SupportsAttachment reports true.
	AttachConnector(conn Handle, shape Handle, site route.Site)

	// AddTextBox draws a borderless text box.
	AddTextBox(rect geom.Rect, text string, opts TextOptions) Handle

	// SetFill sets a shape's fill color (hex).
	SetFill(shape Handle, color string)

	// SetLine sets stroke color, width in points, and dash pattern.
	SetLine(h Handle, color string, widthPt float64, dash Dash)

	// SetArrow sets connector arrowheads.
	SetArrow(conn Handle, arrow Arrow)

	// SupportsAttachment reports whether AttachConnector is usable.
	SupportsAttachment() bool
}
