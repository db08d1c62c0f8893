package boxtree

import (
	"math"

	"github.com/matzehuels/deckdraw/pkg/geom"
)

// Layout proportions, all relative to the target rectangle.
const (
	colGapPct     = 3  // gap between columns, percent of target width
	rowGapPct     = 1  // gap between siblings, percent of target height
	headerBandPct = 8  // header band, percent of target height
	firstColPct   = 20 // column 0 share of the gap-adjusted width, percent
)

// Options configures a box tree layout.
type Options struct {
	// Headers are optional column header strings. When non-empty, a
	// horizontal band at the top of the target is reserved for them and
	// content starts below it. Headers are never auto-generated; a list
	// shorter than the column count leaves the extra columns unlabeled.
	Headers []string

	// MaxColumns caps the number of columns. Zero means one column per
	// depth level. Nodes deeper than the cap collapse into the last
	// column instead of overflowing the target.
	MaxColumns int
}

// Placement is one laid-out box: the node it came from, the column it
// landed in, and its absolute rectangle.
type Placement struct {
	Node   *Node     `json:"-" bson:"-"`
	Name   string    `json:"name" bson:"name"`
	Column int       `json:"column" bson:"column"`
	Rect   geom.Rect `json:"rect" bson:"rect"`
}

// Column is a vertical band of the target corresponding to one depth
// level, with its optional header label.
type Column struct {
	Index  int       `json:"index" bson:"index"`
	Band   geom.Rect `json:"band" bson:"band"`
	Header string    `json:"header,omitempty" bson:"header,omitempty"`
}

// Plan is the complete output of a layout run.
type Plan struct {
	// Placements in depth-first order, parent before children, sibling
	// order preserved.
	Placements []Placement `json:"placements" bson:"placements"`

	// Columns describes each column band. Header bands (if any) sit
	// above Columns[i].Band.
	Columns []Column `json:"columns" bson:"columns"`

	// HeaderBand is the reserved header rectangle, zero-height when no
	// headers were supplied.
	HeaderBand geom.Rect `json:"header_band" bson:"header_band"`
}

// Layout computes the column-major proportional layout of root within
// target. It is pure: the same inputs always produce the same plan, and
// no input produces an error.
func Layout(root Root, target geom.Rect, opts Options) Plan {
	g := newGrid(root, target, opts)

	plan := Plan{
		Columns:    g.columns(opts.Headers),
		HeaderBand: geom.Rect{Left: target.Left, Top: target.Top, Width: target.Width, Height: g.headerH},
	}

	tops := root.tops()
	if root.IsForest() {
		// Distribute the forest into column 0 as children of a virtual
		// root spanning the full content height.
		g.distribute(&plan, tops, 0, g.contentTop, g.contentH)
	} else {
		g.place(&plan, tops[0], 0, g.contentTop, g.contentH)
	}
	return plan
}

// grid precomputes the column geometry for one layout run.
type grid struct {
	target     geom.Rect
	cols       int
	colGap     int64
	colWidths  []int64
	headerH    int64
	contentTop int64
	contentH   int64
	rowGap     int64
}

func newGrid(root Root, target geom.Rect, opts Options) *grid {
	cols := root.Depth() + 1
	if opts.MaxColumns > 0 && cols > opts.MaxColumns {
		cols = opts.MaxColumns
	}

	g := &grid{target: target, cols: cols}

	if cols > 1 {
		g.colGap = target.Width * colGapPct / 100
		remaining := target.Width - g.colGap*int64(cols-1)
		firstW := remaining * firstColPct / 100
		otherW := (remaining - firstW) / int64(cols-1)
		g.colWidths = make([]int64, cols)
		g.colWidths[0] = firstW
		for i := 1; i < cols; i++ {
			g.colWidths[i] = otherW
		}
	} else {
		g.colWidths = []int64{target.Width}
	}

	if len(opts.Headers) > 0 {
		g.headerH = target.Height * headerBandPct / 100
	}
	g.contentTop = target.Top + g.headerH
	g.contentH = target.Height - g.headerH
	g.rowGap = target.Height * rowGapPct / 100
	return g
}

func (g *grid) colX(c int) int64 {
	x := g.target.Left
	for i := 0; i < c; i++ {
		x += g.colWidths[i] + g.colGap
	}
	return x
}

func (g *grid) colWidth(c int) int64 {
	if c < len(g.colWidths) {
		return g.colWidths[c]
	}
	return g.colWidths[len(g.colWidths)-1]
}

func (g *grid) columns(headers []string) []Column {
	out := make([]Column, g.cols)
	for c := 0; c < g.cols; c++ {
		out[c] = Column{
			Index: c,
			Band: geom.Rect{
				Left:   g.colX(c),
				Top:    g.contentTop,
				Width:  g.colWidth(c),
				Height: g.contentH,
			},
		}
		if c < len(headers) {
			out[c].Header = headers[c]
		}
	}
	return out
}

// place records node's own box and distributes its children below it in
// the next column. The box is clipped to the content band.
func (g *grid) place(plan *Plan, node *Node, col int, y, h int64) {
	if y < g.contentTop {
		y = g.contentTop
	}
	if bottom := g.contentTop + g.contentH; h > bottom-y {
		h = bottom - y
	}
	plan.Placements = append(plan.Placements, Placement{
		Node:   node,
		Name:   node.Name,
		Column: col,
		Rect:   geom.Rect{Left: g.colX(col), Top: y, Width: g.colWidth(col), Height: h},
	})

	if len(node.Children) == 0 {
		return
	}
	childCol := col + 1
	if childCol > g.cols-1 {
		childCol = g.cols - 1
	}
	children := make([]*Node, len(node.Children))
	for i := range node.Children {
		children[i] = &node.Children[i]
	}
	g.distribute(plan, children, childCol, y, h)
}

// distribute splits the vertical span [y, y+h) among siblings by weight.
// All children but the last receive round(usable * w_i / Σw); the last
// child takes the exact remaining height so the parent's span is covered
// exactly regardless of rounding. Gaps larger than the span degrade to
// zero rather than producing negative heights.
func (g *grid) distribute(plan *Plan, children []*Node, col int, y, h int64) {
	n := len(children)
	if n == 0 {
		return
	}

	total := 0.0
	for _, ch := range children {
		total += ch.weight()
	}
	equalSplit := total <= 0 // all-zero weights fall back to an equal split
	if equalSplit {
		total = float64(n)
	}

	gap := g.rowGap
	usable := h - gap*int64(n-1)
	if usable < 0 {
		usable = h
		gap = 0
	}

	cursor := y
	for i, ch := range children {
		var childH int64
		if i < n-1 {
			frac := ch.weight() / total
			if equalSplit {
				frac = 1.0 / float64(n)
			}
			childH = int64(math.Round(float64(usable) * frac))
		} else {
			childH = y + h - cursor
		}
		g.place(plan, ch, col, cursor, childH)
		cursor += childH
		if i < n-1 {
			cursor += gap
		}
	}
}
