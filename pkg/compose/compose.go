// Package compose turns a parsed deck slide into emitter calls.
//
// The composer owns the drawing order and the style defaulting rules.
// For diagrams it resolves every node rectangle before routing any
// connector, so routing always sees final geometry. Connectors that
// reference unknown node ids are logged and skipped, never fatal.
package compose

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckdraw/pkg/boxtree"
	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
	"github.com/matzehuels/deckdraw/pkg/theme"
)

// Text sizes in points for the elements the composer draws itself.
const (
	titleSizePt     = 20
	nodeLabelSizePt = 10
	connLabelSizePt = 8
	boxLabelSizePt  = 9
	headerSizePt    = 10
)

// connMarginPct offsets connector anchors off the shape edge into the
// gap, as a percentage of the smaller region dimension.
const connMarginPct = 1

// connLabelWPct and connLabelHPct size the floating text box centered
// on a connector's midpoint, as percentages of the diagram region.
const (
	connLabelWPct = 14
	connLabelHPct = 6
)

// defaultTitlePos places an auto-generated slide title.
var defaultTitlePos = geom.RelRect{X: 3, Y: 2, W: 94, H: 10}

// kindShapes maps node kinds to shape variants. Unknown kinds fall back
// to the plain rectangle.
var kindShapes = map[string]emit.ShapeKind{
	"":         emit.ShapeRect,
	"rect":     emit.ShapeRect,
	"system":   emit.ShapeRounded,
	"service":  emit.ShapeRounded,
	"user":     emit.ShapePill,
	"database": emit.ShapeCylinder,
}

// kindFills maps node kinds to their default fill.
var kindFills = map[string]string{
	"user": theme.NodeFillUser,
}

// Composer draws slides through an emitter.
type Composer struct {
	emitter emit.Emitter
	theme   theme.Theme
	log     *log.Logger
}

// Option configures a composer.
type Option func(*Composer)

// WithLogger attaches a logger for skip warnings. Without it the
// composer is silent.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.log = l }
}

// New creates a composer drawing through e with the given theme.
func New(e emit.Emitter, t theme.Theme, opts ...Option) *Composer {
	c := &Composer{emitter: e, theme: t, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComposeSlide draws one slide onto the canvas. Components are drawn in
// ascending z-index; ties keep description order. A slide with a title
// but no explicit slide_title component gets one generated at the top.
func (c *Composer) ComposeSlide(slide diagram.Slide, canvas geom.Rect) {
	if slide.Background != "" && slide.Background != c.theme.Background {
		bg := c.emitter.AddShape(emit.ShapeRect, canvas)
		c.emitter.SetFill(bg, slide.Background)
	}

	comps := make([]diagram.Component, len(slide.Components))
	copy(comps, slide.Components)
	sort.SliceStable(comps, func(i, j int) bool { return comps[i].ZIndex < comps[j].ZIndex })

	if slide.Title != "" && !hasTitle(comps) {
		c.composeTitle(slide.Title, geom.Resolve(defaultTitlePos, canvas))
	}

	for _, comp := range comps {
		region := comp.Region(canvas)
		switch comp.Kind {
		case diagram.KindSlideTitle:
			if comp.Title != nil {
				c.composeTitle(comp.Title.Title, region)
			}
		case diagram.KindPlainBox:
			if comp.Box != nil {
				c.composePlainBox(comp.Box, region)
			}
		case diagram.KindDiagram:
			if comp.Diagram != nil {
				c.composeGraph(comp.Diagram, region)
			}
		case diagram.KindDecomposeTree:
			if comp.Tree != nil {
				c.composeBoxTree(comp.Tree, region)
			}
		default:
			c.log.Warn("skipping unknown component", "kind", comp.Kind, "id", comp.ID)
		}
	}
}

func hasTitle(comps []diagram.Component) bool {
	for _, comp := range comps {
		if comp.Kind == diagram.KindSlideTitle {
			return true
		}
	}
	return false
}

func (c *Composer) composeTitle(text string, region geom.Rect) {
	c.emitter.AddTextBox(region, text, emit.TextOptions{
		SizePt: titleSizePt,
		Bold:   true,
		Color:  c.theme.FontColor,
	})
}

func (c *Composer) composePlainBox(spec *diagram.BoxSpec, region geom.Rect) {
	fill := spec.Fill
	if fill == "" {
		fill = theme.NodeFillDefault
	}
	h := c.emitter.AddShape(emit.ShapeRounded, region)
	c.emitter.SetFill(h, fill)
	c.emitter.SetLine(h, theme.NodeStroke, 1, emit.DashSolid)
	if spec.Text != "" {
		c.emitter.AddTextBox(region, spec.Text, emit.TextOptions{
			SizePt: boxLabelSizePt,
			Color:  c.theme.FontColor,
			Align:  emit.AlignCenter,
		})
	}
}

// resolvedNode pairs a node's final rectangle with its shape handle.
type resolvedNode struct {
	rect   geom.Rect
	handle emit.Handle
}

// composeGraph draws a component diagram. All node rectangles are
// resolved and emitted first; connectors are routed against that final
// geometry and attached only when the emitter supports anchoring.
func (c *Composer) composeGraph(spec *diagram.GraphSpec, region geom.Rect) {
	nodes := make(map[string]resolvedNode, len(spec.Nodes))
	for _, n := range spec.Nodes {
		rect := geom.Resolve(n.Pos, region)

		kind, ok := kindShapes[n.Kind]
		if !ok {
			c.log.Warn("unknown node kind, using rectangle", "kind", n.Kind, "node", n.ID)
			kind = emit.ShapeRect
		}

		h := c.emitter.AddShape(kind, rect)
		c.emitter.SetFill(h, nodeFill(n))
		stroke, strokePt := n.Style.Stroke, n.Style.StrokePt
		if stroke == "" {
			stroke = theme.NodeStroke
		}
		if strokePt == 0 {
			strokePt = 1
		}
		c.emitter.SetLine(h, stroke, strokePt, emit.DashSolid)

		if n.Label != "" {
			c.emitter.AddTextBox(rect, n.Label, emit.TextOptions{
				SizePt: labelSize(n),
				Color:  labelColor(n, c.theme),
				Align:  emit.AlignCenter,
			})
		}
		nodes[n.ID] = resolvedNode{rect: rect, handle: h}
	}

	margin := min64(region.Width, region.Height) * connMarginPct / 100
	for _, conn := range spec.Connectors {
		from, okFrom := nodes[conn.From]
		to, okTo := nodes[conn.To]
		if !okFrom || !okTo {
			c.log.Warn("skipping dangling connector", "from", conn.From, "to", conn.To)
			continue
		}
		c.composeConnector(conn, from, to, region, margin)
	}
}

func (c *Composer) composeConnector(conn diagram.Connector, from, to resolvedNode, region geom.Rect, margin int64) {
	r := route.Route(from.rect, to.rect, margin)
	h := c.emitter.AddConnector(r.Kind, r.Start, r.End)

	style := conn.Style.Effective()
	c.emitter.SetLine(h, style.Color, style.Pt, dashOf(style.Dash))
	c.emitter.SetArrow(h, arrowOf(style.ArrowHead))

	if c.emitter.SupportsAttachment() {
		c.emitter.AttachConnector(h, from.handle, r.BeginSite)
		c.emitter.AttachConnector(h, to.handle, r.EndSite)
	}

	if conn.Label != "" {
		mid := r.Midpoint()
		w := region.Width * connLabelWPct / 100
		lh := region.Height * connLabelHPct / 100
		box := geom.Rect{
			Left:   mid.X - w/2,
			Top:    mid.Y - lh/2,
			Width:  w,
			Height: lh,
		}
		c.emitter.AddTextBox(box, conn.Label, emit.TextOptions{
			SizePt: connLabelSizePt,
			Italic: true,
			Color:  c.theme.FontColor,
			Align:  emit.AlignCenter,
		})
	}
}

// composeBoxTree draws a decomposition tree laid out column-major.
// Column 0 boxes use the first fill, deeper columns the rest fill.
func (c *Composer) composeBoxTree(spec *diagram.TreeSpec, region geom.Rect) {
	plan := boxtree.Layout(spec.Root, region, boxtree.Options{Headers: spec.Headers})

	if plan.HeaderBand.Height > 0 {
		for _, col := range plan.Columns {
			if col.Header == "" {
				continue
			}
			band := geom.Rect{
				Left:   col.Band.Left,
				Top:    plan.HeaderBand.Top,
				Width:  col.Band.Width,
				Height: plan.HeaderBand.Height,
			}
			c.emitter.AddTextBox(band, col.Header, emit.TextOptions{
				SizePt: headerSizePt,
				Bold:   true,
				Color:  c.theme.FontColor,
				Align:  emit.AlignCenter,
			})
		}
	}

	for _, p := range plan.Placements {
		fill := c.theme.BoxFillRest
		if p.Column == 0 {
			fill = c.theme.BoxFillFirst
		}
		// Tree boxes are borderless; the fill alone separates them.
		h := c.emitter.AddShape(emit.ShapeRounded, p.Rect)
		c.emitter.SetFill(h, fill)
		if p.Name != "" {
			color := c.theme.FontColor
			if bg, err := theme.ParseHex(fill); err == nil {
				color = theme.ContrastText(bg).Hex()
			}
			c.emitter.AddTextBox(p.Rect, p.Name, emit.TextOptions{
				SizePt: boxLabelSizePt,
				Color:  color,
				Align:  emit.AlignCenter,
			})
		}
	}
}

func nodeFill(n diagram.Node) string {
	if n.Style.Fill != "" {
		return n.Style.Fill
	}
	if fill, ok := kindFills[n.Kind]; ok {
		return fill
	}
	return theme.NodeFillDefault
}

func labelSize(n diagram.Node) float64 {
	if n.Style.FontSize > 0 {
		return n.Style.FontSize
	}
	return nodeLabelSizePt
}

func labelColor(n diagram.Node, t theme.Theme) string {
	if n.Style.FontColor != "" {
		return n.Style.FontColor
	}
	return t.FontColor
}

func dashOf(s string) emit.Dash {
	if s == diagram.DashDashed {
		return emit.DashDashed
	}
	return emit.DashSolid
}

func arrowOf(s string) emit.Arrow {
	switch s {
	case "none":
		return emit.ArrowNone
	case "start":
		return emit.ArrowStart
	case "both":
		return emit.ArrowBoth
	default:
		return emit.ArrowEnd
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
