// Package diagram defines the deck description model and its YAML decoding.
//
// A deck is a list of slides; each slide holds components placed by
// percentage rectangles. Component payloads are typed per component kind
// through a closed enumeration, not a dynamic tool lookup. Components of
// an unknown kind decode to an empty payload and are skipped with a
// warning at compose time; unknown node shape kinds inside a diagram
// fall back to the default rectangle.
//
// The decoder is deliberately lenient about the document root: a full
// deck mapping, a bare slide list, a bare component list, or a mapping
// with only components are all accepted and normalized into a Deck.
package diagram

import (
	"github.com/matzehuels/deckdraw/pkg/boxtree"
	"github.com/matzehuels/deckdraw/pkg/geom"
)

// Component kinds understood by the composer.
const (
	KindSlideTitle    = "slide_title"
	KindPlainBox      = "plain_box"
	KindDiagram       = "component_diagram"
	KindDecomposeTree = "decompose_boxes"
)

// Canvas presets, in EMU (1 mm = 36000 EMU, 1 inch = 914400 EMU).
const (
	emuPerMM     = 36000
	preset16x9W  = 9144000 // 10 inches
	preset16x9H  = 5143500 // 5.625 inches
	preset4x3W   = 9144000
	preset4x3H   = 6858000 // 7.5 inches
	defaultCanvW = preset16x9W
	defaultCanvH = preset16x9H
)

// Deck is a parsed deck description.
type Deck struct {
	Version int     `yaml:"version" json:"version"`
	Meta    Meta    `yaml:"meta" json:"meta"`
	Theme   Style   `yaml:"theme" json:"theme"`
	Slides  []Slide `yaml:"slides" json:"slides"`
}

// Meta carries deck-level metadata.
type Meta struct {
	Title     string     `yaml:"title" json:"title,omitempty"`
	SlideSize *SlideSize `yaml:"slide_size" json:"slide_size,omitempty"`
}

// SlideSize selects the canvas dimensions, either by preset name or by
// explicit millimeter dimensions.
type SlideSize struct {
	Preset   string  `yaml:"preset" json:"preset,omitempty"`
	WidthMM  float64 `yaml:"w_mm" json:"w_mm,omitempty"`
	HeightMM float64 `yaml:"h_mm" json:"h_mm,omitempty"`
}

// Style carries deck-level theme overrides.
type Style struct {
	FontColor string `yaml:"font_color" json:"font_color,omitempty"`
}

// Canvas returns the absolute canvas rectangle for the deck.
func (m Meta) Canvas() geom.Rect {
	c := geom.Rect{Width: defaultCanvW, Height: defaultCanvH}
	s := m.SlideSize
	if s == nil {
		return c
	}
	switch {
	case s.Preset == "16x9":
		c.Width, c.Height = preset16x9W, preset16x9H
	case s.Preset == "4x3":
		c.Width, c.Height = preset4x3W, preset4x3H
	case s.WidthMM > 0 && s.HeightMM > 0:
		c.Width = int64(s.WidthMM * emuPerMM)
		c.Height = int64(s.HeightMM * emuPerMM)
	}
	return c
}

// Slide is one canvas worth of components.
type Slide struct {
	ID         string      `yaml:"id" json:"id,omitempty"`
	Title      string      `yaml:"title" json:"title,omitempty"`
	Background string      `yaml:"background" json:"background,omitempty"`
	Components []Component `yaml:"components" json:"components"`
}

// Component is a single placed element on a slide. Exactly one of the
// payload fields is set, matching Kind.
type Component struct {
	Kind   string        `json:"kind"`
	ID     string        `json:"id,omitempty"`
	Pos    *geom.RelRect `json:"pos,omitempty"`
	ZIndex int           `json:"z_index,omitempty"`

	Title   *TitleSpec `json:"title,omitempty"`
	Box     *BoxSpec   `json:"box,omitempty"`
	Diagram *GraphSpec `json:"diagram,omitempty"`
	Tree    *TreeSpec  `json:"tree,omitempty"`
}

// Region resolves the component's placement within the canvas. A missing
// pos spans the full canvas.
func (c Component) Region(canvas geom.Rect) geom.Rect {
	if c.Pos == nil {
		return canvas
	}
	return geom.Resolve(*c.Pos, canvas)
}

// TitleSpec is the payload of a slide_title component.
type TitleSpec struct {
	Title string `yaml:"title" json:"title"`
}

// BoxSpec is the payload of a plain_box component.
type BoxSpec struct {
	Text string `yaml:"text" json:"text"`
	Fill string `yaml:"fill" json:"fill,omitempty"`
}

// GraphSpec is the payload of a component_diagram component: a flat node
// list plus connectors referencing node ids.
type GraphSpec struct {
	Nodes      []Node      `yaml:"nodes" json:"nodes"`
	Connectors []Connector `yaml:"connectors" json:"connectors"`
}

// Node is a typed diagram node placed by percentages of the component
// region. IDs must be unique within one diagram; duplicates keep the
// last definition.
type Node struct {
	ID    string       `yaml:"id" json:"id"`
	Kind  string       `yaml:"kind" json:"kind,omitempty"`
	Label string       `yaml:"label" json:"label,omitempty"`
	Pos   geom.RelRect `yaml:"pos" json:"pos"`
	Style NodeStyle    `yaml:"style" json:"style,omitempty"`
}

// NodeStyle holds per-node visual overrides. Zero values defer to the
// theme and kind defaults.
type NodeStyle struct {
	Fill      string  `yaml:"fill" json:"fill,omitempty"`
	Stroke    string  `yaml:"stroke" json:"stroke,omitempty"`
	StrokePt  float64 `yaml:"stroke_pt" json:"stroke_pt,omitempty"`
	FontColor string  `yaml:"font_color" json:"font_color,omitempty"`
	FontSize  float64 `yaml:"font_size" json:"font_size,omitempty"`
}

// Connector joins two nodes by id. Dangling references are skipped at
// compose time, not rejected here.
type Connector struct {
	From  string    `yaml:"from" json:"from"`
	To    string    `yaml:"to" json:"to"`
	Label string    `yaml:"label" json:"label,omitempty"`
	Style LineStyle `yaml:"style" json:"style,omitempty"`
}

// LineStyle describes connector stroke appearance.
type LineStyle struct {
	Color     string  `yaml:"color" json:"color,omitempty"`
	Pt        float64 `yaml:"pt" json:"pt,omitempty"`
	Dash      string  `yaml:"dash" json:"dash,omitempty"`
	ArrowHead string  `yaml:"arrow_head" json:"arrow_head,omitempty"`
}

// Line style defaults from the description format.
const (
	DefaultLineColor = "#888888"
	DefaultLinePt    = 1.2
	DefaultArrowHead = "end"
	DashSolid        = "solid"
	DashDashed       = "dashed"
)

// Effective returns the line style with description defaults filled in.
func (s LineStyle) Effective() LineStyle {
	if s.Color == "" {
		s.Color = DefaultLineColor
	}
	if s.Pt == 0 {
		s.Pt = DefaultLinePt
	}
	if s.Dash == "" {
		s.Dash = DashSolid
	}
	if s.ArrowHead == "" {
		s.ArrowHead = DefaultArrowHead
	}
	return s
}

// TreeSpec is the payload of a decompose_boxes component: a box tree or
// forest plus optional column headers.
type TreeSpec struct {
	Root    boxtree.Root
	Headers []string
}
