// Package svg provides the built-in SVG shape emitter.
//
// Geometry arrives in canvas units (EMU); point-based stroke widths and
// font sizes are converted with the standard 12700 EMU-per-point factor
// so the output viewBox stays in canvas units end to end.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
)

const emuPerPoint = 12700

// Emitter renders emitter calls into an SVG document. It does not
// support anchored connectors: lines are drawn as positioned segments.
type Emitter struct {
	width, height int64
	background    string
	defs          map[string]bool
	body          bytes.Buffer

	fontPt float64
}

// Option configures an SVG emitter.
type Option func(*Emitter)

// WithBackground fills the canvas with the given color.
func WithBackground(color string) Option {
	return func(e *Emitter) { e.background = color }
}

// WithBaseFontSize overrides the default text size in points.
func WithBaseFontSize(pt float64) Option {
	return func(e *Emitter) { e.fontPt = pt }
}

// New creates an SVG emitter for a canvas of the given size.
func New(width, height int64, opts ...Option) *Emitter {
	e := &Emitter{width: width, height: height, defs: map[string]bool{}, fontPt: 11}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SupportsAttachment reports false: SVG lines are positioned, not bound.
func (e *Emitter) SupportsAttachment() bool { return false }

// AttachConnector is a no-op; the composer never calls it for this
// emitter because SupportsAttachment is false.
func (e *Emitter) AttachConnector(conn, shape emit.Handle, site route.Site) {}

func (e *Emitter) AddShape(kind emit.ShapeKind, rect geom.Rect) emit.Handle {
	h := handle()
	switch kind {
	case emit.ShapeRounded:
		fmt.Fprintf(&e.body, `  <rect id=%q x="%d" y="%d" width="%d" height="%d" rx="%d" fill="white"/>`+"\n",
			h, rect.Left, rect.Top, rect.Width, rect.Height, corner(rect))
	case emit.ShapePill:
		fmt.Fprintf(&e.body, `  <rect id=%q x="%d" y="%d" width="%d" height="%d" rx="%d" fill="white"/>`+"\n",
			h, rect.Left, rect.Top, rect.Width, rect.Height, rect.Height/2)
	case emit.ShapeCylinder:
		e.cylinder(h, rect)
	default:
		fmt.Fprintf(&e.body, `  <rect id=%q x="%d" y="%d" width="%d" height="%d" fill="white"/>`+"\n",
			h, rect.Left, rect.Top, rect.Width, rect.Height)
	}
	return h
}

// cylinder draws a database-style can: body plus an elliptical lid.
func (e *Emitter) cylinder(h emit.Handle, r geom.Rect) {
	lid := r.Height / 6
	fmt.Fprintf(&e.body,
		`  <g id=%q><path d="M %d %d v %d a %d %d 0 0 0 %d 0 v -%d" fill="white"/>`+
			`<ellipse cx="%d" cy="%d" rx="%d" ry="%d" fill="white"/></g>`+"\n",
		h,
		r.Left, r.Top+lid, r.Height-2*lid, r.Width/2, lid, r.Width, r.Height-2*lid,
		r.CenterX(), r.Top+lid, r.Width/2, lid)
}

func (e *Emitter) AddConnector(kind route.Kind, start, end geom.Point) emit.Handle {
	h := handle()
	if kind == route.KindElbow {
		fmt.Fprintf(&e.body, `  <path id=%q d="%s" fill="none" stroke="black"/>`+"\n", h, elbowPath(start, end))
		return h
	}
	fmt.Fprintf(&e.body, `  <line id=%q x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n",
		h, start.X, start.Y, end.X, end.Y)
	return h
}

// elbowPath builds a right-angled path with the first leg along the axis
// of greater displacement, matching the router's site selection.
func elbowPath(start, end geom.Point) string {
	dx, dy := end.X-start.X, end.Y-start.Y
	if abs(dx) >= abs(dy) {
		return fmt.Sprintf("M %d %d H %d V %d", start.X, start.Y, end.X, end.Y)
	}
	return fmt.Sprintf("M %d %d V %d H %d", start.X, start.Y, end.Y, end.X)
}

func (e *Emitter) AddTextBox(rect geom.Rect, text string, opts emit.TextOptions) emit.Handle {
	h := handle()
	size := opts.SizePt
	if size == 0 {
		size = e.fontPt
	}
	color := opts.Color
	if color == "" {
		color = "#000000"
	}

	anchor, x := "start", rect.Left
	switch opts.Align {
	case emit.AlignCenter:
		anchor, x = "middle", rect.CenterX()
	case emit.AlignRight:
		anchor, x = "end", rect.Right()
	}

	weight := ""
	if opts.Bold {
		weight = ` font-weight="bold"`
	}
	style := ""
	if opts.Italic {
		style = ` font-style="italic"`
	}

	fmt.Fprintf(&e.body,
		`  <text id=%q x="%d" y="%d" font-size="%d" fill=%q text-anchor=%q%s%s dominant-baseline="middle">%s</text>`+"\n",
		h, x, rect.CenterY(), int64(size*emuPerPoint), color, anchor, weight, style, escape(text))
	return h
}

// SetFill and SetLine rewrite attributes on the already-written element.
// The body is buffered as text, so styling is applied by handle id.
func (e *Emitter) SetFill(shape emit.Handle, color string) {
	e.restyle(shape, `fill="white"`, fmt.Sprintf("fill=%q", color))
}

func (e *Emitter) SetLine(h emit.Handle, color string, widthPt float64, dash emit.Dash) {
	attrs := fmt.Sprintf(`stroke=%q stroke-width="%d"`, color, int64(widthPt*emuPerPoint))
	if dash == emit.DashDashed {
		w := int64(widthPt * emuPerPoint)
		attrs += fmt.Sprintf(` stroke-dasharray="%d %d"`, 4*w, 3*w)
	}
	if !e.restyleOK(h, `stroke="black"`, attrs) {
		// Shapes have no stroke by default; add one.
		e.restyle(h, fmt.Sprintf("id=%q", h), fmt.Sprintf("id=%q %s", h, attrs))
	}
}

func (e *Emitter) SetArrow(conn emit.Handle, arrow emit.Arrow) {
	if arrow == emit.ArrowNone {
		return
	}
	e.defs["arrow"] = true
	var attrs []string
	if arrow == emit.ArrowEnd || arrow == emit.ArrowBoth {
		attrs = append(attrs, `marker-end="url(#arrow)"`)
	}
	if arrow == emit.ArrowStart || arrow == emit.ArrowBoth {
		attrs = append(attrs, `marker-start="url(#arrow)"`)
	}
	e.restyle(conn, fmt.Sprintf("id=%q", conn), fmt.Sprintf("id=%q %s", conn, strings.Join(attrs, " ")))
}

// restyle replaces old with new inside the element carrying the handle.
func (e *Emitter) restyle(h emit.Handle, old, repl string) {
	e.restyleOK(h, old, repl)
}

func (e *Emitter) restyleOK(h emit.Handle, old, repl string) bool {
	body := e.body.String()
	idx := strings.Index(body, string(h))
	if idx < 0 {
		return false
	}
	start := strings.LastIndex(body[:idx], "\n") + 1
	end := strings.Index(body[idx:], "\n")
	if end < 0 {
		end = len(body)
	} else {
		end += idx
	}
	line := body[start:end]
	if !strings.Contains(line, old) {
		return false
	}
	// Grouped shapes (the cylinder) carry the attribute on every part.
	patched := strings.ReplaceAll(line, old, repl)
	e.body.Reset()
	e.body.WriteString(body[:start] + patched + body[end:])
	return true
}

// Bytes renders the final SVG document.
func (e *Emitter) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`+"\n", e.width, e.height)

	if e.defs["arrow"] {
		buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" ` +
			`markerWidth="7" markerHeight="7" orient="auto-start-reverse">` +
			`<path d="M 0 0 L 10 5 L 0 10 z"/></marker></defs>` + "\n")
	}
	if e.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill=%q/>`+"\n",
			e.width, e.height, e.background)
	}

	buf.Write(e.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func corner(r geom.Rect) int64 {
	// Mild rounding, 8% of the shorter side.
	side := r.Width
	if r.Height < side {
		side = r.Height
	}
	return side * 8 / 100
}

func handle() emit.Handle { return emit.Handle(uuid.NewString()) }
