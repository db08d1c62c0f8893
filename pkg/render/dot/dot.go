// Package dot renders component diagrams through Graphviz.
//
// It is the alternate engine: instead of honoring the percentage
// placement in the description, it hands the node set and connectors to
// Graphviz and lets it compute the layout. Useful for decks authored
// without positions, or to sanity-check a hand-placed diagram.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/theme"
)

// Options configures DOT generation.
type Options struct {
	// Rankdir sets the Graphviz layout direction. Defaults to "LR",
	// matching the left-to-right flow of most component diagrams.
	Rankdir string

	// Theme supplies font and fill defaults.
	Theme theme.Theme
}

// kindDotShapes maps node kinds to Graphviz shapes. Unknown kinds fall
// back to a plain box, mirroring the canvas engine.
var kindDotShapes = map[string]string{
	"":         "box",
	"rect":     "box",
	"system":   "box",
	"service":  "box",
	"user":     "oval",
	"database": "cylinder",
}

// ToDOT converts a component diagram to Graphviz DOT source. Connectors
// referencing unknown node ids are dropped, matching the canvas engine's
// skip behavior.
func ToDOT(spec *diagram.GraphSpec, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "LR"
	}
	fontColor := opts.Theme.FontColor
	if fontColor == "" {
		fontColor = theme.DefaultFontColor
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontcolor=%q, margin=\"0.2,0.1\"];\n", fontColor)
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		known[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, c := range spec.Connectors {
		if !known[c.From] || !known[c.To] {
			continue
		}
		attrs := edgeAttrs(c)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n diagram.Node) []string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	shape, ok := kindDotShapes[n.Kind]
	if !ok {
		shape = "box"
	}
	if shape != "box" {
		attrs = append(attrs, fmt.Sprintf("shape=%s", shape))
	}

	fill := n.Style.Fill
	if fill == "" && n.Kind == "user" {
		fill = theme.NodeFillUser
	}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func edgeAttrs(c diagram.Connector) []string {
	var attrs []string
	if c.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", c.Label))
	}

	style := c.Style.Effective()
	if style.Dash == diagram.DashDashed {
		attrs = append(attrs, "style=dashed")
	}
	if style.Color != diagram.DefaultLineColor {
		attrs = append(attrs, fmt.Sprintf("color=%q", style.Color))
	}
	switch style.ArrowHead {
	case "none":
		attrs = append(attrs, "dir=none")
	case "start":
		attrs = append(attrs, "dir=back")
	case "both":
		attrs = append(attrs, "dir=both")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG with the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}
