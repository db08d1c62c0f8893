package compose

import (
	"testing"

	"github.com/matzehuels/deckdraw/pkg/boxtree"
	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
	"github.com/matzehuels/deckdraw/pkg/theme"
)

var testCanvas = geom.Rect{Width: 10000, Height: 5000}

func composeOn(t *testing.T, slide diagram.Slide, attachable bool) emit.Scene {
	t.Helper()
	rec := emit.NewRecorder(testCanvas.Width, testCanvas.Height, attachable)
	New(rec, theme.Default()).ComposeSlide(slide, testCanvas)
	return rec.Scene()
}

func graphSlide(spec *diagram.GraphSpec) diagram.Slide {
	return diagram.Slide{
		Background: "#FFFFFF",
		Components: []diagram.Component{
			{Kind: diagram.KindDiagram, Diagram: spec},
		},
	}
}

func twoNodeGraph() *diagram.GraphSpec {
	return &diagram.GraphSpec{
		Nodes: []diagram.Node{
			{ID: "a", Label: "A", Pos: geom.RelRect{X: 0, Y: 40, W: 20, H: 20}},
			{ID: "b", Label: "B", Pos: geom.RelRect{X: 60, Y: 40, W: 20, H: 20}},
		},
		Connectors: []diagram.Connector{{From: "a", To: "b"}},
	}
}

func TestComposeSlide_GraphShapesBeforeConnectors(t *testing.T) {
	scene := composeOn(t, graphSlide(twoNodeGraph()), false)

	if got, want := len(scene.Shapes), 2; got != want {
		t.Fatalf("shapes = %d, want %d", got, want)
	}
	if got, want := len(scene.Connectors), 1; got != want {
		t.Fatalf("connectors = %d, want %d", got, want)
	}

	conn := scene.Connectors[0]
	if conn.Kind != route.KindHorizontal {
		t.Errorf("connector kind = %v, want horizontal", conn.Kind)
	}
	// Anchors must sit on the shapes' facing edges (offset by margin),
	// proving routing saw resolved geometry.
	a, b := scene.Shapes[0].Rect, scene.Shapes[1].Rect
	if conn.Start.X <= a.Right()-1 || conn.End.X >= b.Left+1 {
		t.Errorf("anchors %v -> %v not between shape edges %d and %d",
			conn.Start, conn.End, a.Right(), b.Left)
	}
}

func TestComposeSlide_DanglingConnectorSkipped(t *testing.T) {
	spec := twoNodeGraph()
	spec.Connectors = append(spec.Connectors,
		diagram.Connector{From: "a", To: "ghost"},
		diagram.Connector{From: "ghost", To: "b"},
	)
	scene := composeOn(t, graphSlide(spec), false)

	if got, want := len(scene.Connectors), 1; got != want {
		t.Errorf("connectors = %d, want %d (dangling ones skipped)", got, want)
	}
	if got, want := len(scene.Shapes), 2; got != want {
		t.Errorf("shapes = %d, want %d (skipping must not drop nodes)", got, want)
	}
}

func TestComposeSlide_AttachmentGatedOnCapability(t *testing.T) {
	detached := composeOn(t, graphSlide(twoNodeGraph()), false)
	if got := len(detached.Connectors[0].Attachments); got != 0 {
		t.Errorf("attachments = %d, want 0 when emitter has no anchoring", got)
	}

	attached := composeOn(t, graphSlide(twoNodeGraph()), true)
	atts := attached.Connectors[0].Attachments
	if got, want := len(atts), 2; got != want {
		t.Fatalf("attachments = %d, want %d", got, want)
	}
	if atts[0].Site != route.SiteRight || atts[1].Site != route.SiteLeft {
		t.Errorf("sites = %v, %v, want right, left", atts[0].Site, atts[1].Site)
	}
	if atts[0].Shape != attached.Shapes[0].Handle || atts[1].Shape != attached.Shapes[1].Handle {
		t.Error("attachment handles do not reference the routed shapes")
	}
}

func TestComposeSlide_NodeKindShapes(t *testing.T) {
	tests := []struct {
		kind string
		want emit.ShapeKind
	}{
		{"user", emit.ShapePill},
		{"system", emit.ShapeRounded},
		{"database", emit.ShapeCylinder},
		{"", emit.ShapeRect},
		{"hexagon", emit.ShapeRect}, // unknown kinds fall back
	}
	for _, tt := range tests {
		spec := &diagram.GraphSpec{
			Nodes: []diagram.Node{{ID: "n", Kind: tt.kind, Pos: geom.RelRect{W: 10, H: 10}}},
		}
		scene := composeOn(t, graphSlide(spec), false)
		if got := scene.Shapes[0].Kind; got != tt.want {
			t.Errorf("kind %q: shape = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestComposeSlide_NodeFillDefaults(t *testing.T) {
	spec := &diagram.GraphSpec{
		Nodes: []diagram.Node{
			{ID: "u", Kind: "user", Pos: geom.RelRect{W: 10, H: 10}},
			{ID: "s", Kind: "system", Pos: geom.RelRect{X: 50, W: 10, H: 10}},
			{ID: "o", Kind: "system", Pos: geom.RelRect{Y: 50, W: 10, H: 10},
				Style: diagram.NodeStyle{Fill: "#123456"}},
		},
	}
	scene := composeOn(t, graphSlide(spec), false)

	if got, want := scene.Shapes[0].Fill, theme.NodeFillUser; got != want {
		t.Errorf("user fill = %q, want %q", got, want)
	}
	if got, want := scene.Shapes[1].Fill, theme.NodeFillDefault; got != want {
		t.Errorf("system fill = %q, want %q", got, want)
	}
	if got, want := scene.Shapes[2].Fill, "#123456"; got != want {
		t.Errorf("override fill = %q, want %q", got, want)
	}
}

func TestComposeSlide_ConnectorStyle(t *testing.T) {
	spec := twoNodeGraph()
	spec.Connectors[0].Label = "calls"
	spec.Connectors[0].Style = diagram.LineStyle{Dash: "dashed", ArrowHead: "both"}
	scene := composeOn(t, graphSlide(spec), false)

	conn := scene.Connectors[0]
	if conn.Line == nil {
		t.Fatal("connector has no line props")
	}
	if got, want := conn.Line.Color, diagram.DefaultLineColor; got != want {
		t.Errorf("color = %q, want default %q", got, want)
	}
	if conn.Line.Dash != emit.DashDashed {
		t.Error("dash style not applied")
	}
	if conn.Arrow != emit.ArrowBoth {
		t.Errorf("arrow = %v, want both", conn.Arrow)
	}

	// Label text box is centered on the connector midpoint.
	var label *emit.SceneText
	for i := range scene.Texts {
		if scene.Texts[i].Text == "calls" {
			label = &scene.Texts[i]
		}
	}
	if label == nil {
		t.Fatal("connector label missing")
	}
	mid := geom.Midpoint(conn.Start, conn.End)
	if label.Rect.CenterX() != mid.X || label.Rect.CenterY() != mid.Y {
		t.Errorf("label center = (%d,%d), want midpoint %v",
			label.Rect.CenterX(), label.Rect.CenterY(), mid)
	}
}

func TestComposeSlide_ZIndexOrder(t *testing.T) {
	slide := diagram.Slide{
		Background: "#FFFFFF",
		Components: []diagram.Component{
			{Kind: diagram.KindPlainBox, ZIndex: 5, Box: &diagram.BoxSpec{Text: "top"}},
			{Kind: diagram.KindPlainBox, ZIndex: 1, Box: &diagram.BoxSpec{Text: "bottom"}},
		},
	}
	scene := composeOn(t, slide, false)
	if got, want := scene.Texts[0].Text, "bottom"; got != want {
		t.Errorf("first drawn text = %q, want %q", got, want)
	}
	if got, want := scene.Texts[1].Text, "top"; got != want {
		t.Errorf("last drawn text = %q, want %q", got, want)
	}
}

func TestComposeSlide_AutoTitle(t *testing.T) {
	slide := diagram.Slide{Title: "Overview", Background: "#FFFFFF"}
	scene := composeOn(t, slide, false)
	if len(scene.Texts) != 1 || scene.Texts[0].Text != "Overview" {
		t.Fatalf("texts = %+v, want one auto title", scene.Texts)
	}
	if !scene.Texts[0].Options.Bold {
		t.Error("auto title should be bold")
	}

	// An explicit slide_title suppresses the generated one.
	slide.Components = []diagram.Component{
		{Kind: diagram.KindSlideTitle, Title: &diagram.TitleSpec{Title: "Custom"}},
	}
	scene = composeOn(t, slide, false)
	if len(scene.Texts) != 1 || scene.Texts[0].Text != "Custom" {
		t.Errorf("texts = %+v, want only the explicit title", scene.Texts)
	}
}

func TestComposeSlide_Background(t *testing.T) {
	slide := diagram.Slide{Background: "#DDEEFF"}
	scene := composeOn(t, slide, false)
	if len(scene.Shapes) != 1 {
		t.Fatalf("shapes = %d, want 1 background rect", len(scene.Shapes))
	}
	bg := scene.Shapes[0]
	if bg.Fill != "#DDEEFF" {
		t.Errorf("background fill = %q, want #DDEEFF", bg.Fill)
	}
	if bg.Rect.Width != testCanvas.Width || bg.Rect.Height != testCanvas.Height {
		t.Errorf("background rect = %+v, want full canvas", bg.Rect)
	}

	// Theme-default background emits nothing.
	scene = composeOn(t, diagram.Slide{Background: "#FFFFFF"}, false)
	if len(scene.Shapes) != 0 {
		t.Errorf("shapes = %d, want 0 for default background", len(scene.Shapes))
	}
}

func TestComposeSlide_BoxTree(t *testing.T) {
	tree := &diagram.TreeSpec{
		Root: boxtreeSingle("Product",
			boxtreeLeaf("Core", 1),
			boxtreeLeaf("Edge", 1),
		),
		Headers: []string{"L1", "L2"},
	}
	slide := diagram.Slide{
		Background: "#FFFFFF",
		Components: []diagram.Component{{Kind: diagram.KindDecomposeTree, Tree: tree}},
	}
	scene := composeOn(t, slide, false)

	if got, want := len(scene.Shapes), 3; got != want {
		t.Fatalf("shapes = %d, want %d", got, want)
	}
	if got, want := scene.Shapes[0].Fill, theme.BoxFillFirst; got != want {
		t.Errorf("column 0 fill = %q, want %q", got, want)
	}
	if got, want := scene.Shapes[1].Fill, theme.BoxFillRest; got != want {
		t.Errorf("column 1 fill = %q, want %q", got, want)
	}
	for i, s := range scene.Shapes {
		if s.Line != nil {
			t.Errorf("shape %d has a border, want borderless boxes", i)
		}
	}

	// Two headers plus three box labels.
	if got, want := len(scene.Texts), 5; got != want {
		t.Errorf("texts = %d, want %d", got, want)
	}
	if scene.Texts[0].Text != "L1" || !scene.Texts[0].Options.Bold {
		t.Errorf("first text = %+v, want bold header L1", scene.Texts[0])
	}
}

func boxtreeLeaf(name string, w float64) boxtree.Node {
	return boxtree.Node{Name: name, Weight: w}
}

func boxtreeSingle(name string, children ...boxtree.Node) boxtree.Root {
	return boxtree.Single(boxtree.Node{Name: name, Weight: 1, Children: children})
}

func TestComposeSlide_UnknownComponentSkipped(t *testing.T) {
	slide := diagram.Slide{
		Background: "#FFFFFF",
		Components: []diagram.Component{
			{Kind: "bar_chart"},
			{Kind: diagram.KindPlainBox, Box: &diagram.BoxSpec{Text: "kept"}},
		},
	}
	scene := composeOn(t, slide, false)
	if got, want := len(scene.Shapes), 1; got != want {
		t.Errorf("shapes = %d, want %d", got, want)
	}
}
