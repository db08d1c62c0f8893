package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
)

func render(e *Emitter) string { return string(e.Bytes()) }

func TestEmitter_Document(t *testing.T) {
	e := New(9144000, 5143500, WithBackground("#FAFAFA"))
	e.AddShape(emit.ShapeRect, geom.Rect{Left: 10, Top: 20, Width: 100, Height: 50})

	out := render(e)
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 9144000 5143500">`) {
		t.Errorf("missing svg root, got %q", out[:80])
	}
	if !strings.Contains(out, `fill="#FAFAFA"`) {
		t.Error("background rect missing")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestEmitter_ShapeVariants(t *testing.T) {
	e := New(1000, 1000)
	rect := geom.Rect{Left: 0, Top: 0, Width: 200, Height: 100}

	e.AddShape(emit.ShapeRect, rect)
	e.AddShape(emit.ShapeRounded, rect)
	e.AddShape(emit.ShapePill, rect)
	e.AddShape(emit.ShapeCylinder, rect)

	out := render(e)
	if got := strings.Count(out, "<rect"); got != 3 {
		t.Errorf("rect elements = %d, want 3", got)
	}
	if !strings.Contains(out, `rx="50"`) {
		t.Error("pill should use half-height corner radius")
	}
	if !strings.Contains(out, "<ellipse") {
		t.Error("cylinder lid ellipse missing")
	}
}

func TestEmitter_SetFill(t *testing.T) {
	e := New(1000, 1000)
	h := e.AddShape(emit.ShapeRect, geom.Rect{Width: 10, Height: 10})
	e.SetFill(h, "#DDEBF7")

	out := render(e)
	if !strings.Contains(out, `fill="#DDEBF7"`) {
		t.Error("fill not applied")
	}
	if strings.Contains(out, `fill="white"`) {
		t.Error("placeholder fill still present")
	}
}

func TestEmitter_SetFillCylinder(t *testing.T) {
	e := New(1000, 1000)
	h := e.AddShape(emit.ShapeCylinder, geom.Rect{Width: 120, Height: 240})
	e.SetFill(h, "#F2F2F2")

	// Body path and lid ellipse both take the fill.
	out := render(e)
	if got, want := strings.Count(out, `fill="#F2F2F2"`), 2; got != want {
		t.Errorf("filled parts = %d, want %d", got, want)
	}
	if strings.Contains(out, `fill="white"`) {
		t.Error("placeholder fill still present")
	}
}

func TestEmitter_ConnectorKinds(t *testing.T) {
	e := New(1000, 1000)
	e.AddConnector(route.KindHorizontal, geom.Point{X: 0, Y: 50}, geom.Point{X: 100, Y: 50})
	e.AddConnector(route.KindElbow, geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 30})
	e.AddConnector(route.KindElbow, geom.Point{X: 0, Y: 0}, geom.Point{X: 30, Y: 100})

	out := render(e)
	if !strings.Contains(out, `<line`) {
		t.Error("straight connector missing")
	}
	// Horizontal-dominant elbow goes H then V, vertical-dominant V then H.
	if !strings.Contains(out, `d="M 0 0 H 100 V 30"`) {
		t.Error("horizontal-first elbow path missing")
	}
	if !strings.Contains(out, `d="M 0 0 V 100 H 30"`) {
		t.Error("vertical-first elbow path missing")
	}
}

func TestEmitter_LineAndArrow(t *testing.T) {
	e := New(1000, 1000)
	h := e.AddConnector(route.KindHorizontal, geom.Point{}, geom.Point{X: 100})
	e.SetLine(h, "#888888", 1.2, emit.DashDashed)
	e.SetArrow(h, emit.ArrowBoth)

	out := render(e)
	if !strings.Contains(out, `stroke="#888888"`) {
		t.Error("stroke color not applied")
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("dash pattern missing")
	}
	if !strings.Contains(out, `marker-end="url(#arrow)"`) || !strings.Contains(out, `marker-start="url(#arrow)"`) {
		t.Error("arrow markers missing")
	}
	if !strings.Contains(out, "<defs><marker") {
		t.Error("marker defs missing")
	}
}

func TestEmitter_NoArrowNoDefs(t *testing.T) {
	e := New(1000, 1000)
	h := e.AddConnector(route.KindVertical, geom.Point{}, geom.Point{Y: 100})
	e.SetArrow(h, emit.ArrowNone)
	if strings.Contains(render(e), "<defs>") {
		t.Error("defs emitted without any marker use")
	}
}

func TestEmitter_TextBox(t *testing.T) {
	e := New(1000, 1000)
	e.AddTextBox(geom.Rect{Left: 0, Top: 0, Width: 200, Height: 100}, `a < "b" & c`, emit.TextOptions{
		SizePt: 10,
		Bold:   true,
		Color:  "#222222",
		Align:  emit.AlignCenter,
	})

	out := render(e)
	if !strings.Contains(out, "a &lt; &quot;b&quot; &amp; c") {
		t.Error("text not escaped")
	}
	if !strings.Contains(out, `text-anchor="middle"`) || !strings.Contains(out, `x="100"`) {
		t.Error("centered text not anchored at rect center")
	}
	if !strings.Contains(out, `font-weight="bold"`) {
		t.Error("bold missing")
	}
	if !strings.Contains(out, `font-size="127000"`) {
		t.Error("font size not converted to canvas units")
	}
}

func TestEmitter_NoAttachment(t *testing.T) {
	e := New(1000, 1000)
	if e.SupportsAttachment() {
		t.Error("svg emitter should not claim attachment support")
	}
}
