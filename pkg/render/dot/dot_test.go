package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/geom"
)

func testSpec() *diagram.GraphSpec {
	return &diagram.GraphSpec{
		Nodes: []diagram.Node{
			{ID: "web", Kind: "user", Label: "Web client", Pos: geom.RelRect{W: 10, H: 10}},
			{ID: "api", Kind: "system", Label: "API", Pos: geom.RelRect{X: 40, W: 10, H: 10}},
			{ID: "db", Kind: "database", Pos: geom.RelRect{X: 80, W: 10, H: 10}},
		},
		Connectors: []diagram.Connector{
			{From: "web", To: "api", Label: "HTTPS", Style: diagram.LineStyle{Dash: "dashed"}},
			{From: "api", To: "db"},
			{From: "api", To: "ghost"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSpec(), Options{})

	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("default rankdir missing")
	}
	if !strings.Contains(dot, `"web" [label="Web client", shape=oval, fillcolor="#F0F4FF"];`) {
		t.Errorf("user node not styled, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"db" [label="db", shape=cylinder];`) {
		t.Error("unlabeled node should fall back to its id")
	}
	if !strings.Contains(dot, `"web" -> "api" [label="HTTPS", style=dashed];`) {
		t.Error("styled edge missing")
	}
	if !strings.Contains(dot, `"api" -> "db";`) {
		t.Error("plain edge missing")
	}
	if strings.Contains(dot, "ghost") {
		t.Error("dangling connector should be dropped")
	}
}

func TestToDOT_Rankdir(t *testing.T) {
	dot := ToDOT(testSpec(), Options{Rankdir: "TB"})
	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("rankdir override not applied")
	}
}

func TestToDOT_ArrowDirections(t *testing.T) {
	spec := &diagram.GraphSpec{
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
		Connectors: []diagram.Connector{
			{From: "a", To: "b", Style: diagram.LineStyle{ArrowHead: "both"}},
		},
	}
	dot := ToDOT(spec, Options{})
	if !strings.Contains(dot, "dir=both") {
		t.Error("bidirectional arrow missing")
	}
}
