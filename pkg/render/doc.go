// Package render groups the alternative render engines.
//
// The canvas engine (the composer in [compose] driving an emitter from
// [emit]) is the default and honors exact component geometry. The [dot]
// subpackage is the alternative: it hands component diagrams to Graphviz
// and lets its layout engine place the nodes, trading positional
// fidelity for automatic layout.
//
//	src := dot.ToDOT(spec, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := dot.RenderPNG(ctx, src)
//
// [compose]: github.com/matzehuels/deckdraw/pkg/compose
// [emit]: github.com/matzehuels/deckdraw/pkg/emit
// [dot]: github.com/matzehuels/deckdraw/pkg/render/dot
package render
