// Package pkg provides the core libraries for Deckdraw diagram rendering.
//
// # Overview
//
// Deckdraw turns declarative YAML deck descriptions into rendered slide
// artifacts. The pkg directory is organized into four main areas:
//
//  1. Geometry and layout - [geom], [route], [boxtree]
//  2. Deck model and composition - [diagram], [theme], [compose]
//  3. Emitters and engines - [emit], [emit/svg], [render/dot]
//  4. Infrastructure - [pipeline], [cache], [store], [httputil], [errors], [observability]
//
// # Architecture
//
// The typical data flow through Deckdraw:
//
//	YAML deck description
//	         ↓
//	    [diagram] package (parse + validate)
//	         ↓
//	    [compose] package (resolve geometry, route connectors)
//	         ↓
//	    [emit] package (emitter interface: SVG, scene recorder)
//	         ↓
//	    SVG/JSON/PNG/DOT output
//
// # Quick Start
//
// Parse a deck and render one slide to SVG:
//
//	import (
//	    "github.com/matzehuels/deckdraw/pkg/compose"
//	    "github.com/matzehuels/deckdraw/pkg/diagram"
//	    "github.com/matzehuels/deckdraw/pkg/emit/svg"
//	    "github.com/matzehuels/deckdraw/pkg/theme"
//	)
//
//	deck, _ := diagram.Load("deck.yaml")
//	canvas := deck.Meta.Canvas()
//
//	em := svg.New(canvas.Width, canvas.Height)
//	compose.New(em, theme.Default()).ComposeSlide(deck.Slides[0], canvas)
//	out := em.Bytes()
//
// Or run the whole thing through the pipeline, which adds slide
// selection, theming, and artifact caching:
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(ctx, deckBytes, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Geometry and Layout
//
// [geom] - Percentage-based geometry resolution. Components position
// themselves with relative rectangles (0-100 per axis) that resolve to
// absolute EMU coordinates against a region.
//
// [route] - Connector routing between resolved rectangles. Picks
// straight horizontal, straight vertical, or elbow routes based on how
// well the endpoints align.
//
// [boxtree] - Layered layout for decomposition trees: one column per
// depth level, weighted row heights, and header bands.
//
// ## Deck Model and Composition
//
// [diagram] - The YAML deck model: decks, slides, components, component
// diagrams, and decomposition trees.
//
// [theme] - TOML color themes and color math (parsing, tinting,
// contrast selection).
//
// [compose] - The composer walks a slide's components, resolves their
// geometry, and drives an emitter. All shapes resolve before any
// connector routes.
//
// ## Emitters and Engines
//
// [emit] - The emitter interface and the scene recorder, which captures
// draw calls as a serializable scene.
//
// [emit/svg] - Text-based SVG emitter.
//
// [render/dot] - Alternative engine that renders component diagrams
// through Graphviz instead of the canvas composer.
//
// ## Infrastructure
//
// [pipeline] - Complete rendering pipeline (parse → compose → emit)
// used by CLI and API. Ensures consistent behavior across entry points.
//
// [cache] - Content-addressed artifact caching with file and Redis
// backends.
//
// [store] - Scene persistence with memory and MongoDB backends.
//
// [httputil] - Remote deck fetching with retry and response caching.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/geom/...     # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/geom
// [route]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/route
// [boxtree]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/boxtree
// [diagram]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/diagram
// [theme]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/theme
// [compose]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/compose
// [emit]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/emit
// [emit/svg]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/emit/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/store
// [httputil]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/deckdraw/pkg/observability
package pkg
