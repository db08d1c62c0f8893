package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/deckdraw/pkg/compose"
	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/emit/svg"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/observability"
	"github.com/matzehuels/deckdraw/pkg/render/dot"
)

// renderSlide produces one artifact for one slide.
func renderSlide(ctx context.Context, deck *diagram.Deck, slide diagram.Slide, format string, opts Options) ([]byte, error) {
	if opts.Engine == EngineDot {
		return renderSlideDot(ctx, slide, format, opts)
	}
	return renderSlideCanvas(ctx, deck, slide, format, opts)
}

// renderSlideCanvas runs the composer against the format's emitter.
func renderSlideCanvas(ctx context.Context, deck *diagram.Deck, slide diagram.Slide, format string, opts Options) ([]byte, error) {
	canvas := deck.Meta.Canvas()
	th := opts.Theme()
	if deck.Theme.FontColor != "" {
		th.FontColor = deck.Theme.FontColor
	}

	start := time.Now()
	observability.Pipeline().OnComposeStart(ctx, slide.ID, len(slide.Components))
	defer func() {
		observability.Pipeline().OnComposeComplete(ctx, slide.ID, time.Since(start), nil)
	}()

	switch format {
	case FormatSVG:
		em := svg.New(canvas.Width, canvas.Height, svg.WithBackground(th.Background))
		compose.New(em, th, compose.WithLogger(opts.Logger)).ComposeSlide(slide, canvas)
		return em.Bytes(), nil

	case FormatJSON:
		rec := emit.NewRecorder(canvas.Width, canvas.Height, true)
		compose.New(rec, th, compose.WithLogger(opts.Logger)).ComposeSlide(slide, canvas)
		return rec.MarshalJSON()
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "canvas engine cannot produce %q", format)
}

// renderSlideDot renders the slide's component diagram through
// Graphviz. Slides without a component diagram cannot use this engine.
func renderSlideDot(ctx context.Context, slide diagram.Slide, format string, opts Options) ([]byte, error) {
	spec := firstGraph(slide)
	if spec == nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"slide %q has no component diagram for the dot engine", slide.ID)
	}

	src := dot.ToDOT(spec, dot.Options{Theme: opts.Theme()})
	switch format {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, src)
	case FormatPNG:
		return dot.RenderPNG(ctx, src)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "dot engine cannot produce %q", format)
}

func firstGraph(slide diagram.Slide) *diagram.GraphSpec {
	for _, comp := range slide.Components {
		if comp.Kind == diagram.KindDiagram && comp.Diagram != nil {
			return comp.Diagram
		}
	}
	return nil
}
