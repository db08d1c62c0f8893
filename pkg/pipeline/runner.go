package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckdraw/pkg/cache"
	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/observability"
)

// Runner executes the pipeline with artifact caching. It is stateless
// apart from the cache and logger, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil
// logger uses the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute parses the deck bytes and renders every requested slide in
// every requested format.
func (r *Runner) Execute(ctx context.Context, deckData []byte, opts Options) (*Result, error) {
	// Before validation, which otherwise defaults the logger to discard.
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx)
	deck, err := diagram.Parse(deckData)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, 0, time.Since(parseStart), err)
		return nil, err
	}
	observability.Pipeline().OnParseComplete(ctx, len(deck.Slides), time.Since(parseStart), nil)

	result := &Result{
		Deck:     deck,
		DeckHash: cache.Hash(deckData),
		CacheHit: true,
	}
	result.Stats.ParseTime = time.Since(parseStart)

	slides, err := selectSlides(deck, opts.SlideID)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("parsed deck",
		"slides", len(deck.Slides),
		"selected", len(slides),
		"duration", result.Stats.ParseTime)

	themeHash := ""
	if opts.ThemePath != "" {
		themeHash = cache.Hash([]byte(opts.ThemePath))
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, slide := range slides {
		sr := SlideResult{SlideID: slide.ID, Artifacts: map[string][]byte{}}

		for _, format := range opts.Formats {
			key := cache.RenderKey(deckData, cache.RenderKeyOpts{
				Format:    format,
				Engine:    opts.Engine,
				ThemeHash: themeHash,
				Slide:     slide.ID,
			})

			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
					observability.Cache().OnCacheHit(ctx, "artifact")
					sr.Artifacts[format] = data
					continue
				}
				observability.Cache().OnCacheMiss(ctx, "artifact")
			}
			result.CacheHit = false

			data, err := renderSlide(ctx, deck, slide, format, opts)
			if err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
				return nil, errors.Wrap(errors.GetCode(err), err,
					"render slide %s as %s", slide.ID, format)
			}
			sr.Artifacts[format] = data
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
		result.Slides = append(result.Slides, sr)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered deck",
		"formats", opts.Formats,
		"engine", opts.Engine,
		"cache_hit", result.CacheHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// selectSlides returns the slides to render, honoring the id filter.
func selectSlides(deck *diagram.Deck, slideID string) ([]diagram.Slide, error) {
	if slideID == "" {
		return deck.Slides, nil
	}
	for _, s := range deck.Slides {
		if s.ID == slideID {
			return []diagram.Slide{s}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSlideNotFound, "slide %q not found", slideID)
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
