package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckdraw/pkg/cache"
	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/httputil"
	"github.com/matzehuels/deckdraw/pkg/pipeline"
)

// sourceTTL is how long fetched remote decks stay fresh.
const sourceTTL = time.Hour

// readDeckSource loads the deck bytes from a local file or, for
// http(s) inputs, fetches them with retry and response caching.
func readDeckSource(ctx context.Context, input string) ([]byte, error) {
	if !httputil.IsURL(input) {
		return os.ReadFile(input)
	}
	hc, err := httputil.NewCache("", sourceTTL)
	if err != nil {
		hc = nil
	}
	return httputil.NewClient(hc).FetchDeck(ctx, input)
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string // output base path; derived from input when empty
	engine      string // render engine: "canvas" or "dot"
	slide       string // render only the slide with this id
	themePath   string // TOML theme file
	formats     []string
	interactive bool // pick the slide with the TUI
	noCache     bool // disable the artifact cache
	refresh     bool // bypass cached artifacts
	cacheDir    string
}

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{engine: pipeline.EngineCanvas}

	cmd := &cobra.Command{
		Use:   "render [deck.yaml]",
		Short: "Render a deck description to artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input name without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", opts.engine, "render engine: canvas (default), dot")
	cmd.Flags().StringVarP(&opts.slide, "slide", "s", "", "render only the slide with this id")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "TOML theme file")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the slide interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "artifact cache directory (default: user cache dir)")

	return cmd
}

// parseFormats splits the --format flag, defaulting to svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readDeckSource(ctx, input)
	if err != nil {
		return err
	}

	if opts.interactive {
		deck, err := diagram.Parse(data)
		if err != nil {
			return err
		}
		id, err := pickSlide(deck)
		if err != nil {
			return err
		}
		if id == "" {
			printWarning("no slide selected")
			return nil
		}
		opts.slide = id
	}

	c, err := openCache(opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Formats:   opts.formats,
		Engine:    opts.engine,
		SlideID:   opts.slide,
		ThemePath: opts.themePath,
		Refresh:   opts.refresh,
		Logger:    logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spinner.Start()
	result, err := runner.Execute(ctx, data, pipeOpts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("render failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", input))

	written, err := writeArtifacts(result, basePath(opts.output, input))
	if err != nil {
		return err
	}

	printStats(len(result.Slides), written, result.CacheHit)
	if opts.engine == pipeline.EngineCanvas && !contains(opts.formats, pipeline.FormatJSON) {
		printNextStep("Inspect the resolved scene", fmt.Sprintf("deckdraw render %s -f json", input))
	}
	return nil
}

// openCache builds the artifact cache from the flags.
func openCache(opts *renderOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	dir := opts.cacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = filepath.Join(base, "deckdraw")
	}
	return cache.NewFileCache(dir)
}

// basePath derives the output base path, stripping a known format
// extension from an explicit output and the extension from the input.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// writeArtifacts writes every rendered artifact next to the base path.
// Single-slide runs use base.format; multi-slide runs append the slide
// id. Returns the number of files written.
func writeArtifacts(result *pipeline.Result, base string) (int, error) {
	written := 0
	for _, sr := range result.Slides {
		for format, data := range sr.Artifacts {
			path := fmt.Sprintf("%s.%s", base, format)
			if len(result.Slides) > 1 {
				path = fmt.Sprintf("%s_%s.%s", base, sr.SlideID, format)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return written, err
			}
			printFile(path)
			written++
		}
	}
	return written, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
