// Package pipeline runs the complete deck rendering flow.
//
// The pipeline has three stages, shared by the CLI and the render
// service so both behave identically:
//
//  1. Parse: decode the YAML deck description
//  2. Compose: resolve geometry and routing for every slide
//  3. Emit: produce artifacts in the requested formats
//
// Rendering is deterministic, so artifacts are cached keyed by deck
// bytes plus the options that affect the output.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckdraw/pkg/diagram"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/theme"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// Render engines.
const (
	// EngineCanvas honors the percentage placement in the description.
	EngineCanvas = "canvas"
	// EngineDot hands component diagrams to Graphviz for layout.
	EngineDot = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatDOT:  true,
}

// ValidEngines is the set of supported render engines.
var ValidEngines = map[string]bool{
	EngineCanvas: true,
	EngineDot:    true,
}

// engineFormats lists which formats each engine can produce.
var engineFormats = map[string]map[string]bool{
	EngineCanvas: {FormatSVG: true, FormatJSON: true},
	EngineDot:    {FormatSVG: true, FormatPNG: true, FormatDOT: true},
}

// Cache TTLs per artifact class.
const (
	// TTLArtifact bounds how long rendered outputs are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Options configures one pipeline run. The struct serializes to JSON
// for render service requests.
type Options struct {
	// Formats selects the outputs to produce. Defaults to ["svg"].
	Formats []string `json:"formats,omitempty"`

	// Engine selects the render engine. Defaults to "canvas".
	Engine string `json:"engine,omitempty"`

	// SlideID restricts rendering to one slide. Empty renders all.
	SlideID string `json:"slide_id,omitempty"`

	// ThemePath loads a TOML theme file. Empty uses the built-in theme.
	ThemePath string `json:"theme_path,omitempty"`

	// Refresh bypasses the cache and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options, not serialized.
	Logger *log.Logger `json:"-"`

	// theme is resolved by ValidateAndSetDefaults.
	theme theme.Theme

	validated bool
}

// Result holds the outputs of one pipeline run.
type Result struct {
	// Deck is the parsed deck description.
	Deck *diagram.Deck

	// DeckHash is the content hash of the deck bytes.
	DeckHash string

	// Slides holds one entry per rendered slide, in deck order.
	Slides []SlideResult

	// Stats carries timing information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// SlideResult is the rendered output of one slide.
type SlideResult struct {
	SlideID   string            `json:"slide_id"`
	Artifacts map[string][]byte `json:"artifacts"`
}

// Stats contains pipeline execution timing.
type Stats struct {
	ParseTime  time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, json, png, dot)", format)
	}
	return nil
}

// ValidateEngine checks that an engine is supported.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine,
			"invalid engine %q (must be one of: canvas, dot)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It
// is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = EngineCanvas
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if !engineFormats[o.Engine][f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"format %q is not supported by the %s engine", f, o.Engine)
		}
	}

	if o.ThemePath != "" {
		t, err := theme.Load(o.ThemePath)
		if err != nil {
			return err
		}
		o.theme = t
	} else {
		o.theme = theme.Default()
	}

	o.validated = true
	return nil
}

// Theme returns the resolved theme. Only valid after
// ValidateAndSetDefaults.
func (o *Options) Theme() theme.Theme {
	return o.theme
}
