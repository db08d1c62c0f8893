// Package theme provides visual defaults for diagram rendering.
//
// A theme carries the default font color, background, and fill palette
// applied when a deck description leaves styling unspecified. Themes are
// loaded from TOML files; every field is optional and falls back to the
// built-in defaults.
package theme

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deckdraw/pkg/errors"
)

// Default colors applied when a theme or description is silent.
const (
	DefaultFontColor  = "#000000"
	DefaultBackground = "#FFFFFF"

	// Box tree fills: column 0 light blue, deeper columns light gray.
	BoxFillFirst = "#DDEBF7"
	BoxFillRest  = "#F2F2F2"

	// Node fills by kind.
	NodeFillUser    = "#F0F4FF"
	NodeFillDefault = "#FFFFFF"
	NodeStroke      = "#647896"
)

// Theme holds the resolved visual defaults for one render.
type Theme struct {
	FontColor  string   `toml:"font_color" json:"font_color"`
	Background string   `toml:"background" json:"background"`
	Palette    []string `toml:"palette" json:"palette,omitempty"`

	BoxFillFirst string `toml:"box_fill_first" json:"box_fill_first"`
	BoxFillRest  string `toml:"box_fill_rest" json:"box_fill_rest"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		FontColor:    DefaultFontColor,
		Background:   DefaultBackground,
		BoxFillFirst: BoxFillFirst,
		BoxFillRest:  BoxFillRest,
	}
}

// Load reads a TOML theme file and merges it over the defaults.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read theme %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML theme data and merges it over the defaults.
func Parse(data []byte) (Theme, error) {
	t := Default()
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme")
	}
	if err := t.validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func (t Theme) validate() error {
	colors := append([]string{t.FontColor, t.Background, t.BoxFillFirst, t.BoxFillRest}, t.Palette...)
	for _, c := range colors {
		if c == "" {
			continue
		}
		if _, err := ParseHex(c); err != nil {
			return err
		}
	}
	return nil
}

// PaletteColor returns the i-th palette color, cycling when the palette
// is shorter than i and falling back to the first box fill when empty.
func (t Theme) PaletteColor(i int) string {
	if len(t.Palette) == 0 {
		return t.BoxFillFirst
	}
	return t.Palette[i%len(t.Palette)]
}
