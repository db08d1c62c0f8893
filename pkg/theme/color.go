package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/deckdraw/pkg/errors"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" color (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	return c, nil
}

// MustHex parses a hex color and panics on failure. For package-level
// constants only.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Tint blends the color toward white (factor > 0) or black (factor < 0).
// The magnitude of factor is the blend ratio in [0, 1].
func (c RGB) Tint(factor float64) RGB {
	toward := 255.0
	if factor < 0 {
		toward = 0
	}
	ratio := math.Abs(factor)
	blend := func(v uint8) uint8 {
		return clamp8(math.Round(float64(v) + (toward-float64(v))*ratio))
	}
	return RGB{R: blend(c.R), G: blend(c.G), B: blend(c.B)}
}

// MixWithWhite linearly interpolates the color toward white.
// A ratio of 0.7 produces the pastel variants used for box fills.
func (c RGB) MixWithWhite(ratio float64) RGB {
	mix := func(v uint8) uint8 {
		return clamp8(float64(v) + (255-float64(v))*ratio)
	}
	return RGB{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

// Luminance returns the relative luminance in [0, 1] using the Rec. 601
// coefficients.
func (c RGB) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// ContrastText picks black or white text for the given background color.
func ContrastText(bg RGB) RGB {
	if bg.Luminance() > 0.5 {
		return RGB{}
	}
	return RGB{R: 255, G: 255, B: 255}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
