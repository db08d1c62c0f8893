package theme

import (
	"testing"

	"github.com/matzehuels/deckdraw/pkg/errors"
)

func TestDefault(t *testing.T) {
	th := Default()
	if got, want := th.FontColor, "#000000"; got != want {
		t.Errorf("font color = %q, want %q", got, want)
	}
	if got, want := th.BoxFillFirst, "#DDEBF7"; got != want {
		t.Errorf("box fill first = %q, want %q", got, want)
	}
}

func TestParse_MergesOverDefaults(t *testing.T) {
	th, err := Parse([]byte(`
font_color = "#333333"
palette = ["#FF0000", "#00FF00"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := th.FontColor, "#333333"; got != want {
		t.Errorf("font color = %q, want %q", got, want)
	}
	if got, want := th.Background, DefaultBackground; got != want {
		t.Errorf("background = %q, want default %q", got, want)
	}
	if got, want := th.BoxFillRest, BoxFillRest; got != want {
		t.Errorf("box fill rest = %q, want default %q", got, want)
	}
	if got, want := len(th.Palette), 2; got != want {
		t.Errorf("palette = %d colors, want %d", got, want)
	}
}

func TestParse_RejectsInvalidColor(t *testing.T) {
	_, err := Parse([]byte(`font_color = "notacolor"`))
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("err = %v, want INVALID_COLOR", err)
	}
}

func TestParse_RejectsBadTOML(t *testing.T) {
	_, err := Parse([]byte(`font_color = [`))
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("err = %v, want INVALID_THEME", err)
	}
}

func TestPaletteColor(t *testing.T) {
	empty := Default()
	if got, want := empty.PaletteColor(3), BoxFillFirst; got != want {
		t.Errorf("empty palette color = %q, want %q", got, want)
	}

	th := Theme{Palette: []string{"#111111", "#222222"}}
	if got, want := th.PaletteColor(0), "#111111"; got != want {
		t.Errorf("color 0 = %q, want %q", got, want)
	}
	if got, want := th.PaletteColor(3), "#222222"; got != want {
		t.Errorf("color 3 = %q, want cycled %q", got, want)
	}
}
