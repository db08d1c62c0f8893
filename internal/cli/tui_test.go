package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/deckdraw/pkg/diagram"
)

func testSlides() []diagram.Slide {
	return []diagram.Slide{
		{ID: "one", Title: "First"},
		{ID: "two"},
		{ID: "three"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSlideListNavigation(t *testing.T) {
	m := NewSlideListModel(testSlides())

	next, _ := m.Update(keyMsg("j"))
	m = next.(SlideListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 after down", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(SlideListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 after up", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("k"))
	m = next.(SlideListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.Cursor)
	}
}

func TestSlideListSelect(t *testing.T) {
	m := NewSlideListModel(testSlides())

	next, _ := m.Update(keyMsg("j"))
	m = next.(SlideListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(SlideListModel)

	if m.Selected != "two" {
		t.Errorf("selected = %q, want %q", m.Selected, "two")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestSlideListView(t *testing.T) {
	m := NewSlideListModel(testSlides())
	view := m.View()

	if !strings.Contains(view, "Select Slide") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "one") || !strings.Contains(view, "First") {
		t.Error("view missing slide id and title")
	}
	if !strings.Contains(view, "▸") {
		t.Error("view missing cursor marker")
	}
}

func TestPickSlideSingle(t *testing.T) {
	deck := &diagram.Deck{Slides: []diagram.Slide{{ID: "only"}}}
	id, err := pickSlide(deck)
	if err != nil {
		t.Fatalf("pickSlide: %v", err)
	}
	if id != "only" {
		t.Errorf("id = %q, want %q (single slide skips the picker)", id, "only")
	}
}
