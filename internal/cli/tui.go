package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/deckdraw/pkg/diagram"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// SlideListModel is the bubbletea model for interactive slide
// selection in multi-slide decks.
type SlideListModel struct {
	Slides   []diagram.Slide
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewSlideListModel creates a slide picker over the deck's slides.
func NewSlideListModel(slides []diagram.Slide) SlideListModel {
	return SlideListModel{Slides: slides, Height: 15}
}

func (m SlideListModel) Init() tea.Cmd {
	return nil
}

func (m SlideListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Slides)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Slides[m.Cursor].ID
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SlideListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Slide"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Slides) {
		end = len(m.Slides)
	}

	for i := m.Offset; i < end; i++ {
		s := m.Slides[i]
		line := slideLine(s)

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// slideLine formats one list entry: id, title, component count.
func slideLine(s diagram.Slide) string {
	label := s.ID
	if s.Title != "" {
		label += "  " + s.Title
	}
	return fmt.Sprintf("%s  %s", label,
		listDimStyle.Render(fmt.Sprintf("(%d components)", len(s.Components))))
}

// pickSlide runs the slide picker and returns the selected slide id.
// Single-slide decks skip the picker.
func pickSlide(deck *diagram.Deck) (string, error) {
	if len(deck.Slides) == 1 {
		return deck.Slides[0].ID, nil
	}

	final, err := tea.NewProgram(NewSlideListModel(deck.Slides)).Run()
	if err != nil {
		return "", err
	}
	model, ok := final.(SlideListModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}
