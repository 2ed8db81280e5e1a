package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chartiz/internal/router"
	"github.com/abhisek/chartiz/internal/screen"
	"github.com/abhisek/chartiz/internal/ui/components"
	"github.com/abhisek/chartiz/internal/ui/layout"
	"github.com/abhisek/chartiz/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu   components.Menu
	source string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. newQuiz builds a fresh quiz for every start
// and may return nil if it cannot; source names where the templates come from.
func New(newQuiz func() screen.Screen, source string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START QUIZ", Disabled: newQuiz == nil, Action: func() tea.Cmd {
			next := newQuiz()
			if next == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		source: source,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderBanner(width))
	sections = append(sections, theme.Subtitle.Render(
		"Read the chart, answer the question."))

	if h.source != "" {
		sections = append(sections, theme.Hint.Render("Templates: "+h.source))
	}

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
