package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chartiz/internal/router"
	"github.com/abhisek/chartiz/internal/screen"
	"github.com/abhisek/chartiz/internal/session"
	"github.com/abhisek/chartiz/internal/store"
	"github.com/abhisek/chartiz/internal/ui/components"
	"github.com/abhisek/chartiz/internal/ui/layout"
	"github.com/abhisek/chartiz/internal/ui/theme"
)

const recentLimit = 5

// attemptLogMsg carries the per-kind accuracy and recent answers read back
// from the attempt log.
type attemptLogMsg struct {
	Kinds  []store.KindAccuracy
	Recent []store.AnswerEvent
	Err    error
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
	events  store.EventRepo
	kinds   []store.KindAccuracy
	recent  []store.AnswerEvent
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. events may be nil, in which case the
// per-kind table comes from the in-memory summary.
func New(summary *session.SessionSummary, events store.EventRepo) *SummaryScreen {
	s := &SummaryScreen{summary: summary, events: events}
	if summary != nil {
		for _, kr := range summary.KindResults {
			s.kinds = append(s.kinds, store.KindAccuracy{
				Kind:      string(kr.Kind),
				Attempted: kr.Attempted,
				Correct:   kr.Correct,
			})
		}
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.events == nil || s.summary == nil {
		return nil
	}
	events := s.events
	id := s.summary.SessionID
	return func() tea.Msg {
		ctx := context.Background()
		kinds, err := events.AccuracyByKind(ctx, id)
		if err != nil {
			return attemptLogMsg{Err: err}
		}
		recent, err := events.QueryAnswerEvents(ctx, id, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return attemptLogMsg{Err: err}
		}
		return attemptLogMsg{Kinds: kinds, Recent: recent}
	}
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptLogMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.kinds = msg.Kinds
		s.recent = msg.Recent
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(layout.Centered(theme.Title, width, "Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("Duration: %s", session.FormatClock(sum.Duration))))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(layout.Centered(theme.Body, width, statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(s.kinds) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("By question type")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		pad := 0
		for _, k := range s.kinds {
			pad = max(pad, lipgloss.Width(k.Kind))
		}
		for _, k := range s.kinds {
			bar := components.NewBar(k.Kind, k.Accuracy(), min(width-8, 60))
			bar.Suffix = fmt.Sprintf("%d/%d", k.Correct, k.Attempted)
			bar.Fill = theme.Success
			bar.LabelPad = pad
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
	}

	if len(s.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent answers")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, e := range s.recent {
			style := theme.Correct
			mark := "✓"
			if !e.Correct {
				style = theme.Incorrect
				mark = "✗"
			}
			line := style.Render(mark) + " " + theme.Body.Render(
				fmt.Sprintf("%s  (you: %s, answer: %s)", e.QuestionText, e.LearnerAnswer, e.CorrectAnswer))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"Attempt log unavailable: "+s.errMsg))
	}

	return b.String()
}
