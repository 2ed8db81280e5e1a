package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/chartiz/internal/session"
	"github.com/abhisek/chartiz/internal/ui/components"
	"github.com/abhisek/chartiz/internal/ui/layout"
	"github.com/abhisek/chartiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderChart(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.state.Current == nil {
		b.WriteString(s.renderWaiting(width))
		return b.String()
	}

	b.WriteString(s.renderQuestion(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderStats(width))
	return b.String()
}

// renderChart lays the table and the ranking side by side, or stacked on
// narrow terminals.
func (s *QuizScreen) renderChart(width int) string {
	table := components.ChartTable(s.deps.Grid)
	if layout.IsCompactWidth(width) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, table)
	}

	rankWidth := min(36, width-lipgloss.Width(table)-8)
	ranking := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Ranking by total") + "\n\n" + components.ChartRanking(s.deps.Grid, rankWidth)

	row := lipgloss.JoinHorizontal(lipgloss.Top, table, "    ", ranking)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func (s *QuizScreen) renderWaiting(width int) string {
	msg := "Loading questions..."
	if !s.loading {
		msg = "No questions available."
	}
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, msg)
}

func (s *QuizScreen) renderQuestion(width int) string {
	state := s.state
	q := state.Current

	var b strings.Builder
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, q.Text))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	switch {
	case state.Submitted && state.LastAnswerCorrect:
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	case state.Submitted:
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			fmt.Sprintf("Correct answer: %s", q.Answer)))
	case state.Revealed && q.Answerable():
		b.WriteString(layout.Centered(theme.Revealed, width,
			fmt.Sprintf("Answer: %s", q.Answer)))
	case s.notice != "":
		b.WriteString(layout.Centered(theme.Hint, width, s.notice))
	}

	return b.String()
}

func (s *QuizScreen) renderStats(width int) string {
	state := s.state
	last := "--:--"
	if state.HasLastDuration {
		last = sess.FormatClock(state.LastDuration)
	}
	line := fmt.Sprintf("Score %s    Last %s    Total %s",
		state.Score(), last, sess.FormatClock(state.Elapsed))
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, line)
}
