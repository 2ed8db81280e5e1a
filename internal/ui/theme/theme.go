package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// SeriesColors cycles through the chart's category columns.
var SeriesColors = []color.Color{
	lipgloss.Color("#8B5CF6"),
	lipgloss.Color("#14B8A6"),
	lipgloss.Color("#F97316"),
	lipgloss.Color("#EAB308"),
	lipgloss.Color("#EC4899"),
	lipgloss.Color("#3B82F6"),
}

// SeriesColor returns the color for the i-th category.
func SeriesColor(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return SeriesColors[i%len(SeriesColors)]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Chart
var (
	ChartHeader = lipgloss.NewStyle().
			Foreground(TextDim).
			Bold(true).
			Align(lipgloss.Right)

	ChartLabel = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Left)

	ChartCell = lipgloss.NewStyle().
			Foreground(Text).
			Align(lipgloss.Right)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Revealed = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
