package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chartiz/internal/grid"
	"github.com/abhisek/chartiz/internal/ui/theme"
)

const chartCellWidth = 7

// ChartTable renders the grid as a table: one row per category, one column
// per point, and a trailing total column.
func ChartTable(g *grid.Grid) string {
	if g == nil {
		return ""
	}

	labelWidth := 4
	for _, c := range g.Categories() {
		labelWidth = max(labelWidth, lipgloss.Width(c)+2)
	}

	var b strings.Builder
	b.WriteString(theme.ChartLabel.Width(labelWidth).Render(""))
	for _, p := range g.Points() {
		b.WriteString(theme.ChartHeader.Width(chartCellWidth).Render(p))
	}
	b.WriteString(theme.ChartHeader.Width(chartCellWidth + 2).Render("Total"))
	b.WriteString("\n")

	for i, s := range g.Series() {
		label := lipgloss.NewStyle().
			Foreground(theme.SeriesColor(i)).
			Bold(true).
			Width(labelWidth).
			Render(s.Label)
		b.WriteString(label)
		for _, v := range s.Values {
			b.WriteString(theme.ChartCell.Width(chartCellWidth).Render(strconv.Itoa(v)))
		}
		b.WriteString(theme.ChartCell.Bold(true).Width(chartCellWidth + 2).Render(strconv.Itoa(s.Total())))
		b.WriteString("\n")
	}

	b.WriteString(theme.ChartLabel.Width(labelWidth).Render("Σ"))
	for _, p := range g.Points() {
		b.WriteString(theme.ChartHeader.Width(chartCellWidth).Render(strconv.Itoa(g.PointTotal(p))))
	}

	return b.String()
}

// ChartRanking renders the categories ordered by total, highest first, each
// with a bar scaled against the largest possible total.
func ChartRanking(g *grid.Grid, width int) string {
	if g == nil {
		return ""
	}

	cfg := g.Config()
	ceiling := cfg.Max * len(cfg.Points)

	colors := make(map[string]int, len(cfg.Categories))
	labelPad := 0
	for i, c := range cfg.Categories {
		colors[c] = i
		labelPad = max(labelPad, lipgloss.Width(c))
	}

	var lines []string
	for rank, c := range g.RankedCategories(true) {
		total := g.SeriesTotal(c)
		pct := 0.0
		if ceiling > 0 {
			pct = float64(total) / float64(ceiling)
		}
		bar := Bar{
			Label:    fmt.Sprintf("%d. %s", rank+1, c),
			Percent:  pct,
			Suffix:   strconv.Itoa(total),
			Width:    width,
			Fill:     theme.SeriesColor(colors[c]),
			LabelPad: labelPad + 3,
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}
