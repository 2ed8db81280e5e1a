package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chartiz/internal/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(grid.DefaultConfig())
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	_ = g.SetValues("A", []int{300, 500, 0, 100})
	_ = g.SetValues("C", []int{400, 0, 900, 100})
	return g
}

func TestChartTable_ShowsValuesAndTotals(t *testing.T) {
	view := ChartTable(testGrid(t))
	for _, want := range []string{"Total", "900", "1400", "900"} {
		if !strings.Contains(view, want) {
			t.Errorf("chart table missing %q:\n%s", want, view)
		}
	}
	// Header + 5 categories + point totals.
	if lines := strings.Count(view, "\n") + 1; lines != 7 {
		t.Errorf("chart table has %d lines, want 7", lines)
	}
}

func TestChartTable_NilGrid(t *testing.T) {
	if ChartTable(nil) != "" {
		t.Error("expected empty table for nil grid")
	}
}

func TestChartRanking_Order(t *testing.T) {
	view := ChartRanking(testGrid(t), 40)
	lines := strings.Split(view, "\n")
	if len(lines) != 5 {
		t.Fatalf("ranking has %d lines, want 5", len(lines))
	}
	if !strings.Contains(lines[0], "1. C") {
		t.Errorf("first ranked = %q, want C", lines[0])
	}
	if !strings.Contains(lines[1], "2. A") {
		t.Errorf("second ranked = %q, want A", lines[1])
	}
}

func TestBar_DefaultSuffix(t *testing.T) {
	view := NewBar("sum", 0.5, 30).View()
	if !strings.Contains(view, "50%") {
		t.Errorf("bar missing percent suffix: %q", view)
	}
}

func TestTextInput_SubmitLocksTyping(t *testing.T) {
	in := NewTextInput("answer", 20)
	in.Model.SetValue("12")
	in.Submit(true)

	in, _ = in.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if in.Value() != "12" {
		t.Errorf("value = %q after submit, want %q", in.Value(), "12")
	}
	if !in.Submitted() {
		t.Error("expected submitted")
	}

	in.Reset()
	if in.Value() != "" || in.Submitted() {
		t.Errorf("reset left value=%q submitted=%v", in.Value(), in.Submitted())
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "On", Action: func() tea.Cmd { called = true; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item")
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected action on enter")
	}
}
