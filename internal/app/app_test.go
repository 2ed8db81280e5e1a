package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chartiz/internal/screen"
	"github.com/abhisek/chartiz/internal/store"
)

func TestNewRand_SeedIsReproducible(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := range 10 {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestNewBoard_Randomized(t *testing.T) {
	board, err := NewBoard(NewRand(7))
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	if board.Engine.TemplateCount() != 0 {
		t.Error("expected a board without templates")
	}
	for _, s := range board.Grid.Series() {
		for _, v := range s.Values {
			if v%100 != 0 || v < 0 || v > 1000 {
				t.Errorf("value %d outside the lattice", v)
			}
		}
	}
}

func TestAppModel_StartsAtHome(t *testing.T) {
	m := newAppModel(Options{Rand: NewRand(1)})
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Rand: NewRand(1)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_StartQuizThenFinish(t *testing.T) {
	var model tea.Model = newAppModel(Options{Rand: NewRand(1)})

	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	_, cmd := model.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command from home menu")
	}
	model, _ = model.Update(cmd())

	m := model.(AppModel)
	if m.router.Active().Title() != "Chart Quiz" {
		t.Fatalf("active = %q, want quiz", m.router.Active().Title())
	}

	sp, ok := m.router.Active().(screen.StatusProvider)
	if !ok || !strings.Contains(sp.Status(), "Score 0/0") {
		t.Error("expected the quiz to report its score for the header")
	}

	_, cmd = model.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	model, _ = model.Update(cmd())
	m = model.(AppModel)
	if m.router.Active().Title() != "Session Summary" || m.router.Depth() != 2 {
		t.Errorf("active = %q depth %d, want summary at depth 2", m.router.Active().Title(), m.router.Depth())
	}
}

func TestAppModel_CtrlCMidQuizRecordsEnd(t *testing.T) {
	st, err := store.Open(store.MemoryDSN())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	var model tea.Model = newAppModel(Options{Rand: NewRand(1), EventRepo: st.EventRepo()})
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	_, cmd := model.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command from Home")
	}
	model, _ = model.Update(cmd())

	_, cmd = model.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}

	var ends int
	if err := st.DB().QueryRow("SELECT COUNT(*) FROM session_events WHERE action = 'end'").Scan(&ends); err != nil {
		t.Fatalf("count end events: %v", err)
	}
	if ends != 1 {
		t.Errorf("end events = %d, want 1", ends)
	}
}
