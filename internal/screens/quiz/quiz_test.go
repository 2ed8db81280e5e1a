package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chartiz/internal/grid"
	"github.com/abhisek/chartiz/internal/question"
	"github.com/abhisek/chartiz/internal/router"
	"github.com/abhisek/chartiz/internal/screen"
	sess "github.com/abhisek/chartiz/internal/session"
	"github.com/abhisek/chartiz/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) QueryAnswerEvents(context.Context, string, store.QueryOpts) ([]store.AnswerEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) AccuracyByKind(context.Context, string) ([]store.KindAccuracy, error) {
	return nil, nil
}

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// sumTemplate over a two-category, one-point grid always sums A and B.
var sumTemplate = question.Template{
	Type:      "sum",
	Template:  "What is {letterA} plus {letterB} at {number}?",
	Variables: []string{"letterA", "letterB", "number"},
}

type fixture struct {
	screen *QuizScreen
	events *mockEventRepo
	grid   *grid.Grid
	clock  *fakeClock
}

func newFixture(t *testing.T, ts []question.Template, loadErr error) *fixture {
	t.Helper()
	g, err := grid.New(grid.Config{
		Categories: []string{"A", "B"},
		Points:     []string{"1"},
		Step:       100,
		Max:        1000,
	})
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	_ = g.SetValues("A", []int{300})
	_ = g.SetValues("B", []int{100})

	rng := rand.New(rand.NewPCG(1, 2))
	events := &mockEventRepo{}
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}

	s := newWithClock(Deps{
		Grid:   g,
		Engine: question.NewEngine(g, rng, question.DefaultConfig()),
		Rand:   rng,
		Events: events,
		Templates: func() ([]question.Template, error) {
			return ts, loadErr
		},
	}, clock.now)

	return &fixture{screen: s, events: events, grid: g, clock: clock}
}

// start delivers the template load result as the program would.
func (f *fixture) start(t *testing.T) {
	t.Helper()
	msg := f.screen.loadTemplates()()
	f.send(msg)
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	var scr screen.Screen = f.screen
	scr, cmd := scr.Update(msg)
	f.screen = scr.(*QuizScreen)
	return cmd
}

func TestQuizScreen_Title(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	if f.screen.Title() != "Chart Quiz" {
		t.Errorf("Title = %q, want %q", f.screen.Title(), "Chart Quiz")
	}
}

func TestQuizScreen_LoadingThenQuestion(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)

	if !strings.Contains(f.screen.View(120, 30), "Loading questions") {
		t.Error("expected loading message before templates arrive")
	}

	f.start(t)

	if f.screen.state.Phase != sess.PhaseActive {
		t.Fatalf("phase = %v, want active", f.screen.state.Phase)
	}
	if !strings.Contains(f.screen.View(120, 30), " at 1?") {
		t.Error("expected question text in view")
	}
	if len(f.events.sessionEvents) != 1 || f.events.sessionEvents[0].Action != "start" {
		t.Errorf("session events = %+v, want one start", f.events.sessionEvents)
	}
}

func TestQuizScreen_NoTemplatesIsNeutral(t *testing.T) {
	f := newFixture(t, nil, errors.New("missing file"))
	f.start(t)

	if f.screen.state.Current != nil {
		t.Error("expected no question without templates")
	}
	if f.screen.state.Phase != sess.PhaseWaiting {
		t.Errorf("phase = %v, want waiting", f.screen.state.Phase)
	}
	if !strings.Contains(f.screen.View(120, 30), "No questions available") {
		t.Error("expected neutral message")
	}

	// New question and submit are harmless.
	f.send(ctrlKey('n'))
	f.send(specialKey(tea.KeyEnter))
	if f.screen.state.TotalAttempts != 0 {
		t.Errorf("attempts = %d, want 0", f.screen.state.TotalAttempts)
	}
}

func TestQuizScreen_SubmitOnce(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	f.screen.input.Model.SetValue("400")
	f.clock.t = f.clock.t.Add(4 * time.Second)
	f.send(specialKey(tea.KeyEnter))

	st := f.screen.state
	if !st.Submitted || !st.LastAnswerCorrect {
		t.Fatalf("submitted=%v correct=%v, want both true", st.Submitted, st.LastAnswerCorrect)
	}
	if st.Score() != "1/1" {
		t.Errorf("score = %q, want 1/1", st.Score())
	}
	if len(f.events.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(f.events.answerEvents))
	}
	ev := f.events.answerEvents[0]
	if ev.Kind != "sum" || ev.CorrectAnswer != "400" || ev.TimeMs != 4000 {
		t.Errorf("answer event = %+v", ev)
	}
	if !strings.Contains(f.screen.View(120, 30), "Correct!") {
		t.Error("expected correct feedback")
	}

	// Typing is locked and another submit does not count.
	f.send(keyPress('9'))
	f.screen.submitAnswer()
	if st.TotalAttempts != 1 || len(f.events.answerEvents) != 1 {
		t.Errorf("second submit counted: attempts=%d events=%d", st.TotalAttempts, len(f.events.answerEvents))
	}
}

func TestQuizScreen_WrongAnswerShowsExpected(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	f.screen.input.Model.SetValue("12")
	f.send(specialKey(tea.KeyEnter))

	view := f.screen.View(120, 30)
	if !strings.Contains(view, "Not quite") || !strings.Contains(view, "Correct answer: 400") {
		t.Errorf("expected wrong-answer feedback, got:\n%s", view)
	}
	if f.screen.state.Score() != "0/1" {
		t.Errorf("score = %q, want 0/1", f.screen.state.Score())
	}
}

func TestQuizScreen_EnterAfterFeedbackAdvances(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	f.send(specialKey(tea.KeyEnter))
	if f.screen.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", f.screen.state.Phase)
	}
	f.send(specialKey(tea.KeyEnter))
	if f.screen.state.Phase != sess.PhaseActive || f.screen.state.Submitted {
		t.Error("expected a fresh question after Enter in feedback")
	}
	if f.screen.input.Value() != "" {
		t.Errorf("input = %q, want cleared", f.screen.input.Value())
	}
}

func TestQuizScreen_Reveal(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	f.send(ctrlKey('a'))

	if !f.screen.state.Revealed {
		t.Fatal("expected answer revealed")
	}
	if f.screen.state.TotalAttempts != 0 {
		t.Error("reveal must not count as an attempt")
	}
	if !strings.Contains(f.screen.View(120, 30), "Answer: 400") {
		t.Error("expected revealed answer in view")
	}
}

func TestQuizScreen_RandomizeRegeneratesQuestion(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	f.send(specialKey(tea.KeyEnter))
	first := f.screen.state.Current

	f.send(ctrlKey('r'))

	if f.screen.state.Current == first {
		t.Error("expected a new question after randomize")
	}
	if f.screen.state.Submitted {
		t.Error("expected submitted flag reset by the new question")
	}
	want := f.grid.Value("A", "1") + f.grid.Value("B", "1")
	if got := f.screen.state.Current.Answer.Number; got != want {
		t.Errorf("answer = %d, want %d from the new grid", got, want)
	}
}

func TestQuizScreen_UnsupportedTemplate(t *testing.T) {
	f := newFixture(t, []question.Template{{Type: "median", Template: "Median?"}}, nil)
	f.start(t)

	f.send(specialKey(tea.KeyEnter))

	if f.screen.state.TotalAttempts != 0 {
		t.Error("unsupported question must not count")
	}
	if !strings.Contains(f.screen.View(120, 30), "can't be checked") {
		t.Error("expected notice for unsupported question")
	}
}

func TestQuizScreen_TimerTick(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.clock.t = f.clock.t.Add(75 * time.Second)

	cmd := f.send(timerTickMsg(f.clock.t))
	if cmd == nil {
		t.Error("expected the tick to be rescheduled")
	}
	if !strings.Contains(f.screen.Status(), "01:15") {
		t.Errorf("status = %q, want elapsed 01:15", f.screen.Status())
	}
}

func TestQuizScreen_EscFinishes(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)
	f.screen.input.Model.SetValue("400")
	f.send(specialKey(tea.KeyEnter))

	cmd := f.send(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Session Summary" {
		t.Errorf("next screen = %q, want summary", msg.Screen.Title())
	}

	last := f.events.sessionEvents[len(f.events.sessionEvents)-1]
	if last.Action != "end" || last.QuestionsServed != 1 || last.CorrectAnswers != 1 {
		t.Errorf("end event = %+v", last)
	}
}

func TestQuizScreen_SessionEndRecordedOnce(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)

	cmd := f.send(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	// The router calls Leave again when the summary replaces the quiz.
	r := router.New(f.screen)
	r.Update(cmd())
	f.screen.Leave()

	ends := 0
	for _, e := range f.events.sessionEvents {
		if e.Action == "end" {
			ends++
		}
	}
	if ends != 1 {
		t.Errorf("recorded %d end events, want 1", ends)
	}
}

func TestQuizScreen_LeaveMidSession(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)
	f.screen.input.Model.SetValue("400")
	f.send(specialKey(tea.KeyEnter))
	f.clock.t = f.clock.t.Add(42 * time.Second)

	f.screen.Leave()

	last := f.events.sessionEvents[len(f.events.sessionEvents)-1]
	if last.Action != "end" || last.QuestionsServed != 1 || last.DurationSecs != 42 {
		t.Errorf("end event = %+v", last)
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	f := newFixture(t, []question.Template{sumTemplate}, nil)
	f.start(t)
	if hints := f.screen.KeyHints(); len(hints) == 0 || hints[0].Description != "Submit" {
		t.Errorf("hints = %+v", hints)
	}
	f.send(specialKey(tea.KeyEnter))
	if hints := f.screen.KeyHints(); hints[0].Description != "Next" {
		t.Errorf("feedback hints = %+v", hints)
	}
}
