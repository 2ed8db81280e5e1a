package quiz

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/chartiz/internal/grid"
	"github.com/abhisek/chartiz/internal/question"
	"github.com/abhisek/chartiz/internal/router"
	"github.com/abhisek/chartiz/internal/screen"
	"github.com/abhisek/chartiz/internal/screens/summary"
	sess "github.com/abhisek/chartiz/internal/session"
	"github.com/abhisek/chartiz/internal/store"
	"github.com/abhisek/chartiz/internal/templates"
	"github.com/abhisek/chartiz/internal/ui/components"
	"github.com/abhisek/chartiz/internal/ui/layout"
)

// TemplateLoader returns the template set. It runs off the UI loop.
type TemplateLoader func() ([]question.Template, error)

// Deps holds what the quiz screen needs from the application.
type Deps struct {
	Grid      *grid.Grid
	Engine    *question.Engine
	Rand      *rand.Rand
	Events    store.EventRepo
	Templates TemplateLoader
}

// QuizScreen shows the chart, the current question and the answer input.
type QuizScreen struct {
	deps    Deps
	state   *sess.State
	input   components.TextInput
	loading bool
	notice  string
	ended   bool
	now     func() time.Time
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Leaver = (*QuizScreen)(nil)

// New creates a QuizScreen. Templates are loaded when the screen starts.
func New(deps Deps) *QuizScreen {
	return newWithClock(deps, time.Now)
}

func newWithClock(deps Deps, now func() time.Time) *QuizScreen {
	return &QuizScreen{
		deps:    deps,
		state:   sess.NewState(uuid.New().String(), now()),
		input:   components.NewTextInput("Type your answer...", 24),
		loading: true,
		now:     now,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(
		s.loadTemplates(),
		s.input.Init(),
		tickCmd(),
	)
}

func (s *QuizScreen) Title() string {
	return "Chart Quiz"
}

func (s *QuizScreen) Status() string {
	return "Score " + s.state.Score() + "   " + sess.FormatClock(s.state.Elapsed)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	first := layout.KeyHint{Key: "Enter", Description: "Submit"}
	if s.state.Phase == sess.PhaseFeedback {
		first = layout.KeyHint{Key: "Enter", Description: "Next"}
	}
	return []layout.KeyHint{
		first,
		{Key: "Ctrl+N", Description: "New"},
		{Key: "Ctrl+R", Description: "Randomize"},
		{Key: "Ctrl+A", Description: "Show answer"},
		{Key: "Esc", Description: "Finish"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		return s.handleTemplatesLoaded(msg)

	case timerTickMsg:
		s.state.Tick(s.now())
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// loadTemplates runs the template loader as a command.
func (s *QuizScreen) loadTemplates() tea.Cmd {
	load := s.deps.Templates
	return func() tea.Msg {
		if load == nil {
			return templatesLoadedMsg{}
		}
		ts, err := load()
		return templatesLoadedMsg{Templates: ts, Err: err}
	}
}

func (s *QuizScreen) handleTemplatesLoaded(msg templatesLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		log.Printf("template load failed: %v", msg.Err)
	}
	for _, t := range templates.Unsupported(msg.Templates) {
		log.Printf("unsupported template type %q", t)
	}
	s.deps.Engine.SetTemplates(msg.Templates)
	log.Printf("loaded %d templates", s.deps.Engine.TemplateCount())

	s.appendSessionEvent("start")
	s.nextQuestion()
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s.finish()
	case "ctrl+n":
		s.nextQuestion()
		return s, nil
	case "ctrl+r":
		s.deps.Grid.Randomize(s.deps.Rand)
		s.nextQuestion()
		return s, nil
	case "ctrl+a":
		if !s.state.Reveal() {
			s.notice = "No question to reveal."
		}
		return s, nil
	case "enter":
		if s.state.Phase == sess.PhaseFeedback {
			s.nextQuestion()
			return s, nil
		}
		s.submitAnswer()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// nextQuestion generates a question from the current grid. With no templates
// the previous display is left as it was.
func (s *QuizScreen) nextQuestion() {
	q, err := s.deps.Engine.Generate()
	if err != nil {
		if !errors.Is(err, question.ErrNoTemplates) {
			log.Printf("generate question: %v", err)
		}
		return
	}
	s.state.Begin(q, s.now())
	s.input.Reset()
	s.notice = ""
}

// submitAnswer checks the input once per question and records the attempt.
func (s *QuizScreen) submitAnswer() {
	input := s.input.Value()
	res, err := s.state.Submit(input, s.now())
	switch {
	case errors.Is(err, sess.ErrUnanswerable):
		s.notice = "This question can't be checked."
		return
	case err != nil:
		return
	}

	s.input.Submit(res.Correct)
	s.notice = ""

	q := s.state.Current
	if s.deps.Events == nil {
		return
	}
	err = s.deps.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     s.state.SessionID,
		Kind:          string(q.Kind),
		QuestionText:  q.Text,
		CorrectAnswer: res.Expected.String(),
		LearnerAnswer: input,
		Correct:       res.Correct,
		TimeMs:        int(res.AnswerTime.Milliseconds()),
	})
	if err != nil {
		log.Printf("record answer: %v", err)
	}
}

// Leave records the session end once, whether the quiz is finished with
// Esc or the app quits mid-session.
func (s *QuizScreen) Leave() {
	if s.ended {
		return
	}
	s.ended = true
	s.state.Tick(s.now())
	s.appendSessionEvent("end")
}

// finish records the session end and hands over to the summary screen.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	s.Leave()

	sum := sess.BuildSummary(s.state)
	next := summary.New(sum, s.deps.Events)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) appendSessionEvent(action string) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:       s.state.SessionID,
		Action:          action,
		QuestionsServed: s.state.TotalAttempts,
		CorrectAnswers:  s.state.TotalCorrect,
		DurationSecs:    int(s.state.Elapsed.Seconds()),
	})
	if err != nil {
		log.Printf("record session %s: %v", action, err)
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
