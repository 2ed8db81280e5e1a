package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/chartiz/internal/answer"
	"github.com/abhisek/chartiz/internal/question"
)

var (
	// ErrNoQuestion is returned by Submit before any question was shown.
	ErrNoQuestion = errors.New("no current question")

	// ErrAlreadySubmitted is returned by Submit for a question that was
	// already answered.
	ErrAlreadySubmitted = errors.New("answer already submitted for this question")

	// ErrUnanswerable is returned by Submit when the current question has no
	// checkable answer.
	ErrUnanswerable = errors.New("current question has no supported answer")
)

// Phase represents what the quiz screen is showing.
type Phase int

const (
	PhaseWaiting  Phase = iota // No question yet (templates loading or empty)
	PhaseActive                // Question shown, awaiting an answer
	PhaseFeedback              // Answer submitted, feedback shown
)

// State tracks the runtime state of a quiz session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// StartTime is when the session began.
	StartTime time.Time

	// Elapsed is refreshed by Tick for the total-time display.
	Elapsed time.Duration

	// Phase is the current session phase.
	Phase Phase

	// Current is the question being displayed (nil before the first one).
	Current *question.Instance

	// QuestionStartTime is when Current was first displayed.
	QuestionStartTime time.Time

	// Submitted is true once Current has been answered.
	Submitted bool

	// Revealed is true if the learner asked to see the answer.
	Revealed bool

	// LastAnswer is the learner's input for the most recent submit.
	LastAnswer string

	// LastAnswerCorrect records whether the most recent submit was correct.
	LastAnswerCorrect bool

	// LastSubmitTime is the time of the most recent submit (zero if none).
	LastSubmitTime time.Time

	// LastDuration is the time between the two most recent submits.
	// Valid only when HasLastDuration is true.
	LastDuration    time.Duration
	HasLastDuration bool

	// TotalAttempts is the count of submitted answers.
	TotalAttempts int

	// TotalCorrect is the count of correct answers.
	TotalCorrect int

	// PerKind tracks per-kind results for the summary.
	PerKind map[question.Kind]*KindResult
}

// KindResult tracks answers for one question kind within a session.
type KindResult struct {
	Kind      question.Kind
	Attempted int
	Correct   int
}

// Result is the outcome of a single submit.
type Result struct {
	Correct  bool
	Expected question.Answer

	// AnswerTime is how long the question was displayed before the submit.
	AnswerTime time.Duration
}

// NewState creates a session state with no current question.
func NewState(sessionID string, now time.Time) *State {
	return &State{
		SessionID: sessionID,
		StartTime: now,
		Phase:     PhaseWaiting,
		PerKind:   make(map[question.Kind]*KindResult),
	}
}

// Begin makes q the current question and clears the submitted flag.
func (s *State) Begin(q *question.Instance, now time.Time) {
	s.Current = q
	s.QuestionStartTime = now
	s.Submitted = false
	s.Revealed = false
	s.LastAnswer = ""
	s.LastAnswerCorrect = false
	s.Phase = PhaseActive
}

// Submit checks input against the current question. Each question can be
// submitted once; later calls return ErrAlreadySubmitted and change nothing.
func (s *State) Submit(input string, now time.Time) (Result, error) {
	q := s.Current
	if q == nil {
		return Result{}, ErrNoQuestion
	}
	if s.Submitted {
		return Result{}, ErrAlreadySubmitted
	}
	if !q.Answerable() {
		return Result{}, ErrUnanswerable
	}

	correct := answer.IsCorrect(input, q.Answer)

	s.TotalAttempts++
	if correct {
		s.TotalCorrect++
	}

	kr := s.PerKind[q.Kind]
	if kr == nil {
		kr = &KindResult{Kind: q.Kind}
		s.PerKind[q.Kind] = kr
	}
	kr.Attempted++
	if correct {
		kr.Correct++
	}

	if !s.LastSubmitTime.IsZero() {
		s.LastDuration = now.Sub(s.LastSubmitTime)
		s.HasLastDuration = true
	}
	s.LastSubmitTime = now

	s.Submitted = true
	s.LastAnswer = input
	s.LastAnswerCorrect = correct
	s.Phase = PhaseFeedback

	return Result{
		Correct:    correct,
		Expected:   q.Answer,
		AnswerTime: now.Sub(s.QuestionStartTime),
	}, nil
}

// Reveal marks the current answer as shown. Returns false if there is no
// current question.
func (s *State) Reveal() bool {
	if s.Current == nil {
		return false
	}
	s.Revealed = true
	return true
}

// Tick refreshes Elapsed.
func (s *State) Tick(now time.Time) {
	s.Elapsed = now.Sub(s.StartTime)
}

// Score returns the "correct/total" display string.
func (s *State) Score() string {
	return fmt.Sprintf("%d/%d", s.TotalCorrect, s.TotalAttempts)
}
