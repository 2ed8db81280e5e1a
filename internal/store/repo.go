package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData captures a single submitted answer.
type AnswerEventData struct {
	SessionID     string
	Kind          string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int
}

// AnswerEvent is a stored answer with its ordering metadata.
type AnswerEvent struct {
	AnswerEventData
	ID        int64
	Sequence  int64
	Timestamp time.Time
}

// KindAccuracy aggregates answers of one question kind.
type KindAccuracy struct {
	Kind      string
	Attempted int
	Correct   int
}

// Accuracy returns Correct / Attempted, or 0 when nothing was attempted.
func (k KindAccuracy) Accuracy() float64 {
	if k.Attempted == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Attempted)
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryAnswerEvents returns a session's answers, newest first.
	QueryAnswerEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]AnswerEvent, error)

	// AccuracyByKind aggregates a session's answers per question kind,
	// ordered by kind.
	AccuracyByKind(ctx context.Context, sessionID string) ([]KindAccuracy, error)
}
