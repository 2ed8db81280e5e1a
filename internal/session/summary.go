package session

import (
	"fmt"
	"time"

	"github.com/abhisek/chartiz/internal/question"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	KindResults    []KindResult
}

// BuildSummary creates a SessionSummary from the current session state.
// Kind results follow the declaration order of question.AllKinds, with
// unsupported kinds last.
func BuildSummary(state *State) *SessionSummary {
	var results []KindResult
	order := append(append([]question.Kind{}, question.AllKinds...), question.KindUnsupported)
	for _, k := range order {
		if kr, ok := state.PerKind[k]; ok && kr.Attempted > 0 {
			results = append(results, *kr)
		}
	}

	var accuracy float64
	if state.TotalAttempts > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalAttempts)
	}

	return &SessionSummary{
		SessionID:      state.SessionID,
		Duration:       state.Elapsed,
		TotalQuestions: state.TotalAttempts,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		KindResults:    results,
	}
}

// FormatClock renders d as zero-padded "MM:SS". Minutes are not capped.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
