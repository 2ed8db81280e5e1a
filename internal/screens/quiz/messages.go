package quiz

import (
	"time"

	"github.com/abhisek/chartiz/internal/question"
)

// templatesLoadedMsg is sent when the one-time template load finishes.
type templatesLoadedMsg struct {
	Templates []question.Template
	Err       error
}

// timerTickMsg is sent every second to refresh the clocks.
type timerTickMsg time.Time
