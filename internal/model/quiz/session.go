package quiz

import "time"

// Session identifies one run through a questionnaire.
type Session struct {
	ID          string    `json:"id"`
	QuestionSet string    `json:"questionSet"`
	CreatedAt   time.Time `json:"createdAt"`
}

// State is the questionnaire machine state.
type State string

const (
	StateAwaitingAnswer State = "awaiting_answer"
	StateScoring        State = "scoring"
	StateAwaitingRetry  State = "awaiting_retry"
	StateComplete       State = "complete"
	StateClosed         State = "closed"
)

// Snapshot is a read-only view of a session for clients.
type Snapshot struct {
	Session       Session   `json:"session"`
	State         State     `json:"state"`
	QuestionIndex int       `json:"questionIndex"`
	Question      *Question `json:"question,omitempty"`
	Answers       Answers   `json:"answers"`
	Transcript    []Entry   `json:"transcript"`
	Result        *Result   `json:"result,omitempty"`
	Ready         bool      `json:"ready"`
}
