package quiz

import (
	"time"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

// EntryKind classifies transcript entries.
type EntryKind string

const (
	EntryQuestion EntryKind = "question"
	EntryAnswer   EntryKind = "answer"
	EntryLoading  EntryKind = "loading"
	EntryResult   EntryKind = "result"
	EntryNotice   EntryKind = "notice"
)

// Entry is one line of the questionnaire transcript.
type Entry struct {
	ID         string     `json:"id"`
	Kind       EntryKind  `json:"kind"`
	QuestionID string     `json:"questionId,omitempty"`
	Axis       breed.Axis `json:"axis,omitempty"`
	Text       string     `json:"text,omitempty"`
	Value      string     `json:"value,omitempty"`
	Options    []Option   `json:"options,omitempty"`
	Result     *Result    `json:"result,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
