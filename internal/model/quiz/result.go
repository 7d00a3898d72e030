package quiz

// Result is the presentable match for a set of answers. Tags are sorted.
type Result struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	FitScore int      `json:"fitScore"`
	Why      string   `json:"why"`
	Tags     []string `json:"tags"`
	Final    bool     `json:"final"`
}

// EventKind names a machine notification.
type EventKind string

const (
	EventEntryAdded   EventKind = "entry_added"
	EventEntryRemoved EventKind = "entry_removed"
	EventIntermediate EventKind = "intermediate"
	EventFinal        EventKind = "final"
	EventReady        EventKind = "ready"
	EventNoMatch      EventKind = "no_match"
	EventReset        EventKind = "reset"
	EventClosed       EventKind = "closed"
)

// Event is delivered to listeners in the order things happen.
type Event struct {
	Kind      EventKind `json:"kind"`
	SessionID string    `json:"sessionId"`
	Entry     *Entry    `json:"entry,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Listener receives machine events.
type Listener func(Event)
