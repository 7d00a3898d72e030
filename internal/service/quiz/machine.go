package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/matching"
	"github.com/zhouzirui/pawmatch/backend/internal/metrics"
	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

// DefaultDelay paces the conversation between an answer and what follows.
const DefaultDelay = 500 * time.Millisecond

// NoMatchMessage is shown when no breed fits the answers.
const NoMatchMessage = "No match found, try adjusting your preferences."

var (
	ErrSessionClosed     = errors.New("session closed")
	ErrAnswerPending     = errors.New("an answer is already being processed")
	ErrInvalidOption     = errors.New("invalid option")
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	ErrNotAwaitingRetry  = errors.New("session is not awaiting a retry")
	ErrNotAnswered       = errors.New("question has not been answered yet")
)

// CatalogSource reports the breed catalog once it has been loaded.
type CatalogSource interface {
	Catalog() (breed.Store, bool)
}

// MachineOption customises a Machine.
type MachineOption func(*Machine)

// WithDelay sets the pacing delay. Zero disables it.
func WithDelay(d time.Duration) MachineOption {
	return func(m *Machine) { m.delay = d }
}

// WithListener registers the event callback. It runs while the machine is
// locked and must not call back into the Machine.
func WithListener(l quiz.Listener) MachineOption {
	return func(m *Machine) { m.listener = l }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) MachineOption {
	return func(m *Machine) { m.logger = l }
}

// WithClock overrides the transcript timestamp source.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// Machine drives one questionnaire session: it records answers, paces the
// transcript, and emits the checkpoint and final results.
type Machine struct {
	mu       sync.Mutex
	session  quiz.Session
	set      quiz.QuestionSet
	catalog  CatalogSource
	delay    time.Duration
	listener quiz.Listener
	logger   *zap.Logger
	now      func() time.Time

	state      quiz.State
	index      int
	answers    quiz.Answers
	transcript []quiz.Entry
	result     *quiz.Result
	ready      bool
	checkpoint bool // consumed once per session
	deferred   bool // completion skipped while the catalog was missing
	pending    bool
	done       chan struct{}
}

// NewMachine validates the question set and returns a machine waiting for
// its first answer. Call Start to post the first question.
func NewMachine(session quiz.Session, set quiz.QuestionSet, catalog CatalogSource, opts ...MachineOption) (*Machine, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	m := &Machine{
		session: session,
		set:     set,
		catalog: catalog,
		delay:   DefaultDelay,
		logger:  zap.NewNop(),
		now:     time.Now,
		state:   quiz.StateAwaitingAnswer,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("sessionId", session.ID))
	return m, nil
}

// Start posts the first question. It is a no-op once the transcript has
// entries.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == quiz.StateClosed || len(m.transcript) > 0 {
		return
	}
	m.ask()
}

// Answer records value for the current question, waits the pacing delay and
// then emits a checkpoint result, a final result, or the next question.
// Cancelling ctx during the delay withdraws the answer.
func (m *Machine) Answer(ctx context.Context, value, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIdle(); err != nil {
		return err
	}
	if m.state != quiz.StateAwaitingAnswer {
		return ErrNotAwaitingAnswer
	}

	q := m.set.Questions[m.index]
	opt, ok := q.Option(value)
	if !ok {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, value, q.ID)
	}
	if label == "" {
		label = opt.Label
	}

	before := m.answers
	if err := m.answers.Set(q.Axis, value); err != nil {
		return err
	}
	answer := m.add(quiz.Entry{Kind: quiz.EntryAnswer, QuestionID: q.ID, Axis: q.Axis, Text: label, Value: value})
	metrics.AnswersRecorded.WithLabelValues(string(q.Axis)).Inc()
	m.logger.Debug("answer recorded", zap.String("axis", string(q.Axis)), zap.String("value", value))

	answered := m.index
	if err := m.pace(ctx); err != nil {
		if !errors.Is(err, ErrSessionClosed) {
			m.answers = before
			m.remove(answer.ID)
		}
		return err
	}

	if answered == quiz.CheckpointIndex && !m.checkpoint {
		m.checkpoint = true
		m.emitCheckpoint()
	}

	if m.answers.IsComplete() {
		m.finish()
		return nil
	}

	m.index = answered + 1
	if m.index >= len(m.set.Questions) {
		// Every question has been asked but an axis is still missing.
		m.index = len(m.set.Questions) - 1
		m.state = quiz.StateAwaitingRetry
		return nil
	}
	m.ask()
	return nil
}

// Retry re-runs the completion step for a session whose answers are all in
// but which has no final result yet.
func (m *Machine) Retry(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIdle(); err != nil {
		return err
	}
	if m.state != quiz.StateAwaitingRetry {
		return ErrNotAwaitingRetry
	}
	if err := m.pace(ctx); err != nil {
		return err
	}
	m.finish()
	return nil
}

// Revise changes an earlier answer after a no-match and scores again.
func (m *Machine) Revise(ctx context.Context, axis breed.Axis, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIdle(); err != nil {
		return err
	}
	if m.state != quiz.StateAwaitingRetry {
		return ErrNotAwaitingRetry
	}
	if !m.answers.IsSet(axis) {
		return fmt.Errorf("%w: %s", ErrNotAnswered, axis)
	}

	q, ok := m.questionFor(axis)
	if !ok {
		return fmt.Errorf("%w: unknown axis %s", ErrInvalidOption, axis)
	}
	opt, ok := q.Option(value)
	if !ok {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, value, q.ID)
	}

	before := m.answers
	if err := m.answers.Set(axis, value); err != nil {
		return err
	}
	answer := m.add(quiz.Entry{Kind: quiz.EntryAnswer, QuestionID: q.ID, Axis: axis, Text: opt.Label, Value: value})
	metrics.AnswersRecorded.WithLabelValues(string(axis)).Inc()

	if err := m.pace(ctx); err != nil {
		if !errors.Is(err, ErrSessionClosed) {
			m.answers = before
			m.remove(answer.ID)
		}
		return err
	}
	m.finish()
	return nil
}

// Restart clears answers and the transcript and asks the first question
// again. The checkpoint stays consumed.
func (m *Machine) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIdle(); err != nil {
		return err
	}

	m.answers = quiz.Answers{}
	m.transcript = nil
	m.result = nil
	m.ready = false
	m.deferred = false
	m.index = 0
	m.state = quiz.StateAwaitingAnswer
	m.emit(quiz.Event{Kind: quiz.EventReset})
	m.ask()
	return nil
}

// Close tears the session down. A pending delay resolves with
// ErrSessionClosed and nothing else is emitted afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == quiz.StateClosed {
		return
	}
	close(m.done)
	m.emit(quiz.Event{Kind: quiz.EventClosed})
	m.state = quiz.StateClosed
}

// Deferred reports whether completion is waiting on the catalog.
func (m *Machine) Deferred() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deferred && m.state == quiz.StateAwaitingRetry
}

// Snapshot returns a copy of the machine's current view.
func (m *Machine) Snapshot() quiz.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := quiz.Snapshot{
		Session:       m.session,
		State:         m.state,
		QuestionIndex: m.index,
		Answers:       m.answers,
		Transcript:    append([]quiz.Entry{}, m.transcript...),
		Ready:         m.ready,
	}
	if m.state == quiz.StateAwaitingAnswer || m.state == quiz.StateScoring {
		q := m.set.Questions[m.index]
		snap.Question = &q
	}
	if m.result != nil {
		r := *m.result
		snap.Result = &r
	}
	return snap
}

func (m *Machine) checkIdle() error {
	if m.state == quiz.StateClosed {
		return ErrSessionClosed
	}
	if m.pending {
		return ErrAnswerPending
	}
	return nil
}

// pace shows a loading entry and waits the delay with the lock released.
// It is entered and left with m.mu held.
func (m *Machine) pace(ctx context.Context) error {
	loading := m.add(quiz.Entry{Kind: quiz.EntryLoading})
	prev := m.state
	m.state = quiz.StateScoring
	m.pending = true

	m.mu.Unlock()
	err := m.wait(ctx)
	m.mu.Lock()

	m.pending = false
	if m.state == quiz.StateClosed {
		return ErrSessionClosed
	}
	m.remove(loading.ID)
	if err != nil {
		m.state = prev
		return err
	}
	return nil
}

func (m *Machine) wait(ctx context.Context) error {
	if m.delay <= 0 {
		select {
		case <-m.done:
			return ErrSessionClosed
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-m.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Machine) emitCheckpoint() {
	store, ok := m.catalog.Catalog()
	if !ok {
		m.logger.Info("catalog not loaded, skipping checkpoint result")
		return
	}

	result, err := m.match(store)
	switch {
	case errors.Is(err, matching.ErrNoCandidates):
		// The user keeps answering; the notice only flags the dead end early.
		metrics.NoMatch.Inc()
		m.logger.Info("no checkpoint match", zap.Any("answers", m.answers))
		m.add(quiz.Entry{Kind: quiz.EntryNotice, Text: NoMatchMessage})
		m.emit(quiz.Event{Kind: quiz.EventNoMatch, Message: NoMatchMessage})
		return
	case err != nil:
		m.logger.Error("checkpoint scoring failed", zap.Error(err))
		return
	}
	m.result = &result
	m.add(quiz.Entry{Kind: quiz.EntryResult, Result: &result})
	m.emit(quiz.Event{Kind: quiz.EventIntermediate, Result: &result})
	metrics.ResultsEmitted.WithLabelValues("intermediate").Inc()
}

func (m *Machine) finish() {
	m.state = quiz.StateAwaitingRetry

	store, ok := m.catalog.Catalog()
	if !ok {
		m.deferred = true
		m.logger.Info("catalog not loaded, deferring final result")
		return
	}
	m.deferred = false

	result, err := m.match(store)
	switch {
	case errors.Is(err, matching.ErrNoCandidates):
		metrics.NoMatch.Inc()
		m.logger.Info("no breed matched", zap.Any("answers", m.answers))
		m.add(quiz.Entry{Kind: quiz.EntryNotice, Text: NoMatchMessage})
		m.emit(quiz.Event{Kind: quiz.EventNoMatch, Message: NoMatchMessage})
		return
	case err != nil:
		m.logger.Error("scoring failed", zap.Error(err))
		return
	}

	result.Final = true
	m.result = &result
	m.ready = true
	m.state = quiz.StateComplete
	m.add(quiz.Entry{Kind: quiz.EntryResult, Result: &result})
	m.emit(quiz.Event{Kind: quiz.EventFinal, Result: &result})
	m.emit(quiz.Event{Kind: quiz.EventReady, Result: &result})
	metrics.ResultsEmitted.WithLabelValues("final").Inc()
	m.logger.Info("final result", zap.String("breed", result.Key), zap.Int("fitScore", result.FitScore))
}

func (m *Machine) match(store breed.Store) (quiz.Result, error) {
	start := time.Now()
	defer func() { metrics.ScoringDuration.Observe(time.Since(start).Seconds()) }()
	return matching.Match(m.answers, store)
}

func (m *Machine) ask() {
	q := m.set.Questions[m.index]
	m.state = quiz.StateAwaitingAnswer
	m.add(quiz.Entry{
		Kind:       quiz.EntryQuestion,
		QuestionID: q.ID,
		Axis:       q.Axis,
		Text:       q.Prompt,
		Options:    append([]quiz.Option(nil), q.Options...),
	})
}

func (m *Machine) questionFor(axis breed.Axis) (quiz.Question, bool) {
	for _, q := range m.set.Questions {
		if q.Axis == axis {
			return q, true
		}
	}
	return quiz.Question{}, false
}

func (m *Machine) add(entry quiz.Entry) quiz.Entry {
	entry.ID = uuid.NewString()
	entry.CreatedAt = m.now().UTC()
	m.transcript = append(m.transcript, entry)
	e := entry
	m.emit(quiz.Event{Kind: quiz.EventEntryAdded, Entry: &e})
	return entry
}

func (m *Machine) remove(id string) {
	for i, entry := range m.transcript {
		if entry.ID == id {
			m.transcript = append(m.transcript[:i], m.transcript[i+1:]...)
			e := entry
			m.emit(quiz.Event{Kind: quiz.EventEntryRemoved, Entry: &e})
			return
		}
	}
}

func (m *Machine) emit(event quiz.Event) {
	if m.listener == nil || m.state == quiz.StateClosed {
		return
	}
	event.SessionID = m.session.ID
	m.listener(event)
}
