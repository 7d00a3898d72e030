package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/metrics"
	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

var ErrSessionNotFound = errors.New("session not found")

// Config tunes new sessions.
type Config struct {
	Delay              time.Duration
	DefaultQuestionSet string
}

type session struct {
	machine *Machine
	hub     *hub
}

// Service keeps questionnaire sessions in memory, one Machine each.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session
	catalog  CatalogSource
	cfg      Config
	logger   *zap.Logger
}

// NewService bootstraps the in-memory questionnaire service.
func NewService(catalog CatalogSource, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: make(map[string]*session),
		catalog:  catalog,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateSession starts a questionnaire and posts its first question. An
// empty set name uses the configured default.
func (s *Service) CreateSession(_ context.Context, setName string) (quiz.Snapshot, error) {
	if setName == "" {
		setName = s.cfg.DefaultQuestionSet
	}
	set, err := quiz.QuestionSetByName(setName)
	if err != nil {
		return quiz.Snapshot{}, err
	}

	info := quiz.Session{
		ID:          uuid.NewString(),
		QuestionSet: set.Name,
		CreatedAt:   time.Now().UTC(),
	}
	h := newHub(s.logger)
	m, err := NewMachine(info, set, s.catalog,
		WithDelay(s.cfg.Delay),
		WithListener(h.publish),
		WithLogger(s.logger),
	)
	if err != nil {
		return quiz.Snapshot{}, err
	}

	s.mu.Lock()
	s.sessions[info.ID] = &session{machine: m, hub: h}
	s.mu.Unlock()

	m.Start()
	metrics.SessionsStarted.WithLabelValues(set.Name).Inc()
	metrics.SessionsActive.Inc()
	s.logger.Info("quiz session created", zap.String("sessionId", info.ID), zap.String("questionSet", set.Name))
	return m.Snapshot(), nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (quiz.Session, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return quiz.Session{}, err
	}
	return sess.machine.Snapshot().Session, nil
}

// Snapshot returns the current view of a session.
func (s *Service) Snapshot(_ context.Context, sessionID string) (quiz.Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	return sess.machine.Snapshot(), nil
}

// LoadTranscript returns the transcript for the provided session.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]quiz.Entry, error) {
	snap, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snap.Transcript, nil
}

// Answer forwards an answer and returns the resulting snapshot.
func (s *Service) Answer(ctx context.Context, sessionID, value, label string) (quiz.Snapshot, error) {
	return s.apply(sessionID, func(m *Machine) error { return m.Answer(ctx, value, label) })
}

// Retry re-runs final scoring for a session waiting on a retry.
func (s *Service) Retry(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.apply(sessionID, func(m *Machine) error { return m.Retry(ctx) })
}

// Revise changes one earlier answer and scores again.
func (s *Service) Revise(ctx context.Context, sessionID string, axis breed.Axis, value string) (quiz.Snapshot, error) {
	return s.apply(sessionID, func(m *Machine) error { return m.Revise(ctx, axis, value) })
}

// Restart sends a session back to its first question.
func (s *Service) Restart(_ context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.apply(sessionID, func(m *Machine) error { return m.Restart() })
}

// Subscribe streams the session's events until cancel is called or the
// session closes.
func (s *Service) Subscribe(_ context.Context, sessionID string) (<-chan quiz.Event, func(), error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := sess.hub.subscribe()
	return ch, cancel, nil
}

// CloseSession tears a session down and forgets it.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.machine.Close()
	metrics.SessionsClosed.Inc()
	metrics.SessionsActive.Dec()
	s.logger.Info("quiz session closed", zap.String("sessionId", sessionID))
	return nil
}

// ResumeDeferred completes sessions whose final scoring waited for the
// catalog. It is meant to run once the catalog becomes available.
func (s *Service) ResumeDeferred(ctx context.Context) int {
	s.mu.RLock()
	waiting := make([]*Machine, 0)
	for _, sess := range s.sessions {
		if sess.machine.Deferred() {
			waiting = append(waiting, sess.machine)
		}
	}
	s.mu.RUnlock()

	var wg sync.WaitGroup
	for _, m := range waiting {
		wg.Add(1)
		go func(m *Machine) {
			defer wg.Done()
			if err := m.Retry(ctx); err != nil {
				s.logger.Warn("resume deferred session failed", zap.Error(err))
			}
		}(m)
	}
	wg.Wait()
	return len(waiting)
}

// Shutdown closes every session.
func (s *Service) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.machine.Close()
		metrics.SessionsClosed.Inc()
		metrics.SessionsActive.Dec()
	}
}

func (s *Service) apply(sessionID string, fn func(*Machine) error) (quiz.Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if err := fn(sess.machine); err != nil {
		return sess.machine.Snapshot(), err
	}
	return sess.machine.Snapshot(), nil
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
