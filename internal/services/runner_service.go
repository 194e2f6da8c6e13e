package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/export"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/session"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type RunnerConfig struct {
	TickInterval time.Duration
	ResultTTL    time.Duration
	// IdleTimeout evicts sessions nobody touched for that long; 0 keeps them
	// until Close. Completed results stay readable from the cache.
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	// Now overrides the session clock; nil means time.Now.
	Now func() time.Time
}

type entry struct {
	sess     *session.Session
	lastSeen atomic.Int64 // unix nanoseconds
}

type runnerService struct {
	definitions DefinitionSource
	publisher   events.EventPublisher
	cache       cache.CacheService
	validator   *validator.Validator
	logger      *slog.Logger
	ops         *ServiceLogger
	config      RunnerConfig

	mu       sync.RWMutex
	sessions map[string]*entry

	stopSweep context.CancelFunc
	sweepers  sync.WaitGroup
}

func NewRunnerService(
	definitions DefinitionSource,
	publisher events.EventPublisher,
	resultCache cache.CacheService,
	v *validator.Validator,
	logger *slog.Logger,
	config RunnerConfig,
) RunnerService {
	if resultCache == nil {
		resultCache = cache.NewNoopCache()
	}
	s := &runnerService{
		definitions: definitions,
		publisher:   publisher,
		cache:       resultCache,
		validator:   v,
		logger:      logger,
		ops:         NewServiceLogger(logger, "runner"),
		config:      config,
		sessions:    make(map[string]*entry),
		stopSweep:   func() {},
	}

	if config.IdleTimeout > 0 && config.SweepInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopSweep = cancel
		s.sweepers.Add(1)
		go s.sweepLoop(ctx)
	}
	return s
}

func (s *runnerService) now() time.Time {
	if s.config.Now != nil {
		return s.config.Now()
	}
	return time.Now()
}

func resultKey(sessionID string) string { return fmt.Sprintf("session:%s:result", sessionID) }
func exportKey(sessionID string) string { return fmt.Sprintf("session:%s:export", sessionID) }

// ===== LIFECYCLE =====

func (s *runnerService) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.State, error) {
	s.logger.Info("Starting session creation", "assessment_key", req.AssessmentKey)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	def, err := s.definitions.Get(ctx, req.AssessmentKey)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	id := uuid.NewString()
	opts := []session.Option{session.WithID(id)}
	if s.config.TickInterval > 0 {
		opts = append(opts, session.WithTickInterval(s.config.TickInterval))
	}
	if s.config.Now != nil {
		opts = append(opts, session.WithClock(s.config.Now))
	}

	sess, err := session.New(def, opts...)
	if err != nil {
		return nil, err
	}

	e := &entry{sess: sess}
	e.lastSeen.Store(s.now().UnixNano())

	s.mu.Lock()
	s.sessions[id] = e
	s.mu.Unlock()

	state := sess.Snapshot()
	publish(ctx, s.publisher, s.logger, events.NewSessionLifecycleEvent(events.EventSessionCreated, state))

	s.logger.Info("Session created successfully",
		"session_id", id,
		"assessment_key", def.Key,
		"kind", def.Kind,
		"status", state.Status)

	return &state, nil
}

// lookup resolves a live session and marks it as recently used.
func (s *runnerService) lookup(sessionID string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen.Store(s.now().UnixNano())
	return e.sess, nil
}

func (s *runnerService) Get(ctx context.Context, sessionID string) (*models.State, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Snapshot()
	return &state, nil
}

func (s *runnerService) Begin(ctx context.Context, sessionID string) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "begin")
	defer func() { op.LogResult(sessionID, "session", err) }()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Begin() {
		return nil, ErrTransitionNotAllowed
	}

	snap := sess.Snapshot()
	publish(ctx, s.publisher, s.logger, events.NewSessionLifecycleEvent(events.EventSessionStarted, snap))
	return &snap, nil
}

// ===== ANSWERS =====

func (s *runnerService) SubmitAnswer(ctx context.Context, sessionID string, req *models.AnswerRequest) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "submit_answer")
	defer func() { op.LogResult(sessionID, "session", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	index := *req.Index
	switch {
	case req.Option != nil:
		err = sess.SelectOption(index, *req.Option)
	case req.Text != nil:
		err = sess.SetText(index, *req.Text)
	case req.Value != nil:
		err = sess.SetNumeric(index, *req.Value)
	case req.Toggle != nil:
		err = sess.Toggle(index, *req.Toggle)
	}
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	return &snap, nil
}

func (s *runnerService) Place(ctx context.Context, sessionID string, req *models.PlacementRequest) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "place")
	defer func() { op.LogResult(sessionID, "session", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err = sess.Place(req.ItemID, req.ZoneID); err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	return &snap, nil
}

func (s *runnerService) Unplace(ctx context.Context, sessionID, itemID string) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "unplace")
	defer func() { op.LogResult(sessionID, "session", err) }()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err = sess.Unplace(itemID); err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	return &snap, nil
}

// ===== NAVIGATION =====

// refusal explains why a navigation call was a no-op.
func refusal(sess *session.Session) error {
	if sess.Status() != models.SessionInProgress {
		return ErrTransitionNotAllowed
	}
	return gateClosed(sess.ID(), sess.CurrentIndex())
}

func (s *runnerService) Next(ctx context.Context, sessionID string) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "next")
	defer func() { op.LogResult(sessionID, "session", err) }()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Next() {
		return nil, refusal(sess)
	}

	snap := sess.Snapshot()
	s.afterTransition(ctx, &snap)
	return &snap, nil
}

func (s *runnerService) Previous(ctx context.Context, sessionID string) (state *models.State, err error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	// Stepping back from the first question is a no-op, not an error.
	if !sess.Previous() && sess.Status() != models.SessionInProgress {
		return nil, ErrTransitionNotAllowed
	}

	snap := sess.Snapshot()
	return &snap, nil
}

func (s *runnerService) Complete(ctx context.Context, sessionID string) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "complete")
	defer func() { op.LogResult(sessionID, "session", err) }()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Complete() {
		snap := sess.Snapshot()
		if snap.Status == models.SessionInProgress && !snap.IsLast {
			return nil, ErrTransitionNotAllowed
		}
		return nil, refusal(sess)
	}

	snap := sess.Snapshot()
	s.afterTransition(ctx, &snap)
	return &snap, nil
}

// afterTransition caches and announces a freshly computed result.
func (s *runnerService) afterTransition(ctx context.Context, state *models.State) {
	if state.Status != models.SessionCompleted || state.Result == nil {
		return
	}
	res := *state.Result

	if s.config.ResultTTL > 0 {
		if err := s.cache.Set(ctx, resultKey(state.SessionID), res, s.config.ResultTTL); err != nil {
			s.logger.Warn("Failed to cache session result",
				"session_id", state.SessionID,
				"error", err)
		}
	}
	publish(ctx, s.publisher, s.logger, events.NewSessionCompletedEvent(state.SessionID, res))

	s.logger.Info("Session completed successfully",
		"session_id", state.SessionID,
		"assessment_key", res.AssessmentKey,
		"outcome", res.Outcome,
		"score", res.Score)
}

func (s *runnerService) Restart(ctx context.Context, sessionID string) (state *models.State, err error) {
	op := s.ops.WithOperation(ctx, "restart")
	defer func() { op.LogResult(sessionID, "session", err) }()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Restart() {
		return nil, ErrTransitionNotAllowed
	}

	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("session:%s:*", sessionID)); err != nil {
		s.logger.Warn("Failed to invalidate cached session data",
			"session_id", sessionID,
			"error", err)
	}

	snap := sess.Snapshot()
	publish(ctx, s.publisher, s.logger, events.NewSessionLifecycleEvent(events.EventSessionRestarted, snap))
	return &snap, nil
}

// ===== RESULTS =====

// Result returns the completion snapshot. Closed sessions are served from the
// result cache while their entry lives.
func (s *runnerService) Result(ctx context.Context, sessionID string) (*models.Result, error) {
	sess, err := s.lookup(sessionID)
	if err == nil {
		res, ok := sess.Result()
		if !ok {
			return nil, ErrResultNotAvailable
		}
		return &res, nil
	}

	var cached models.Result
	if cacheErr := s.cache.Get(ctx, resultKey(sessionID), &cached); cacheErr == nil {
		return &cached, nil
	}
	return nil, err
}

func (s *runnerService) ExportResult(ctx context.Context, sessionID string) ([]byte, error) {
	var cached []byte
	if err := s.cache.Get(ctx, exportKey(sessionID), &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Snapshot()
	if state.Result == nil {
		return nil, ErrResultNotAvailable
	}

	data, err := export.ResultWorkbook(sess.Assessment(), state)
	if err != nil {
		return nil, err
	}

	if s.config.ResultTTL > 0 {
		if err := s.cache.Set(ctx, exportKey(sessionID), data, s.config.ResultTTL); err != nil {
			s.logger.Warn("Failed to cache result export", "session_id", sessionID, "error", err)
		}
	}
	return data, nil
}

// Close stops the session timer and forgets the session.
func (s *runnerService) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.release(ctx, sessionID, e.sess)
	s.logger.Info("Session closed successfully", "session_id", sessionID)
	return nil
}

// release tears down a session already removed from the registry. The cached
// result outlives it; the cached export does not.
func (s *runnerService) release(ctx context.Context, sessionID string, sess *session.Session) {
	state := sess.Snapshot()
	sess.Close()

	if err := s.cache.Delete(ctx, exportKey(sessionID)); err != nil {
		s.logger.Warn("Failed to drop cached result export",
			"session_id", sessionID,
			"error", err)
	}
	publish(ctx, s.publisher, s.logger, events.NewSessionLifecycleEvent(events.EventSessionClosed, state))
}

func (s *runnerService) sweepLoop(ctx context.Context) {
	defer s.sweepers.Done()
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep evicts sessions idle for longer than IdleTimeout and returns how many
// it removed.
func (s *runnerService) sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.config.IdleTimeout).UnixNano()

	s.mu.Lock()
	idle := make(map[string]*session.Session)
	for id, e := range s.sessions {
		if e.lastSeen.Load() < cutoff {
			idle[id] = e.sess
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, sess := range idle {
		s.release(ctx, id, sess)
		s.logger.Info("Idle session evicted", "session_id", id, "idle_timeout", s.config.IdleTimeout)
	}
	return len(idle)
}

// Shutdown stops the sweeper and closes every live session.
func (s *runnerService) Shutdown(ctx context.Context) {
	s.stopSweep()
	s.sweepers.Wait()

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range sessions {
		e.sess.Close()
	}
	s.logger.Info("Runner shut down", "closed_sessions", len(sessions))
}
