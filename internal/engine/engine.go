// Package engine implements the core cooking session state machine.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/summary"
	"github.com/hammamikhairi/cookbook/internal/timer"
)

// Option configures a session.
type Option func(*Session)

// WithClock sets the time source. Defaults to the system clock.
func WithClock(c domain.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithRecorder sets the history recorder that receives the completion
// record. A nil recorder disables history.
func WithRecorder(r domain.HistoryRecorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithObserver registers a listener for lifecycle events.
func WithObserver(o domain.SessionObserver) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithTickInterval sets how often the elapsed clock is reported.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		s.tickInterval = d
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// Session tracks one cook through one recipe. Status moves forward only:
// NotStarted -> InProgress -> Finished. All methods are safe for
// concurrent use; observer callbacks run outside the lock.
type Session struct {
	recipe       *domain.Recipe
	log          *logger.Logger
	clock        domain.Clock
	recorder     domain.HistoryRecorder
	observer     domain.SessionObserver
	tickInterval time.Duration
	elapsed      *timer.ElapsedClock
	id           string

	mu            sync.Mutex
	status        domain.SessionStatus
	current       int
	focus         int
	startedAt     time.Time
	stepStartedAt time.Time
	finishedAt    time.Time
	durations     []time.Duration
	recorded      bool
}

// New creates a session for the given recipe in the NotStarted state.
func New(recipe *domain.Recipe, log *logger.Logger, opts ...Option) (*Session, error) {
	if recipe == nil || len(recipe.Steps) == 0 {
		return nil, domain.ErrEmptyRecipe
	}

	s := &Session{
		recipe:       recipe,
		log:          log,
		clock:        domain.SystemClock{},
		tickInterval: time.Second,
		id:           generateID(),
		durations:    make([]time.Duration, 0, len(recipe.Steps)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.elapsed = timer.NewElapsedClock(s.clock, log, timer.WithElapsedInterval(s.tickInterval))

	log.Debug("session %s created for recipe %q (%d steps)", s.id, recipe.Title, len(recipe.Steps))
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Recipe returns the recipe being cooked.
func (s *Session) Recipe() *domain.Recipe { return s.recipe }

// Start begins timing. Valid only once, from NotStarted.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status != domain.SessionNotStarted {
		status := s.status
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot start a session that is %s", domain.ErrInvalidState, status)
	}

	now := s.clock.Now()
	s.status = domain.SessionInProgress
	s.startedAt = now
	s.stepStartedAt = now
	snap := s.snapshotLocked(now)
	// The clock is running before any Advance can see InProgress.
	s.elapsed.Start(ctx, now, s.onElapsed)
	s.mu.Unlock()

	s.log.Info("session %s started: %q", s.id, s.recipe.Title)

	if s.observer != nil {
		s.observer.SessionStarted(ctx, snap)
	}
	return nil
}

// Advance completes the current step. On the last step it finishes the
// session and returns the summary; otherwise it returns nil.
func (s *Session) Advance(ctx context.Context) (*domain.Summary, error) {
	s.mu.Lock()
	if s.status != domain.SessionInProgress {
		status := s.status
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot advance a session that is %s", domain.ErrInvalidState, status)
	}

	now := s.clock.Now()
	idx := s.current
	took := now.Sub(s.stepStartedAt)
	s.durations = append(s.durations, took)

	last := idx == len(s.recipe.Steps)-1
	if !last {
		s.current++
		s.focus = s.current
		s.stepStartedAt = now
		s.mu.Unlock()

		s.log.Debug("session %s advanced to step %d/%d (step %d took %s)",
			s.id, s.current+1, len(s.recipe.Steps), idx+1, took.Round(time.Second))
		if s.observer != nil {
			s.observer.StepAdvanced(ctx, idx, took)
		}
		return nil, nil
	}

	s.status = domain.SessionFinished
	s.finishedAt = now
	sum := s.summaryLocked()
	record := !s.recorded
	s.recorded = true
	s.mu.Unlock()

	s.elapsed.Stop()
	s.log.Info("session %s finished in %d min", s.id, sum.TotalMinutes)

	if s.observer != nil {
		s.observer.StepAdvanced(ctx, idx, took)
		s.observer.SessionFinished(ctx, sum)
	}
	if record {
		s.record(ctx, now, sum)
	}
	return &sum, nil
}

// record pushes the completion record. Failures are logged, not returned:
// the session is finished either way.
func (s *Session) record(ctx context.Context, at time.Time, sum domain.Summary) {
	if s.recorder == nil {
		return
	}
	entry := domain.NewHistoryEntry(s.recipe.ID, s.recipe.Title, at, sum.TotalMinutes)
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.log.Error("session %s: recording history: %v", s.id, err)
		return
	}
	s.log.Debug("session %s recorded as %s on %s", s.id, entry.MealSlot, entry.Date)
}

// JumpTo moves the display focus to a step. Timing is untouched. Reports
// false, and changes nothing, when index is out of range.
func (s *Session) JumpTo(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.recipe.Steps) {
		s.log.Debug("session %s: ignoring jump to step %d", s.id, index+1)
		return false
	}
	s.focus = index
	return true
}

// Close stops the elapsed clock. Safe to call more than once.
func (s *Session) Close() {
	s.elapsed.Stop()
}

// Status returns the lifecycle state.
func (s *Session) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// FocusStep returns the step currently on display and its index.
func (s *Session) FocusStep() (int, domain.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus, s.recipe.Steps[s.focus]
}

// Snapshot returns a copy of the session's fields.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.clock.Now())
}

func (s *Session) snapshotLocked(now time.Time) domain.SessionSnapshot {
	snap := domain.SessionSnapshot{
		ID:               s.id,
		RecipeID:         s.recipe.ID,
		RecipeTitle:      s.recipe.Title,
		Status:           s.status,
		CurrentStepIndex: s.current,
		FocusIndex:       s.focus,
		StepCount:        len(s.recipe.Steps),
		StartedAt:        s.startedAt,
		StepStartedAt:    s.stepStartedAt,
		FinishedAt:       s.finishedAt,
		StepDurations:    append([]time.Duration(nil), s.durations...),
	}
	switch s.status {
	case domain.SessionInProgress:
		snap.Elapsed = now.Sub(s.startedAt)
	case domain.SessionFinished:
		snap.Elapsed = s.finishedAt.Sub(s.startedAt)
	}
	return snap
}

// Summary recomputes the performance summary. Only a finished session has one.
func (s *Session) Summary() (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionFinished {
		return domain.Summary{}, domain.ErrNotFinished
	}
	return s.summaryLocked(), nil
}

func (s *Session) summaryLocked() domain.Summary {
	return summary.Compute(s.recipe, s.startedAt, s.finishedAt, s.durations)
}

func (s *Session) onElapsed(d time.Duration) {
	if s.observer != nil {
		s.observer.ElapsedTick(d)
	}
}
