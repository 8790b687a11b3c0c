package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// ElapsedOption configures the elapsed clock.
type ElapsedOption func(*ElapsedClock)

// WithElapsedInterval sets how often the elapsed clock reports.
func WithElapsedInterval(d time.Duration) ElapsedOption {
	return func(e *ElapsedClock) {
		if d > 0 {
			e.interval = d
		}
	}
}

// ElapsedClock reports time since a fixed instant on a repeating tick.
// It drives the session clock display and holds no session state itself.
type ElapsedClock struct {
	clock    domain.Clock
	log      *logger.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewElapsedClock creates a stopped elapsed clock.
func NewElapsedClock(clock domain.Clock, log *logger.Logger, opts ...ElapsedOption) *ElapsedClock {
	e := &ElapsedClock{
		clock:    clock,
		log:      log,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins reporting now-since to fn every interval. A running clock is
// replaced. Non-blocking.
func (e *ElapsedClock) Start(ctx context.Context, since time.Time, fn func(time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.cancel()
	}

	childCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.running = true

	go e.run(childCtx, since, fn)
	e.log.Debug("elapsed clock started (interval=%s)", e.interval)
}

// Stop cancels the tick. Safe to call more than once.
func (e *ElapsedClock) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.cancel()
	e.running = false
	e.log.Debug("elapsed clock stopped")
}

// Running reports whether the tick is live.
func (e *ElapsedClock) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *ElapsedClock) run(ctx context.Context, since time.Time, fn func(time.Duration)) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if fn != nil {
				fn(e.clock.Now().Sub(since))
			}
		}
	}
}
