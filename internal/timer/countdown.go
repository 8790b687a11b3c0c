// Package timer implements the per-step countdown and the session elapsed
// clock. Both run a ticker in a goroutine that is cancelled whenever it is
// superseded or the page goes away.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Option configures the countdown.
type Option func(*Countdown)

// WithTickInterval sets the wall-clock period of one countdown tick. Each
// tick always removes one second; only tests should change this.
func WithTickInterval(d time.Duration) Option {
	return func(c *Countdown) {
		c.tickInterval = d
	}
}

// WithOnTick registers a callback run after every tick, outside the lock.
func WithOnTick(fn func(Snapshot)) Option {
	return func(c *Countdown) {
		c.onTick = fn
	}
}

// Snapshot is a point-in-time view of the countdown for rendering.
type Snapshot struct {
	Label     string
	Total     time.Duration
	Remaining time.Duration
	Running   bool
	Fired     bool
	Active    bool // Start has been called at least once
}

// Countdown is a restartable, pausable countdown owned by a single page.
// Starting a new countdown stops the previous one; there is no queue.
type Countdown struct {
	notifier     domain.Notifier
	log          *logger.Logger
	tickInterval time.Duration
	onTick       func(Snapshot)

	mu        sync.Mutex
	label     string
	total     int // seconds
	remaining int // seconds
	running   bool
	fired     bool
	active    bool
	parent    context.Context
	cancel    context.CancelFunc
}

// New creates an idle countdown. The notifier receives the completion signal.
func New(notifier domain.Notifier, log *logger.Logger, opts ...Option) *Countdown {
	c := &Countdown{
		notifier:     notifier,
		log:          log,
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start cancels any in-flight countdown and begins a new one of the given
// length. Non-blocking.
func (c *Countdown) Start(ctx context.Context, minutes int, label string) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d minutes", domain.ErrInvalidDuration, minutes)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoop()
	c.label = label
	c.total = minutes * 60
	c.remaining = c.total
	c.running = true
	c.fired = false
	c.active = true
	c.parent = ctx
	c.startLoop()

	c.log.Info("countdown started: %s (%d min)", label, minutes)
	return nil
}

// TogglePause pauses a running countdown or resumes a paused one. On a
// countdown that already reached zero it behaves exactly like Reset.
func (c *Countdown) TogglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	if c.remaining == 0 {
		c.resetLocked()
		return
	}

	c.running = !c.running
	if c.running {
		c.startLoop()
		c.log.Debug("countdown resumed at %s", formatRemaining(c.remainingDuration()))
	} else {
		c.stopLoop()
		c.log.Debug("countdown paused at %s", formatRemaining(c.remainingDuration()))
	}
}

// Reset restores the full duration and runs again. No-op before the first Start.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	c.resetLocked()
}

func (c *Countdown) resetLocked() {
	c.stopLoop()
	c.remaining = c.total
	c.running = true
	c.fired = false
	c.startLoop()
	c.log.Debug("countdown reset: %s", c.label)
}

// Stop halts ticking and keeps the remaining time. Used when the widget is dismissed.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return
	}
	c.stopLoop()
	c.running = false
	c.log.Debug("countdown stopped with %s left", formatRemaining(c.remainingDuration()))
}

// Progress returns remaining/total in [0,1]. Zero when no countdown was set.
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.total == 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.total)
}

// Snapshot returns the current countdown state.
func (c *Countdown) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Countdown) snapshotLocked() Snapshot {
	return Snapshot{
		Label:     c.label,
		Total:     time.Duration(c.total) * time.Second,
		Remaining: c.remainingDuration(),
		Running:   c.running,
		Fired:     c.fired,
		Active:    c.active,
	}
}

func (c *Countdown) remainingDuration() time.Duration {
	return time.Duration(c.remaining) * time.Second
}

// startLoop launches the tick goroutine. Caller holds mu.
func (c *Countdown) startLoop() {
	parent := c.parent
	if parent == nil {
		parent = context.Background()
	}
	childCtx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	go c.loop(childCtx)
}

// stopLoop cancels the tick goroutine, if any. Caller holds mu.
func (c *Countdown) stopLoop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// loop is the one-second tick loop.
func (c *Countdown) loop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick removes one second. At zero it stops the loop and raises the
// completion signal. A tick from a superseded loop is dropped.
func (c *Countdown) tick(ctx context.Context) {
	c.mu.Lock()
	if ctx.Err() != nil || !c.running {
		c.mu.Unlock()
		return
	}

	c.remaining--
	if c.remaining < 0 {
		c.remaining = 0
	}

	done := c.remaining == 0
	if done {
		c.running = false
		c.fired = true
		c.stopLoop()
	}
	snap := c.snapshotLocked()
	notifyCtx := c.parent
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(snap)
	}
	if done {
		if notifyCtx == nil {
			notifyCtx = context.Background()
		}
		c.complete(notifyCtx, snap.Label)
	}
}

// complete delivers the completion signal. Failures are logged; the fired
// flag in the snapshot stays authoritative.
func (c *Countdown) complete(ctx context.Context, label string) {
	c.log.Info("countdown finished: %s", label)
	if c.notifier == nil {
		return
	}
	msg := fmt.Sprintf("[Timer] %s is up.", label)
	if err := c.notifier.NotifyUrgent(ctx, msg); err != nil {
		c.log.Error("countdown: notifying completion: %v", err)
	}
}

// formatRemaining returns a short human duration for logs and the UI.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

// FormatClock renders d as MM:SS, or H:MM:SS past an hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
