package notify

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Fanout)(nil)

// Fanout delivers each message to a primary notifier and any number of
// secondary ones. Only the primary's error is returned; secondary failures
// are logged.
type Fanout struct {
	primary     domain.Notifier
	secondaries []domain.Notifier
	log         *logger.Logger
}

// NewFanout creates a fan-out notifier. Nil secondaries are skipped.
func NewFanout(log *logger.Logger, primary domain.Notifier, secondaries ...domain.Notifier) *Fanout {
	f := &Fanout{primary: primary, log: log}
	for _, s := range secondaries {
		if s != nil {
			f.secondaries = append(f.secondaries, s)
		}
	}
	return f
}

// Notify delivers a normal notification everywhere.
func (f *Fanout) Notify(ctx context.Context, message string) error {
	err := f.primary.Notify(ctx, message)
	for _, s := range f.secondaries {
		if serr := s.Notify(ctx, message); serr != nil {
			f.log.Warn("secondary notify failed: %v", serr)
		}
	}
	return err
}

// NotifyUrgent delivers an urgent notification everywhere.
func (f *Fanout) NotifyUrgent(ctx context.Context, message string) error {
	err := f.primary.NotifyUrgent(ctx, message)
	for _, s := range f.secondaries {
		if serr := s.NotifyUrgent(ctx, message); serr != nil {
			f.log.Warn("secondary urgent notify failed: %v", serr)
		}
	}
	return err
}
