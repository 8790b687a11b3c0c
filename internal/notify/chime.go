package notify

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*ChimingNotifier)(nil)

// Chimer plays the completion sound.
type Chimer interface {
	Chime(ctx context.Context) error
}

// ChimingNotifier wraps a notifier and plays a chime on urgent messages.
// The chime is best-effort: a missing audio device never fails delivery.
type ChimingNotifier struct {
	inner  domain.Notifier
	chimer Chimer
	log    *logger.Logger
}

// NewChimingNotifier creates a notifier that prints and chimes.
func NewChimingNotifier(inner domain.Notifier, chimer Chimer, log *logger.Logger) *ChimingNotifier {
	return &ChimingNotifier{inner: inner, chimer: chimer, log: log}
}

// Notify passes the message through without sound.
func (n *ChimingNotifier) Notify(ctx context.Context, message string) error {
	return n.inner.Notify(ctx, message)
}

// NotifyUrgent passes the message through, then chimes.
func (n *ChimingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.inner.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	if n.chimer == nil {
		return nil
	}
	if err := n.chimer.Chime(ctx); err != nil {
		n.log.Warn("chime failed: %v", err)
	}
	return nil
}
