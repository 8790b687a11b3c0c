package notify

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// Speaker reads a message aloud.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// SpeakingNotifier wraps a notifier and reads urgent messages aloud after
// the inner notifier has delivered them.
type SpeakingNotifier struct {
	inner   domain.Notifier
	speaker Speaker
	log     *logger.Logger
}

// NewSpeakingNotifier creates a notifier that prints and speaks.
func NewSpeakingNotifier(inner domain.Notifier, speaker Speaker, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{inner: inner, speaker: speaker, log: log}
}

// Notify passes the message through silently.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	return n.inner.Notify(ctx, message)
}

// NotifyUrgent passes the message through, then speaks it without
// formatting or the "[Timer]" tag.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.inner.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	text := cleanMessage(message)
	if n.speaker == nil || text == "" {
		return nil
	}
	if err := n.speaker.Say(ctx, text); err != nil {
		n.log.Warn("speaking %q failed: %v", text, err)
	}
	return nil
}
