// Package notify delivers user-facing notifications: terminal output, ntfy
// push messages, an audible chime and spoken announcements.
package notify

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// Screen is the terminal surface notifications are written to.
// display.UI satisfies it.
type Screen interface {
	PrintChat(text string)
	PrintUrgent(text string)
}

// CLINotifier writes notifications to the page's scrollback.
type CLINotifier struct {
	log    *logger.Logger
	screen Screen
}

// NewCLINotifier creates a terminal notifier. A nil screen prints plain
// lines to stdout.
func NewCLINotifier(log *logger.Logger, screen Screen) *CLINotifier {
	if screen == nil {
		screen = stdoutScreen{}
	}
	return &CLINotifier{log: log, screen: screen}
}

// Notify prints a normal notification as a chat line.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.screen.PrintChat(message)
	return nil
}

// NotifyUrgent prints an urgent notification in the urgent style.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.screen.PrintUrgent(message)
	return nil
}

type stdoutScreen struct{}

func (stdoutScreen) PrintChat(text string)   { fmt.Println(text) }
func (stdoutScreen) PrintUrgent(text string) { fmt.Println("! " + text) }

// Noop discards every notification.
type Noop struct{}

// Notify does nothing.
func (Noop) Notify(context.Context, string) error { return nil }

// NotifyUrgent does nothing.
func (Noop) NotifyUrgent(context.Context, string) error { return nil }
