package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

const (
	userAgent   = "cookbook/0.1"
	defaultHost = "https://ntfy.sh/"
)

// Compile-time interface check.
var _ domain.Notifier = (*Ntfy)(nil)

// Ntfy pushes notifications to an ntfy topic so a timer can reach a phone
// while the cook is away from the terminal.
type Ntfy struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

// NewNtfy builds an ntfy notifier. topic may be a bare topic name (posted
// to ntfy.sh) or a full URL. An empty topic yields a Noop notifier.
func NewNtfy(topic string, timeout time.Duration, log *logger.Logger) domain.Notifier {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Noop{}
	}
	if !strings.Contains(topic, "://") {
		topic = defaultHost + topic
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Ntfy{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

// Notify sends a normal-priority push.
func (n *Ntfy) Notify(ctx context.Context, message string) error {
	return n.send(ctx, payload{
		title:   "Cookbook",
		message: cleanMessage(message),
		tags:    []string{"cookbook"},
	})
}

// NotifyUrgent sends a high-priority push.
func (n *Ntfy) NotifyUrgent(ctx context.Context, message string) error {
	return n.send(ctx, payload{
		title:    "Cookbook - Timer",
		message:  cleanMessage(message),
		tags:     []string{"cookbook", "timer", "alarm_clock"},
		priority: "high",
	})
}

func (n *Ntfy) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	n.log.Debug("ntfy: delivered %q", data.message)
	return nil
}

var (
	bracketPrefix = regexp.MustCompile(`^\[[A-Za-z]+\]\s*`)
	ansiCodes     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// cleanMessage strips terminal formatting and the "[Timer]" style prefix.
func cleanMessage(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = bracketPrefix.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
