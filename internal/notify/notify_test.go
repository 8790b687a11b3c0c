package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// ANSI codes used to build formatted test messages.
const (
	red   = "\033[31m"
	reset = "\033[0m"
)

// recorder collects notifications for testing.
type recorder struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
	err      error
}

func (r *recorder) Notify(_ context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return r.err
}

func (r *recorder) NotifyUrgent(_ context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urgent = append(r.urgent, msg)
	return r.err
}

type fakeChimer struct {
	calls int
	err   error
}

func (c *fakeChimer) Chime(context.Context) error {
	c.calls++
	return c.err
}

// recordingScreen captures what a notifier prints, per style.
type recordingScreen struct {
	mu     sync.Mutex
	chat   []string
	urgent []string
}

func (s *recordingScreen) PrintChat(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, text)
}

func (s *recordingScreen) PrintUrgent(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urgent = append(s.urgent, text)
}

func TestCLINotifierUsesScreenStyles(t *testing.T) {
	screen := &recordingScreen{}
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), screen)

	_ = n.Notify(context.Background(), "hello")
	_ = n.NotifyUrgent(context.Background(), "[Timer] Rest is up.")

	if len(screen.chat) != 1 || screen.chat[0] != "hello" {
		t.Fatalf("unexpected chat lines %q", screen.chat)
	}
	if len(screen.urgent) != 1 || screen.urgent[0] != "[Timer] Rest is up." {
		t.Fatalf("unexpected urgent lines %q", screen.urgent)
	}
	for _, line := range append(screen.chat, screen.urgent...) {
		if strings.Contains(line, "\033[") {
			t.Fatalf("line %q carries raw escape codes", line)
		}
	}
}

func TestNtfyEmptyTopicIsNoop(t *testing.T) {
	n := NewNtfy("  ", time.Second, logger.New(logger.LevelOff, nil))
	if _, ok := n.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", n)
	}
	if err := n.NotifyUrgent(context.Background(), "x"); err != nil {
		t.Fatalf("noop returned %v", err)
	}
}

func TestNtfyBareTopicUsesDefaultHost(t *testing.T) {
	n := NewNtfy("kitchen", 0, logger.New(logger.LevelOff, nil)).(*Ntfy)
	if n.endpoint != "https://ntfy.sh/kitchen" {
		t.Fatalf("unexpected endpoint %q", n.endpoint)
	}
	if n.client.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", n.client.Timeout)
	}
}

func TestNtfySendsHeaders(t *testing.T) {
	tests := []struct {
		name           string
		urgent         bool
		expectTitle    string
		expectTags     string
		expectPriority string
	}{
		{"normal", false, "Cookbook", "cookbook", ""},
		{"urgent", true, "Cookbook - Timer", "cookbook,timer,alarm_clock", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured struct {
				title, tags, priority, body string
			}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read body: %v", err)
				}
				captured.body = string(body)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			n := NewNtfy(server.URL+"/kitchen", time.Second, logger.New(logger.LevelOff, nil))
			msg := "\033[31m[Timer] Simmer the sauce is up.\033[0m"
			var err error
			if tt.urgent {
				err = n.NotifyUrgent(context.Background(), msg)
			} else {
				err = n.Notify(context.Background(), msg)
			}
			if err != nil {
				t.Fatalf("send: %v", err)
			}

			if captured.title != tt.expectTitle {
				t.Errorf("title = %q, want %q", captured.title, tt.expectTitle)
			}
			if captured.tags != tt.expectTags {
				t.Errorf("tags = %q, want %q", captured.tags, tt.expectTags)
			}
			if captured.priority != tt.expectPriority {
				t.Errorf("priority = %q, want %q", captured.priority, tt.expectPriority)
			}
			if captured.body != "Simmer the sauce is up." {
				t.Errorf("body = %q", captured.body)
			}
		})
	}
}

func TestNtfyReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic blocked", http.StatusForbidden)
	}))
	defer server.Close()

	n := NewNtfy(server.URL, time.Second, logger.New(logger.LevelOff, nil))
	err := n.NotifyUrgent(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestChimingNotifier(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	inner := &recorder{}
	chimer := &fakeChimer{err: errors.New("no audio device")}
	n := NewChimingNotifier(inner, chimer, log)
	ctx := context.Background()

	if err := n.Notify(ctx, "note"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if chimer.calls != 0 {
		t.Fatal("normal notifications should not chime")
	}

	if err := n.NotifyUrgent(ctx, "done"); err != nil {
		t.Fatalf("chime failure should be swallowed, got %v", err)
	}
	if chimer.calls != 1 || len(inner.urgent) != 1 {
		t.Fatalf("expected one chime and one urgent message, got %d/%d", chimer.calls, len(inner.urgent))
	}

	inner.err = errors.New("closed")
	if err := n.NotifyUrgent(ctx, "again"); err == nil {
		t.Fatal("expected inner error")
	}
	if chimer.calls != 1 {
		t.Fatal("should not chime when the message was not delivered")
	}
}

func TestFanout(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	primary := &recorder{}
	failing := &recorder{err: errors.New("offline")}
	other := &recorder{}
	f := NewFanout(log, primary, failing, nil, other)
	ctx := context.Background()

	if err := f.NotifyUrgent(ctx, "up"); err != nil {
		t.Fatalf("secondary failure leaked: %v", err)
	}
	if err := f.Notify(ctx, "fyi"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	for name, r := range map[string]*recorder{"primary": primary, "failing": failing, "other": other} {
		if len(r.urgent) != 1 || len(r.messages) != 1 {
			t.Fatalf("%s: expected 1 urgent and 1 normal, got %d/%d", name, len(r.urgent), len(r.messages))
		}
	}

	primary.err = errors.New("broken pipe")
	if err := f.Notify(ctx, "x"); err == nil {
		t.Fatal("expected primary error")
	}
}

type fakeSpeaker struct {
	mu   sync.Mutex
	said []string
	err  error
}

func (s *fakeSpeaker) Say(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.said = append(s.said, text)
	return s.err
}

func TestSpeakingNotifier(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	inner := &recorder{}
	speaker := &fakeSpeaker{}
	n := NewSpeakingNotifier(inner, speaker, log)
	ctx := context.Background()

	if err := n.Notify(ctx, "note"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(speaker.said) != 0 {
		t.Fatal("normal notifications should stay silent")
	}

	if err := n.NotifyUrgent(ctx, red+"[Timer] Boil water is up."+reset); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}
	if len(speaker.said) != 1 || speaker.said[0] != "Boil water is up." {
		t.Fatalf("unexpected speech %q", speaker.said)
	}

	speaker.err = errors.New("no audio device")
	if err := n.NotifyUrgent(ctx, "[Timer] Rest is up."); err != nil {
		t.Fatalf("speech failure should be swallowed, got %v", err)
	}

	inner.err = errors.New("closed")
	if err := n.NotifyUrgent(ctx, "[Timer] Drain is up."); err == nil {
		t.Fatal("expected inner error")
	}
	if len(speaker.said) != 2 {
		t.Fatalf("should not speak undelivered messages, said %q", speaker.said)
	}
}
