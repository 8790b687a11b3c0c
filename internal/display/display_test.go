package display

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/timer"
)

type fakeSource struct {
	status Status
}

func (f *fakeSource) Status() Status { return f.status }

func tickModel(t *testing.T, src StatusSource) model {
	t.Helper()
	m := newModel(src, make(chan string, 1), make(chan struct{}), func(string) {})
	next, _ := m.Update(tickMsg(time.Now()))
	return next.(model)
}

func TestViewShowsStepAndCountdown(t *testing.T) {
	src := &fakeSource{status: Status{
		Recipe:  "Shakshuka",
		Step:    2,
		Steps:   5,
		Session: domain.SessionInProgress,
		Elapsed: 90 * time.Second,
		Countdown: timer.Snapshot{
			Label:     "Simmer",
			Total:     10 * time.Minute,
			Remaining: 299 * time.Second,
			Running:   true,
			Active:    true,
		},
		Progress: 0.5,
	}}

	view := tickModel(t, src).View()
	for _, want := range []string{"Step 2/5", "01:30", "Simmer", "04:59"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewStates(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"not started", Status{Recipe: "Toast", Session: domain.SessionNotStarted}, "type start"},
		{"finished", Status{Recipe: "Toast", Session: domain.SessionFinished, Elapsed: 11 * time.Minute}, "11:00"},
		{"fired", Status{Recipe: "Toast", Session: domain.SessionInProgress,
			Countdown: timer.Snapshot{Label: "Eggs", Active: true, Fired: true}}, "Eggs: DONE!"},
		{"paused", Status{Recipe: "Toast", Session: domain.SessionInProgress,
			Countdown: timer.Snapshot{Label: "Eggs", Active: true, Remaining: time.Minute}}, "01:00 paused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tickModel(t, &fakeSource{status: tt.status}).View()
			if !strings.Contains(view, tt.want) {
				t.Fatalf("view missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestElapsedMessageUpdatesClock(t *testing.T) {
	src := &fakeSource{status: Status{Recipe: "Toast", Step: 1, Steps: 2, Session: domain.SessionInProgress}}
	m := tickModel(t, src)

	next, _ := m.Update(elapsedMsg(65 * time.Second))
	if view := next.(model).View(); !strings.Contains(view, "01:05") {
		t.Fatalf("expected pushed elapsed in view:\n%s", view)
	}
}

func TestEnterSendsInput(t *testing.T) {
	inputCh := make(chan string, 1)
	m := newModel(&fakeSource{}, inputCh, make(chan struct{}), func(string) {})
	m.input.SetValue("next")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected echo command")
	}
	select {
	case got := <-inputCh:
		if got != "next" {
			t.Fatalf("expected %q, got %q", "next", got)
		}
	default:
		t.Fatal("expected input to be sent")
	}
	if next.(model).input.Value() != "" {
		t.Fatal("expected input cleared")
	}
}

func TestRenderBannerCentres(t *testing.T) {
	art := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	maxW := 0
	for _, l := range art {
		if len(l) > maxW {
			maxW = len(l)
		}
	}

	lines := strings.Split(strings.TrimRight(renderBanner(maxW+40), "\n"), "\n")
	if len(lines) != len(art) {
		t.Fatalf("expected %d banner lines, got %d", len(art), len(lines))
	}
	if !strings.HasPrefix(lines[0], strings.Repeat(" ", 20)) {
		t.Fatalf("expected 20 columns of padding: %q", lines[0])
	}

	narrow := strings.Split(renderBanner(10), "\n")
	if strings.HasPrefix(narrow[0], strings.Repeat(" ", 20)) {
		t.Fatalf("narrow terminal should not pad: %q", narrow[0])
	}
}

func TestRefreshMessagePullsStatus(t *testing.T) {
	src := &fakeSource{status: Status{
		Recipe:  "Pasta",
		Step:    1,
		Steps:   3,
		Session: domain.SessionInProgress,
		Countdown: timer.Snapshot{
			Label:     "Boil water",
			Total:     5 * time.Minute,
			Remaining: 5 * time.Minute,
			Running:   true,
			Active:    true,
		},
		Progress: 1,
	}}
	m := tickModel(t, src)

	src.status.Countdown.Remaining = 4*time.Minute + 59*time.Second
	next, cmd := m.Update(refreshMsg{})
	if cmd != nil {
		t.Fatal("refresh should not schedule another tick")
	}
	if view := next.(model).View(); !strings.Contains(view, "04:59") {
		t.Fatalf("expected refreshed countdown in view:\n%s", view)
	}
}

func TestRefreshBeforeRunIsSafe(t *testing.T) {
	ui := NewUI(&fakeSource{})
	ui.Refresh()
}
