package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/engine"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/recipe"
	"github.com/hammamikhairi/cookbook/internal/timer"
)

// screen is the part of display.UI the page talks to.
type screen interface {
	Println(a ...interface{})
	PrintChat(text string)
	PrintStep(text string)
	PrintInstruction(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	SetElapsed(d time.Duration)
	InputChan() <-chan string
	Quit()
}

var (
	_ domain.SessionObserver = (*cliApp)(nil)
	_ display.StatusSource   = (*cliApp)(nil)
)

// cliApp is the cooking page: one session, one countdown, one screen.
type cliApp struct {
	session   *engine.Session
	countdown *timer.Countdown
	parser    domain.IntentParser
	log       *logger.Logger
	ui        screen

	mu        sync.Mutex
	showTimer bool // countdown widget visible
}

func newCLIApp(parser domain.IntentParser, log *logger.Logger) *cliApp {
	return &cliApp{parser: parser, log: log}
}

func (a *cliApp) run(ctx context.Context) {
	a.showOverview()

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		if a.handleInput(ctx, input) {
			return
		}
	}
}

// handleInput parses one typed line and acts on it. Reports true when the
// page should close.
func (a *cliApp) handleInput(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	snap := a.session.Snapshot()
	intent, err := a.parser.Parse(ctx, input, &snap)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return false
	}

	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
	return a.handleIntent(ctx, intent)
}

// handleIntent dispatches one intent. Reports true when the page should close.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentStart:
		a.start(ctx)
	case domain.IntentAdvance:
		a.advance(ctx)
	case domain.IntentJumpTo:
		a.jumpTo(intent.Payload)
	case domain.IntentPrevious:
		a.previous()
	case domain.IntentFocusCurrent:
		a.focusCurrent()
	case domain.IntentStartTimer:
		a.startTimer(ctx, intent.Payload)
	case domain.IntentToggleTimer:
		a.toggleTimer()
	case domain.IntentResetTimer:
		a.resetTimer()
	case domain.IntentCloseTimer:
		a.closeTimer()
	case domain.IntentVideo:
		a.video()
	case domain.IntentStatus:
		a.status()
	case domain.IntentSummary:
		a.summary()
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.quit()
		return true
	default:
		a.ui.PrintHint("Didn't catch that. Type 'help' for commands.")
	}
	return false
}

// ── Session ──────────────────────────────────────────────────────

func (a *cliApp) start(ctx context.Context) {
	if err := a.session.Start(ctx); err != nil {
		a.invalid(err)
		return
	}
	a.showFocus()
}

func (a *cliApp) advance(ctx context.Context) {
	sum, err := a.session.Advance(ctx)
	if err != nil {
		a.invalid(err)
		return
	}
	if sum == nil {
		a.showFocus()
	}
}

func (a *cliApp) jumpTo(payload string) {
	n, err := strconv.Atoi(strings.TrimSpace(payload))
	steps := len(a.session.Recipe().Steps)
	if err != nil || !a.session.JumpTo(n-1) {
		a.ui.PrintHint(fmt.Sprintf("There is no step %s (1-%d).", payload, steps))
		return
	}
	a.showFocus()
}

func (a *cliApp) previous() {
	idx, _ := a.session.FocusStep()
	if !a.session.JumpTo(idx - 1) {
		a.ui.PrintHint("Already at the first step.")
		return
	}
	a.showFocus()
}

func (a *cliApp) focusCurrent() {
	snap := a.session.Snapshot()
	a.session.JumpTo(snap.CurrentStepIndex)
	a.showFocus()
}

// invalid reports an out-of-order command. These are expected while
// cooking and never fatal.
func (a *cliApp) invalid(err error) {
	if !errors.Is(err, domain.ErrInvalidState) {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.log.Debug("ignored: %v", err)
	switch a.session.Status() {
	case domain.SessionNotStarted:
		a.ui.PrintHint("Not started yet. Type 'start' when you're ready.")
	case domain.SessionInProgress:
		a.ui.PrintHint("Already cooking. Type 'next' when this step is done.")
	case domain.SessionFinished:
		a.ui.PrintHint("All done. Type 'summary' to see how it went.")
	}
}

// ── Countdown ────────────────────────────────────────────────────

func (a *cliApp) startTimer(ctx context.Context, payload string) {
	_, step := a.session.FocusStep()

	minutes := step.TimerMinutes
	if payload != "" {
		n, err := strconv.Atoi(payload)
		if err != nil {
			a.ui.PrintHint("Usage: timer [minutes]")
			return
		}
		minutes = n
	}
	if minutes <= 0 {
		a.ui.PrintHint("This step has no suggested timer. Try 'timer 5'.")
		return
	}

	if err := a.countdown.Start(ctx, minutes, step.Title); err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			a.ui.PrintHint("A timer needs at least one minute.")
			return
		}
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	a.setTimerVisible(true)
	a.ui.PrintChat(fmt.Sprintf("Timer set: %s, %d min.", step.Title, minutes))
}

func (a *cliApp) toggleTimer() {
	if !a.timerVisible() {
		a.ui.PrintHint("No timer running.")
		return
	}
	a.countdown.TogglePause()

	snap := a.countdown.Snapshot()
	if snap.Running {
		a.ui.PrintChat(fmt.Sprintf("Timer running: %s left.", timer.FormatClock(snap.Remaining)))
	} else {
		a.ui.PrintChat(fmt.Sprintf("Timer paused at %s.", timer.FormatClock(snap.Remaining)))
	}
}

func (a *cliApp) resetTimer() {
	if !a.timerVisible() {
		a.ui.PrintHint("No timer to restart.")
		return
	}
	a.countdown.Reset()
	snap := a.countdown.Snapshot()
	a.ui.PrintChat(fmt.Sprintf("Timer restarted: %s.", timer.FormatClock(snap.Total)))
}

func (a *cliApp) closeTimer() {
	if !a.timerVisible() {
		a.ui.PrintHint("No timer open.")
		return
	}
	a.countdown.Stop()
	a.setTimerVisible(false)
	a.ui.PrintHint("Timer closed.")
}

func (a *cliApp) timerVisible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.showTimer
}

func (a *cliApp) setTimerVisible(v bool) {
	a.mu.Lock()
	a.showTimer = v
	a.mu.Unlock()
}

// ── Views ────────────────────────────────────────────────────────

func (a *cliApp) showOverview() {
	r := a.session.Recipe()
	a.ui.PrintStep(r.Title)
	var meta []string
	if r.PrepTime != "" {
		meta = append(meta, "prep "+r.PrepTime)
	}
	if r.CookTime != "" {
		meta = append(meta, "cook "+r.CookTime)
	}
	meta = append(meta, fmt.Sprintf("%d steps", len(r.Steps)))
	a.ui.PrintHint(strings.Join(meta, " · "))
	for _, ing := range r.Ingredients {
		a.ui.PrintInstruction("- " + ing)
	}
	a.ui.Println("")
	a.ui.PrintChat("Type 'start' when you're ready, 'help' for commands.")
}

// showFocus prints the step on display.
func (a *cliApp) showFocus() {
	idx, step := a.session.FocusStep()
	snap := a.session.Snapshot()
	total := snap.StepCount

	header := fmt.Sprintf("Step %d/%d: %s", idx+1, total, step.Title)
	if snap.Status == domain.SessionInProgress && idx != snap.CurrentStepIndex {
		header += fmt.Sprintf("  (you're on step %d)", snap.CurrentStepIndex+1)
	}
	a.ui.PrintStep(header)
	if step.Description != "" {
		a.ui.PrintInstruction(step.Description)
	}
	if step.Tip != "" {
		a.ui.PrintHint("tip: " + step.Tip)
	}
	if step.HasTimer() {
		a.ui.PrintHint(fmt.Sprintf("Suggested timer: %d min. Type 'timer' to start it.", step.TimerMinutes))
	}
	if step.Video != nil && recipe.YouTubeID(a.session.Recipe().VideoURL) != "" {
		a.ui.PrintHint("Video: " + videoWindow(step.Video) + " (type 'video')")
	}
	if idx+1 < total {
		next := a.session.Recipe().Steps[idx+1]
		a.ui.PrintHint("▸ Next: " + truncateStr(next.Title, 80))
	}
}

func (a *cliApp) video() {
	r := a.session.Recipe()
	_, step := a.session.FocusStep()
	url := recipe.EmbedURL(r.VideoURL, step.Video)
	if url == "" {
		a.ui.PrintHint("No video for this step.")
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Step %d video (%s):", step.Order, videoWindow(step.Video)))
	a.ui.PrintInstruction(url)
}

func (a *cliApp) status() {
	snap := a.session.Snapshot()

	a.ui.PrintStep(fmt.Sprintf("Session: %s", snap.ID))
	a.ui.PrintInstruction(fmt.Sprintf("Recipe:  %s", snap.RecipeTitle))
	a.ui.PrintInstruction(fmt.Sprintf("Status:  %s", snap.Status))
	if snap.Status == domain.SessionInProgress {
		a.ui.PrintInstruction(fmt.Sprintf("Step:    %d/%d", snap.CurrentStepIndex+1, snap.StepCount))
		a.ui.PrintHint(fmt.Sprintf("On this step for %s", formatDuration(snap.Elapsed-sumDurations(snap.StepDurations))))
	}
	if snap.Status != domain.SessionNotStarted {
		a.ui.PrintHint(fmt.Sprintf("Elapsed: %s", formatDuration(snap.Elapsed)))
	}
	for i, d := range snap.StepDurations {
		a.ui.PrintHint(fmt.Sprintf("  step %d: %s", i+1, formatDuration(d)))
	}

	if !a.timerVisible() {
		a.ui.PrintHint("Timer:   none")
		return
	}
	c := a.countdown.Snapshot()
	switch {
	case c.Fired:
		a.ui.PrintUrgent(fmt.Sprintf("%s: DONE", c.Label))
	case c.Running:
		a.ui.PrintChat(fmt.Sprintf("%s: %s remaining", c.Label, timer.FormatClock(c.Remaining)))
	default:
		a.ui.PrintChat(fmt.Sprintf("%s: paused at %s", c.Label, timer.FormatClock(c.Remaining)))
	}
}

func (a *cliApp) summary() {
	sum, err := a.session.Summary()
	if err != nil {
		if errors.Is(err, domain.ErrNotFinished) {
			a.ui.PrintHint("The summary is ready once the last step is done.")
			return
		}
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.showSummary(sum)
}

func (a *cliApp) showSummary(sum domain.Summary) {
	a.ui.PrintStep(fmt.Sprintf("%s: done in %d min", sum.RecipeTitle, sum.TotalMinutes))
	for i, st := range sum.Steps {
		a.ui.PrintInstruction(fmt.Sprintf("%d. %-32s %s", i+1, truncateStr(st.Title, 32),
			formatDuration(time.Duration(st.ElapsedSeconds)*time.Second)))
	}
	if line := paceLine(sum); line != "" {
		a.ui.PrintChat(line)
	}
}

// paceLine compares actual time with the recipe's declared time. Empty when
// the recipe declared none.
func paceLine(sum domain.Summary) string {
	if !sum.HasComparison() {
		return ""
	}
	switch sum.Pace {
	case domain.PaceFaster:
		return fmt.Sprintf("%d min faster than the recipe's %d min.", -sum.Delta, sum.ExpectedMinutes)
	case domain.PaceSlower:
		return fmt.Sprintf("%d min slower than the recipe's %d min.", sum.Delta, sum.ExpectedMinutes)
	default:
		return fmt.Sprintf("Right on the recipe's %d min.", sum.ExpectedMinutes)
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintStep("Commands:")
	a.ui.PrintInstruction("  start / go        Start the clock")
	a.ui.PrintInstruction("  next / done       Finish the current step")
	a.ui.PrintInstruction("  step N / N        Look at step N (timing is not affected)")
	a.ui.PrintInstruction("  prev / back       Look at the previous step")
	a.ui.PrintInstruction("  current           Back to the step you're on")
	a.ui.PrintInstruction("  timer [min]       Start a countdown (default: the step's suggestion)")
	a.ui.PrintInstruction("  pause / resume    Pause or resume the countdown")
	a.ui.PrintInstruction("  reset             Restart the countdown")
	a.ui.PrintInstruction("  close / ok        Dismiss the countdown")
	a.ui.PrintInstruction("  video             Link to this step's part of the video")
	a.ui.PrintInstruction("  status            Show session progress")
	a.ui.PrintInstruction("  summary           Show how it went (after the last step)")
	a.ui.PrintInstruction("  quit              Leave the page")
}

func (a *cliApp) quit() {
	if a.session.Status() == domain.SessionInProgress {
		a.ui.PrintHint("Leaving mid-recipe. This session won't be saved.")
	}
	a.shutdown()
	a.ui.PrintChat("Bye!")
	a.ui.Quit()
}

// shutdown tears the page down. Safe to call more than once.
func (a *cliApp) shutdown() {
	a.session.Close()
	a.countdown.Stop()
}

// ── display.StatusSource ─────────────────────────────────────────

// Status feeds the status bar.
func (a *cliApp) Status() display.Status {
	snap := a.session.Snapshot()
	st := display.Status{
		Recipe:  snap.RecipeTitle,
		Step:    snap.CurrentStepIndex + 1,
		Steps:   snap.StepCount,
		Session: snap.Status,
		Elapsed: snap.Elapsed,
	}
	if a.timerVisible() {
		st.Countdown = a.countdown.Snapshot()
		st.Progress = a.countdown.Progress()
	}
	return st
}

// ── domain.SessionObserver ───────────────────────────────────────

// SessionStarted announces the start.
func (a *cliApp) SessionStarted(ctx context.Context, snap domain.SessionSnapshot) {
	a.ui.PrintChat(fmt.Sprintf("Let's cook %s. Clock's running.", snap.RecipeTitle))
}

// StepAdvanced reports how long the finished step took.
func (a *cliApp) StepAdvanced(ctx context.Context, index int, elapsed time.Duration) {
	a.ui.PrintHint(fmt.Sprintf("Step %d done in %s.", index+1, formatDuration(elapsed)))
}

// SessionFinished shows the summary.
func (a *cliApp) SessionFinished(ctx context.Context, sum domain.Summary) {
	a.ui.Println("")
	a.showSummary(sum)

	snap := a.session.Snapshot()
	a.ui.PrintHint(fmt.Sprintf("Logged as %s on %s.",
		domain.MealSlotAt(snap.FinishedAt), snap.FinishedAt.Format(domain.DateLayout)))
}

// ElapsedTick forwards the session clock to the status bar.
func (a *cliApp) ElapsedTick(elapsed time.Duration) {
	a.ui.SetElapsed(elapsed)
}

// ── Formatting ───────────────────────────────────────────────────

func sumDurations(ds []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
