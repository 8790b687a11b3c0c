// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (session clock and
// countdown) and an input prompt at the bottom of the terminal. All
// application output is printed above the rendered area via
// Program.Println / Printf, so concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/timer"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	timerRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	timerDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	timerPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

const prompt = "cook> "

// Status is what the status bar shows.
type Status struct {
	Recipe    string
	Step      int // 1-based step being timed
	Steps     int
	Session   domain.SessionStatus
	Elapsed   time.Duration
	Countdown timer.Snapshot
	Progress  float64 // countdown remaining/total
}

// StatusSource supplies the status bar on every refresh.
type StatusSource interface {
	Status() Status
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may
// safely call [UI.Println], [UI.Printf], and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	source  StatusSource
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(source StatusSource) *UI {
	return &UI{
		source:  source,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// SetElapsed pushes a new session clock reading to the status bar.
func (u *UI) SetElapsed(d time.Duration) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(elapsedMsg(d))
	}
}

// Refresh asks the status bar to pull a fresh status now instead of
// waiting for the next one-second tick. Thread-safe.
func (u *UI) Refresh() {
	if u.program != nil && !u.done.Load() {
		u.program.Send(refreshMsg{})
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a conversational line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintStep prints a step header like "Step 2/8".
func (u *UI) PrintStep(text string) {
	u.Println(stepStyle.Render("  " + text))
}

// PrintInstruction prints the step's main instruction text.
func (u *UI) PrintInstruction(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("cook") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	m := newModel(u.source, u.inputCh, u.readyCh, u.PrintUserInput)
	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	source  StatusSource
	input   textinput.Model
	bar     progress.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	status  Status
	elapsed time.Duration
	width   int
}

// Messages.
type (
	tickMsg    time.Time
	elapsedMsg time.Duration
	refreshMsg struct{}
)

func newModel(source StatusSource, inputCh chan<- string, readyCh chan struct{}, echo func(string)) model {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add ANSI bytes that break the
	// textinput width math for long input.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	bar := progress.New(progress.WithSolidFill("#fde68a"), progress.WithoutPercentage())
	bar.Width = 20

	return model{
		source:  source,
		input:   ti,
		bar:     bar,
		inputCh: inputCh,
		readyCh: readyCh,
		echoFn:  echo,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case elapsedMsg:
		m.elapsed = time.Duration(msg)
		return m, nil

	case refreshMsg:
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh pulls a fresh status. The pushed elapsed reading wins while the
// session clock is ticking; otherwise the source's value is used.
func (m *model) refresh() {
	if m.source == nil {
		return
	}
	m.status = m.source.Status()
	if m.status.Session != domain.SessionInProgress || m.elapsed < m.status.Elapsed {
		m.elapsed = m.status.Elapsed
	}
}

func (m model) titleStr() string {
	s := m.status
	if s.Recipe == "" {
		return "cookbook"
	}
	title := fmt.Sprintf("cookbook - %s", s.Recipe)
	if c := s.Countdown; c.Active {
		switch {
		case c.Fired:
			title += " | " + c.Label + ": DONE!"
		default:
			title += " | " + c.Label + ": " + timer.FormatClock(c.Remaining)
		}
	}
	return title
}

func (m model) View() string {
	var b strings.Builder

	if m.status.Recipe != "" {
		b.WriteString(m.renderBar())
		b.WriteByte('\n')
	}

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	s := m.status
	var parts []string

	switch s.Session {
	case domain.SessionNotStarted:
		parts = append(parts, labelStyle.Render(s.Recipe+": type start"))
	case domain.SessionInProgress:
		parts = append(parts,
			labelStyle.Render(fmt.Sprintf("Step %d/%d  ", s.Step, s.Steps))+
				clockStyle.Render(timer.FormatClock(m.elapsed)))
	case domain.SessionFinished:
		parts = append(parts,
			labelStyle.Render("Finished in ")+clockStyle.Render(timer.FormatClock(m.elapsed)))
	}

	if c := s.Countdown; c.Active {
		label := labelStyle.Render(c.Label + ": ")
		switch {
		case c.Fired:
			parts = append(parts, timerDoneStyle.Render(c.Label+": DONE!"))
		case c.Running:
			parts = append(parts, label+m.bar.ViewAs(s.Progress)+" "+
				timerRunStyle.Render(timer.FormatClock(c.Remaining)))
		default:
			parts = append(parts, label+m.bar.ViewAs(s.Progress)+" "+
				timerPausedStyle.Render(timer.FormatClock(c.Remaining)+" paused"))
		}
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}
