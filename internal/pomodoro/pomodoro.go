// Package pomodoro implements the focus-session countdown.
package pomodoro

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultDuration is the length of one focus session.
const DefaultDuration = 25 * time.Minute

// Outcome is how a session ended.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// FormatCountdown renders the remaining time as MM:SS. Minutes are not
// wrapped into hours.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

type tickMsg time.Time

type cancelMsg struct{}

var (
	clockStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for a running session.
type Model struct {
	description string
	remaining   time.Duration
	interval    time.Duration
	outcome     Outcome
	done        bool
}

// NewModel returns a model counting down from d.
func NewModel(description string, d time.Duration) Model {
	if d <= 0 {
		d = DefaultDuration
	}
	return Model{
		description: description,
		remaining:   d,
		interval:    time.Second,
	}
}

// Remaining returns the time left.
func (m Model) Remaining() time.Duration { return m.remaining }

// Outcome returns how the session ended. It is only meaningful once Done.
func (m Model) Outcome() Outcome { return m.outcome }

// Done reports whether the session has ended.
func (m Model) Done() bool { return m.done }

func (m Model) title() string {
	return fmt.Sprintf("🍅 %s - %s", FormatCountdown(m.remaining), m.description)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title()), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.remaining -= m.interval
		if m.remaining <= 0 {
			m.remaining = 0
			return m.finish(Completed)
		}
		return m, tea.Batch(tea.SetWindowTitle(m.title()), m.tick())

	case cancelMsg:
		return m.finish(Cancelled)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m.finish(Cancelled)
		}
	}

	return m, nil
}

func (m Model) finish(outcome Outcome) (tea.Model, tea.Cmd) {
	m.outcome = outcome
	m.done = true
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("\n  %s  %s\n\n  %s\n",
		clockStyle.Render(FormatCountdown(m.remaining)),
		m.description,
		hintStyle.Render("q or ctrl+c to cancel"))
}

// Options configure Run.
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// Run shows the countdown until it completes, the user cancels it or ctx is
// done. A done ctx counts as a cancelled session.
func Run(ctx context.Context, description string, d time.Duration, opts Options) (Outcome, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	programOpts := []tea.ProgramOption{tea.WithOutput(out)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}

	p := tea.NewProgram(NewModel(description, d), programOpts...)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.Send(cancelMsg{})
		case <-stop:
		}
	}()

	final, err := p.Run()
	if err != nil {
		return Cancelled, fmt.Errorf("run timer: %w", err)
	}
	m, ok := final.(Model)
	if !ok || !m.done {
		return Cancelled, nil
	}
	if m.outcome == Completed {
		fmt.Fprint(out, "\a")
	}
	return m.outcome, nil
}
