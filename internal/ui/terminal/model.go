// Package terminal renders the timer engine as a Bubble Tea program.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/core/engine"
	"focusflow/internal/quotes"
	"focusflow/internal/ui/display"
)

// PollInterval is how often the view re-reads the engine.
const PollInterval = 200 * time.Millisecond

const quoteTimeout = 10 * time.Second

// Controller is the part of the engine the terminal drives.
type Controller interface {
	Toggle()
	Reset()
	SwitchPhase(target engine.Phase)
	Snapshot() engine.Snapshot
}

// QuoteSource returns a quote and never fails.
type QuoteSource interface {
	Fetch(ctx context.Context) quotes.Quote
}

// NoticeSource reports the latest notification and a running count.
type NoticeSource interface {
	Latest() (engine.Notification, int)
}

type tickMsg time.Time

type quoteMsg quotes.Quote

// Model is the root Bubble Tea model.
type Model struct {
	timer    Controller
	quotes   QuoteSource
	notices  NoticeSource
	keys     KeyMap
	help     help.Model
	progress progress.Model

	snapshot    engine.Snapshot
	quote       quotes.Quote
	fetching    bool
	notice      string
	noticeCount int
	width       int
}

// New creates the model and takes an initial snapshot.
func New(timer Controller, quoteSource QuoteSource, notices NoticeSource) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		timer:    timer,
		quotes:   quoteSource,
		notices:  notices,
		keys:     Keys,
		help:     help.New(),
		progress: bar,
		snapshot: timer.Snapshot(),
		quote:    quotes.Initial(),
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, timer Controller, quoteSource QuoteSource, notices NoticeSource) error {
	program := tea.NewProgram(New(timer, quoteSource, notices), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.fetchQuote())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.refresh()
		return m, tick()
	case quoteMsg:
		m.quote = quotes.Quote(msg)
		m.fetching = false
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = clampWidth(msg.Width - 8)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.Focus):
		m.switchTo(engine.Focus)
	case key.Matches(msg, m.keys.ShortBreak):
		m.switchTo(engine.ShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.switchTo(engine.LongBreak)
	case key.Matches(msg, m.keys.Quote):
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, m.fetchQuote()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// switchTo is ignored while the timer runs, like the desktop selector.
func (m *Model) switchTo(phase engine.Phase) {
	if m.timer.Snapshot().Running {
		return
	}
	m.timer.SwitchPhase(phase)
}

func (m *Model) refresh() {
	m.snapshot = m.timer.Snapshot()
	if m.notices == nil {
		return
	}
	if notification, count := m.notices.Latest(); count != m.noticeCount {
		m.noticeCount = count
		m.notice = notification.Body
	}
}

func (m Model) fetchQuote() tea.Cmd {
	source := m.quotes
	return func() tea.Msg {
		if source == nil {
			return quoteMsg(quotes.RandomFallback())
		}
		ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
		defer cancel()
		return quoteMsg(source.Fetch(ctx))
	}
}

func (m Model) View() string {
	var b strings.Builder
	accent := phaseColors[m.snapshot.Phase]

	b.WriteString(titleStyle.Render(display.AppName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(display.WindowTitle(m.snapshot)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(engine.Phases))
	for _, phase := range engine.Phases {
		label := display.PhaseLabel(phase)
		if phase == m.snapshot.Phase {
			tabs = append(tabs, activeTabStyle.Background(phaseColors[phase]).Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	b.WriteString(clockStyle.BorderForeground(accent).Foreground(accent).Render(display.FormatClock(m.snapshot.Remaining)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(display.SessionLine(m.snapshot)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.snapshot.Progress))
	b.WriteString(" ")
	b.WriteString(display.Percent(m.snapshot.Progress))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(status(m.snapshot)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(quoteStyle.Render(fmt.Sprintf("“%s”", m.quote.Text)))
	b.WriteString("\n")
	b.WriteString(authorStyle.Render("- " + m.quote.Author))
	if m.fetching {
		b.WriteString(dimStyle.Render("  (fetching...)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func status(snapshot engine.Snapshot) string {
	switch {
	case snapshot.Running:
		return "running"
	case snapshot.ResumePending:
		return "next phase starts shortly"
	default:
		return "paused · press space to start"
	}
}

func tick() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clampWidth(width int) int {
	const (
		minWidth = 10
		maxWidth = 60
	)
	if width < minWidth {
		return minWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}
