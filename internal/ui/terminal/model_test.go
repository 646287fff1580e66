package terminal

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/engine"
	"focusflow/internal/core/model"
	"focusflow/internal/notify"
	"focusflow/internal/quotes"
)

type stubQuotes struct {
	quote quotes.Quote
}

func (stub stubQuotes) Fetch(context.Context) quotes.Quote {
	return stub.quote
}

func newTestModel(t *testing.T) (Model, *engine.Engine, *clock.Fake, *notify.Bell) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	bell := &notify.Bell{}
	timer := engine.New(model.DefaultPomodoroConfig(), engine.Options{Clock: fake, Notifier: bell})
	t.Cleanup(timer.Close)
	stub := stubQuotes{quote: quotes.Quote{Text: "Ship it.", Author: "Someone"}}
	return New(timer, stub, bell), timer, fake, bell
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestSpaceTogglesTimer(t *testing.T) {
	m, timer, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, timer.Running())
	assert.True(t, m.snapshot.Running)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, timer.Running())
	assert.False(t, m.snapshot.Running)
}

func TestPhaseKeysIgnoredWhileRunning(t *testing.T) {
	m, timer, _, _ := newTestModel(t)

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, engine.LongBreak, timer.Phase())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, runes("1"))
	assert.Equal(t, engine.LongBreak, timer.Phase())
	assert.Equal(t, engine.LongBreak, m.snapshot.Phase)
}

func TestResetKey(t *testing.T) {
	m, timer, fake, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	fake.Advance(30 * time.Second)
	timer.Tick(fake.Now())

	m, _ = update(t, m, runes("r"))

	assert.False(t, timer.Running())
	assert.Equal(t, 1500, m.snapshot.Remaining)
}

func TestTickPicksUpTransitionAndNotice(t *testing.T) {
	m, timer, fake, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	fake.Set(timer.Snapshot().Deadline)
	timer.Tick(fake.Now())

	m, cmd := update(t, m, tickMsg(fake.Now()))

	require.NotNil(t, cmd, "polling continues")
	assert.Equal(t, engine.ShortBreak, m.snapshot.Phase)
	assert.Equal(t, "Great work! Time for a break.", m.notice)
	assert.Contains(t, m.View(), "Great work! Time for a break.")
	assert.Contains(t, m.View(), "05:00")
}

func TestQuoteKeyFetches(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, cmd := update(t, m, runes("n"))
	require.NotNil(t, cmd)
	assert.True(t, m.fetching)

	again, second := update(t, m, runes("n"))
	assert.Nil(t, second, "one fetch at a time")

	m, _ = update(t, again, cmd())
	assert.False(t, m.fetching)
	assert.Equal(t, "Ship it.", m.quote.Text)
	assert.Contains(t, m.View(), "Someone")
}

func TestQuitKey(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := update(t, m, runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSizeClampsProgress(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 60, m.progress.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 12, Height: 40})
	assert.Equal(t, 10, m.progress.Width)
}

func TestInitialView(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Focus Time")
	assert.Contains(t, view, "Session 0")
	assert.Contains(t, view, quotes.Initial().Author)
}
