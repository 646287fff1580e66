package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/core/model"
)

var epoch = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func newDefaultState() State {
	return NewState(model.DefaultPomodoroConfig())
}

func cues(intents []Intent) []Cue {
	var result []Cue
	for _, intent := range intents {
		if intent.Kind == IntentPlaySound {
			result = append(result, intent.Cue)
		}
	}
	return result
}

func kinds(intents []Intent) []IntentKind {
	result := make([]IntentKind, 0, len(intents))
	for _, intent := range intents {
		result = append(result, intent.Kind)
	}
	return result
}

func TestNewState(t *testing.T) {
	state := newDefaultState()

	assert.Equal(t, Focus, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 1500, state.Remaining)
	assert.True(t, state.Deadline.IsZero())
	assert.Equal(t, map[Phase]int{Focus: 1500, ShortBreak: 300, LongBreak: 900}, state.Saved)
	assert.Equal(t, 0, state.CompletedFocus)
	assert.Equal(t, 0.0, state.Progress())
}

func TestStartSetsDeadline(t *testing.T) {
	state := newDefaultState()

	intents := state.Start(epoch, true)

	assert.True(t, state.Running)
	assert.Equal(t, epoch.Add(1500*time.Second), state.Deadline)
	assert.Equal(t, []Cue{CueAcknowledge}, cues(intents))
}

func TestStartTwiceIsNoOp(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)
	deadline := state.Deadline

	intents := state.Start(epoch.Add(10*time.Second), true)

	assert.Empty(t, intents)
	assert.True(t, state.Running)
	assert.Equal(t, deadline, state.Deadline, "second start must not re-arm the deadline")
}

func TestSilentStart(t *testing.T) {
	state := newDefaultState()
	assert.Empty(t, state.Start(epoch, false))
	assert.True(t, state.Running)
}

func TestPause(t *testing.T) {
	state := newDefaultState()

	assert.Empty(t, state.Pause(), "pause while stopped is a no-op")

	state.Start(epoch, true)
	state.Tick(epoch.Add(600 * time.Second))
	intents := state.Pause()

	assert.False(t, state.Running)
	assert.True(t, state.Deadline.IsZero())
	assert.Equal(t, 900, state.Remaining)
	assert.Equal(t, 900, state.Saved[Focus])
	assert.Equal(t, []Cue{CueAcknowledge}, cues(intents))
}

func TestReset(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(state *State)
	}{
		{name: "fresh", prepare: func(state *State) {}},
		{name: "running", prepare: func(state *State) {
			state.Start(epoch, true)
			state.Tick(epoch.Add(100 * time.Second))
		}},
		{name: "paused", prepare: func(state *State) {
			state.Start(epoch, true)
			state.Tick(epoch.Add(100 * time.Second))
			state.Pause()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newDefaultState()
			tt.prepare(&state)

			intents := state.Reset()

			assert.False(t, state.Running)
			assert.True(t, state.Deadline.IsZero())
			assert.Equal(t, 1500, state.Remaining)
			assert.Equal(t, 1500, state.Saved[Focus])
			assert.Equal(t, []Cue{CueAcknowledge}, cues(intents))
		})
	}
}

func TestTickRoundsUp(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	state.Tick(epoch.Add(100*time.Millisecond))
	assert.Equal(t, 1500, state.Remaining)

	state.Tick(epoch.Add(time.Second))
	assert.Equal(t, 1499, state.Remaining)
	assert.Equal(t, 1499, state.Saved[Focus])

	state.Tick(epoch.Add(1499*time.Second + 500*time.Millisecond))
	assert.Equal(t, 1, state.Remaining)
	assert.True(t, state.Running)
}

func TestTickWhileStoppedIsNoOp(t *testing.T) {
	state := newDefaultState()
	assert.Empty(t, state.Tick(epoch.Add(time.Hour)))
	assert.Equal(t, 1500, state.Remaining)
}

func TestTickClampsBackwardsClock(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	state.Tick(epoch.Add(-time.Hour))

	assert.Equal(t, 1500, state.Remaining)
}

func TestFocusExpiryTransitionsToShortBreak(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	intents := state.Tick(state.Deadline)

	assert.Equal(t, ShortBreak, state.Phase)
	assert.Equal(t, 300, state.Remaining)
	assert.Equal(t, 300, state.Saved[ShortBreak])
	assert.False(t, state.Running)
	assert.True(t, state.Deadline.IsZero())
	assert.Equal(t, 1, state.CompletedFocus)

	require.Equal(t, []IntentKind{IntentPlaySound, IntentNotify, IntentScheduleResume}, kinds(intents))
	assert.Equal(t, CueBreakStart, intents[0].Cue)
	assert.Equal(t, Notification{Title: "FocusFlow Timer", Body: "Great work! Time for a break."}, intents[1].Notification)
	assert.Equal(t, 3*time.Second, intents[2].Delay)
}

func TestBreakExpiryReturnsToFocus(t *testing.T) {
	state := newDefaultState()
	state.SwitchPhase(ShortBreak)
	state.Start(epoch, true)

	intents := state.Tick(epoch.Add(300 * time.Second))

	assert.Equal(t, Focus, state.Phase)
	assert.Equal(t, 1500, state.Remaining)
	assert.Equal(t, 0, state.CompletedFocus, "break expiry does not count")
	require.Len(t, intents, 3)
	assert.Equal(t, CueBackToWork, intents[0].Cue)
	assert.Equal(t, "Break time is over. Ready to focus?", intents[1].Notification.Body)
}

func TestClockSkewFiresTransitionOnce(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	intents := state.Tick(state.Deadline.Add(50 * time.Second))

	assert.Equal(t, ShortBreak, state.Phase)
	assert.Equal(t, 300, state.Remaining)
	assert.Equal(t, 1, state.CompletedFocus)
	assert.Len(t, kinds(intents), 3)

	assert.Empty(t, state.Tick(epoch.Add(time.Hour)), "stopped after transition")
	assert.Equal(t, 1, state.CompletedFocus)
}

func TestLongBreakAfterEveryFourthFocus(t *testing.T) {
	state := newDefaultState()
	now := epoch

	var breaks []Phase
	for i := 0; i < 8; i++ {
		require.Equal(t, Focus, state.Phase)
		state.Start(now, false)
		now = state.Deadline
		state.Tick(now)
		breaks = append(breaks, state.Phase)

		state.Start(now, false)
		now = state.Deadline
		state.Tick(now)
	}

	assert.Equal(t, []Phase{
		ShortBreak, ShortBreak, ShortBreak, LongBreak,
		ShortBreak, ShortBreak, ShortBreak, LongBreak,
	}, breaks)
	assert.Equal(t, 8, state.CompletedFocus)
}

func TestAutomaticTransitionIgnoresStaleSavedTime(t *testing.T) {
	state := newDefaultState()
	state.SwitchPhase(ShortBreak)
	state.Start(epoch, true)
	state.Tick(epoch.Add(100 * time.Second))
	state.Pause()
	require.Equal(t, 200, state.Saved[ShortBreak])

	state.SwitchPhase(Focus)
	state.Start(epoch, true)
	state.Tick(state.Deadline)

	assert.Equal(t, ShortBreak, state.Phase)
	assert.Equal(t, 300, state.Remaining, "automatic transitions start at the full length")
}

func TestSwitchPhaseRestoresSavedTime(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)
	state.Tick(epoch.Add(600 * time.Second))
	state.Pause()
	require.Equal(t, 900, state.Remaining)

	intents := state.SwitchPhase(ShortBreak)
	assert.Equal(t, ShortBreak, state.Phase)
	assert.Equal(t, 300, state.Remaining)
	assert.Equal(t, []Cue{CueAcknowledge}, cues(intents))

	state.SwitchPhase(Focus)
	assert.Equal(t, Focus, state.Phase)
	assert.Equal(t, 900, state.Remaining)
}

func TestSwitchPhaseWhileRunningPersistsProgress(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)
	state.Tick(epoch.Add(25 * time.Second))

	state.SwitchPhase(LongBreak)

	assert.False(t, state.Running)
	assert.True(t, state.Deadline.IsZero())
	assert.Equal(t, LongBreak, state.Phase)
	assert.Equal(t, 900, state.Remaining)
	assert.Equal(t, 1475, state.Saved[Focus])
}

func TestSwitchPhaseFallsBackToDefault(t *testing.T) {
	state := newDefaultState()
	delete(state.Saved, LongBreak)

	state.SwitchPhase(LongBreak)

	assert.Equal(t, 900, state.Remaining)
}

func TestSwitchPhaseIgnoresUnknownPhase(t *testing.T) {
	state := newDefaultState()
	assert.Empty(t, state.SwitchPhase(Phase(42)))
	assert.Equal(t, Focus, state.Phase)
}

func TestProgress(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	state.Tick(epoch.Add(750 * time.Second))
	assert.InDelta(t, 0.5, state.Progress(), 1e-9)

	state.Tick(epoch.Add(1499 * time.Second))
	assert.InDelta(t, 1499.0/1500.0, state.Progress(), 1e-9)
}

func TestAutoResumeDisabled(t *testing.T) {
	config := model.DefaultPomodoroConfig()
	config.AutoResume = false
	state := NewState(config)
	state.Start(epoch, true)

	intents := state.Tick(state.Deadline)

	assert.Equal(t, []IntentKind{IntentPlaySound, IntentNotify}, kinds(intents))
}

func TestReconfigure(t *testing.T) {
	state := newDefaultState()
	state.SwitchPhase(ShortBreak)
	state.Start(epoch, true)
	state.Tick(epoch.Add(60 * time.Second))
	state.Pause()
	state.SwitchPhase(Focus)

	config := model.DefaultPomodoroConfig()
	config.Durations.Focus = 50 * time.Minute
	config.Durations.ShortBreak = 2 * time.Minute
	state.Reconfigure(config, epoch)

	assert.Equal(t, 3000, state.Remaining, "untouched phase moves to the new length")
	assert.Equal(t, 120, state.Saved[ShortBreak], "partial progress is clamped")
	assert.Equal(t, 900, state.Saved[LongBreak])
}

func TestReconfigureWhileRunningClampsDeadline(t *testing.T) {
	state := newDefaultState()
	state.Start(epoch, true)

	config := model.DefaultPomodoroConfig()
	config.Durations.Focus = 10 * time.Minute
	state.Reconfigure(config, epoch.Add(time.Second))

	assert.True(t, state.Running)
	assert.Equal(t, 600, state.Remaining)
	assert.Equal(t, epoch.Add(601*time.Second), state.Deadline)
}

func TestPhaseParsing(t *testing.T) {
	for _, phase := range Phases {
		parsed, err := ParsePhase(phase.String())
		require.NoError(t, err)
		assert.Equal(t, phase, parsed)
	}

	parsed, err := ParsePhase("Short-Break")
	require.NoError(t, err)
	assert.Equal(t, ShortBreak, parsed)

	_, err = ParsePhase("nap")
	assert.Error(t, err)
}
