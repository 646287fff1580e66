package engine

import (
	"time"

	"focusflow/internal/core/model"
)

// State is the pure timer state machine. Every mutation returns the intents
// the caller must execute; State itself never performs side effects and is not
// safe for concurrent use.
type State struct {
	Phase          Phase
	Running        bool
	Remaining      int
	Saved          map[Phase]int
	CompletedFocus int

	// Deadline is the instant Remaining reaches zero. Zero when not running.
	Deadline time.Time

	durations       map[Phase]int
	longBreakEvery  int
	autoResume      bool
	autoResumeDelay time.Duration
}

// NewState returns the initial state: Focus, stopped, full duration.
func NewState(config model.PomodoroConfig) State {
	state := State{
		Phase: Focus,
		Saved: make(map[Phase]int, len(Phases)),
	}
	state.applyConfig(config.Normalize())
	for _, phase := range Phases {
		state.Saved[phase] = state.Default(phase)
	}
	state.Remaining = state.Default(Focus)
	return state
}

// Default returns the full length of phase in seconds.
func (state *State) Default(phase Phase) int {
	return state.durations[phase]
}

// Progress is the elapsed fraction of the current phase in [0, 1].
func (state *State) Progress() float64 {
	total := state.Default(state.Phase)
	if total <= 0 {
		return 0
	}
	progress := float64(total-state.Remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Start begins the countdown. acknowledge controls whether the button cue is
// requested; the automatic resume after a transition starts silently.
func (state *State) Start(now time.Time, acknowledge bool) []Intent {
	if state.Running {
		return nil
	}
	state.Running = true
	state.Deadline = now.Add(time.Duration(state.Remaining) * time.Second)
	if !acknowledge {
		return nil
	}
	return []Intent{soundIntent(CueAcknowledge)}
}

// Pause stops the countdown and remembers the remaining time of the phase.
func (state *State) Pause() []Intent {
	if !state.Running {
		return nil
	}
	state.stop()
	state.Saved[state.Phase] = state.Remaining
	return []Intent{soundIntent(CueAcknowledge)}
}

// Reset stops the countdown and rewinds the current phase to its full length.
func (state *State) Reset() []Intent {
	state.stop()
	state.Remaining = state.Default(state.Phase)
	state.Saved[state.Phase] = state.Remaining
	return []Intent{soundIntent(CueAcknowledge)}
}

// SwitchPhase moves to target manually, resuming wherever target was left.
// Unknown phases are ignored.
func (state *State) SwitchPhase(target Phase) []Intent {
	if !target.Valid() {
		return nil
	}
	state.Saved[state.Phase] = state.Remaining
	state.stop()

	state.Phase = target
	remaining, ok := state.Saved[target]
	if !ok || remaining <= 0 || remaining > state.Default(target) {
		remaining = state.Default(target)
	}
	state.Remaining = remaining
	return []Intent{soundIntent(CueAcknowledge)}
}

// Tick recomputes the remaining time from the deadline. When the phase has
// run out it performs the automatic transition.
func (state *State) Tick(now time.Time) []Intent {
	if !state.Running {
		return nil
	}
	remaining := secondsUntil(state.Deadline, now)
	if total := state.Default(state.Phase); remaining > total {
		remaining = total
	}
	state.Remaining = remaining
	state.Saved[state.Phase] = remaining
	if remaining > 0 {
		return nil
	}
	return state.expire()
}

// NextPhase reports the phase an expiry of the current phase would lead to.
func (state *State) NextPhase() Phase {
	if state.Phase != Focus {
		return Focus
	}
	if (state.CompletedFocus+1)%state.longBreakEvery == 0 {
		return LongBreak
	}
	return ShortBreak
}

// Reconfigure applies new durations and cadence. Phases still at their old
// full length move to the new full length; partial progress is kept but
// clamped to the new length.
func (state *State) Reconfigure(config model.PomodoroConfig, now time.Time) {
	previous := make(map[Phase]int, len(state.durations))
	for phase, seconds := range state.durations {
		previous[phase] = seconds
	}
	state.applyConfig(config.Normalize())

	for _, phase := range Phases {
		saved, ok := state.Saved[phase]
		if !ok || saved == previous[phase] || saved > state.Default(phase) || saved <= 0 {
			state.Saved[phase] = state.Default(phase)
		}
	}

	if !state.Running {
		state.Remaining = state.Saved[state.Phase]
		return
	}
	if total := state.Default(state.Phase); state.Remaining > total {
		state.Remaining = total
		state.Saved[state.Phase] = total
		state.Deadline = now.Add(time.Duration(total) * time.Second)
	}
}

func (state *State) expire() []Intent {
	state.stop()

	expired := state.Phase
	next := state.NextPhase()
	intents := make([]Intent, 0, 3)
	if expired == Focus {
		state.CompletedFocus++
		intents = append(intents, soundIntent(CueBreakStart))
	} else {
		intents = append(intents, soundIntent(CueBackToWork))
	}

	state.Phase = next
	state.Remaining = state.Default(next)
	state.Saved[next] = state.Remaining

	intents = append(intents, completionIntent(expired))
	if state.autoResume {
		intents = append(intents, resumeIntent(state.autoResumeDelay))
	}
	return intents
}

func (state *State) stop() {
	state.Running = false
	state.Deadline = time.Time{}
}

func (state *State) applyConfig(config model.PomodoroConfig) {
	state.durations = map[Phase]int{
		Focus:      int(config.Durations.Focus / time.Second),
		ShortBreak: int(config.Durations.ShortBreak / time.Second),
		LongBreak:  int(config.Durations.LongBreak / time.Second),
	}
	state.longBreakEvery = config.LongBreakEvery
	state.autoResume = config.AutoResume
	state.autoResumeDelay = config.AutoResumeDelay
}

// secondsUntil rounds the time left up to whole seconds, clamped at zero.
func secondsUntil(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
