package model

import "time"

// Default durations for each phase of the cycle.
const (
	DefaultFocusDuration      = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute

	DefaultLongBreakEvery  = 4
	DefaultAutoResumeDelay = 3 * time.Second
	DefaultTickInterval    = 250 * time.Millisecond
)

// Durations holds the full length of every phase.
type Durations struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// PomodoroConfig contains runtime settings for the timer engine.
type PomodoroConfig struct {
	Durations Durations

	// LongBreakEvery is the number of completed focus sessions between long breaks.
	LongBreakEvery int

	AutoResume      bool
	AutoResumeDelay time.Duration
	TickInterval    time.Duration
}

// DefaultPomodoroConfig returns the classic 25/5/15 cycle with a long break
// after every fourth focus session.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		Durations: Durations{
			Focus:      DefaultFocusDuration,
			ShortBreak: DefaultShortBreakDuration,
			LongBreak:  DefaultLongBreakDuration,
		},
		LongBreakEvery:  DefaultLongBreakEvery,
		AutoResume:      true,
		AutoResumeDelay: DefaultAutoResumeDelay,
		TickInterval:    DefaultTickInterval,
	}
}

// Normalize replaces non-positive values with defaults. Durations are
// truncated to whole seconds with a one second minimum.
func (config PomodoroConfig) Normalize() PomodoroConfig {
	defaults := DefaultPomodoroConfig()

	config.Durations.Focus = normalizeDuration(config.Durations.Focus, defaults.Durations.Focus)
	config.Durations.ShortBreak = normalizeDuration(config.Durations.ShortBreak, defaults.Durations.ShortBreak)
	config.Durations.LongBreak = normalizeDuration(config.Durations.LongBreak, defaults.Durations.LongBreak)

	if config.LongBreakEvery <= 0 {
		config.LongBreakEvery = defaults.LongBreakEvery
	}
	if config.AutoResumeDelay <= 0 {
		config.AutoResumeDelay = defaults.AutoResumeDelay
	}
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	return config
}

func normalizeDuration(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	value = value.Truncate(time.Second)
	if value < time.Second {
		return time.Second
	}
	return value
}
