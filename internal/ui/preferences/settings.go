package preferences

import (
	"time"

	"focusflow/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakEvery     int

	AutoResume      bool
	AutoResumeDelay time.Duration

	NotificationsEnabled bool
	SoundEnabled         bool
	Volume               float64

	LaunchAtLogin bool
	DarkMode      bool
}

// DefaultSettings returns default settings for FocusFlow.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:        model.DefaultFocusDuration,
		ShortBreakDuration:   model.DefaultShortBreakDuration,
		LongBreakDuration:    model.DefaultLongBreakDuration,
		LongBreakEvery:       model.DefaultLongBreakEvery,
		AutoResume:           true,
		AutoResumeDelay:      model.DefaultAutoResumeDelay,
		NotificationsEnabled: true,
		SoundEnabled:         true,
		Volume:               1,
		LaunchAtLogin:        false,
		DarkMode:             false,
	}
}

// PomodoroConfig converts settings to the engine configuration.
func (settings Settings) PomodoroConfig(tickInterval time.Duration) model.PomodoroConfig {
	return model.PomodoroConfig{
		Durations: model.Durations{
			Focus:      settings.FocusDuration,
			ShortBreak: settings.ShortBreakDuration,
			LongBreak:  settings.LongBreakDuration,
		},
		LongBreakEvery:  settings.LongBreakEvery,
		AutoResume:      settings.AutoResume,
		AutoResumeDelay: settings.AutoResumeDelay,
		TickInterval:    tickInterval,
	}.Normalize()
}
