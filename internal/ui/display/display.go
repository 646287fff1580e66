// Package display formats engine state for the desktop and terminal faces.
package display

import (
	"fmt"
	"math"

	"focusflow/internal/core/engine"
)

// AppName is the product name shown in titles.
const AppName = "FocusFlow"

// FormatClock renders seconds as zero-padded MM:SS. Minutes are not wrapped
// at an hour, so 3600 renders as 60:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseLabel is the heading shown above the clock.
func PhaseLabel(phase engine.Phase) string {
	switch phase {
	case engine.ShortBreak:
		return "Short Break"
	case engine.LongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// ModeText collapses both breaks into a single "Break Time".
func ModeText(phase engine.Phase) string {
	if phase.IsBreak() {
		return "Break Time"
	}
	return "Focus Time"
}

// WindowTitle mirrors the countdown in the window title.
func WindowTitle(snapshot engine.Snapshot) string {
	return fmt.Sprintf("%s - %s | %s", FormatClock(snapshot.Remaining), ModeText(snapshot.Phase), AppName)
}

// SessionLine is the subtitle under the clock.
func SessionLine(snapshot engine.Snapshot) string {
	return fmt.Sprintf("Session %d • %s", snapshot.CompletedFocus, ModeText(snapshot.Phase))
}

// Percent renders progress in [0, 1] as a whole percentage.
func Percent(progress float64) string {
	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return fmt.Sprintf("%d%%", int(math.Round(progress*100)))
}

// StatusLine is a compact one-line summary for the tray.
func StatusLine(snapshot engine.Snapshot) string {
	state := "paused"
	switch {
	case snapshot.Running:
		state = "running"
	case snapshot.ResumePending:
		state = "starting soon"
	case snapshot.Remaining == snapshot.Duration:
		state = "ready"
	}
	return fmt.Sprintf("%s %s (%s)", PhaseLabel(snapshot.Phase), FormatClock(snapshot.Remaining), state)
}

// ToggleLabel is the caption of the start/pause control.
func ToggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}
