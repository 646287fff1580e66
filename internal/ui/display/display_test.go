package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"focusflow/internal/core/engine"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 1500, want: "25:00"},
		{seconds: 299, want: "04:59"},
		{seconds: 61, want: "01:01"},
		{seconds: 0, want: "00:00"},
		{seconds: -5, want: "00:00"},
		{seconds: 3600, want: "60:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds))
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Focus Time", PhaseLabel(engine.Focus))
	assert.Equal(t, "Short Break", PhaseLabel(engine.ShortBreak))
	assert.Equal(t, "Long Break", PhaseLabel(engine.LongBreak))

	assert.Equal(t, "Focus Time", ModeText(engine.Focus))
	assert.Equal(t, "Break Time", ModeText(engine.ShortBreak))
	assert.Equal(t, "Break Time", ModeText(engine.LongBreak))

	assert.Equal(t, "Start", ToggleLabel(false))
	assert.Equal(t, "Pause", ToggleLabel(true))
}

func TestWindowTitleAndSessionLine(t *testing.T) {
	snapshot := engine.Snapshot{Phase: engine.ShortBreak, Remaining: 299, Duration: 300, CompletedFocus: 3}

	assert.Equal(t, "04:59 - Break Time | FocusFlow", WindowTitle(snapshot))
	assert.Equal(t, "Session 3 • Break Time", SessionLine(snapshot))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "40%", Percent(0.4))
	assert.Equal(t, "100%", Percent(1.5))
	assert.Equal(t, "0%", Percent(-1))
	assert.Equal(t, "0%", Percent(math.NaN()))
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name     string
		snapshot engine.Snapshot
		want     string
	}{
		{
			name:     "ready",
			snapshot: engine.Snapshot{Phase: engine.Focus, Remaining: 1500, Duration: 1500},
			want:     "Focus Time 25:00 (ready)",
		},
		{
			name:     "running",
			snapshot: engine.Snapshot{Phase: engine.Focus, Running: true, Remaining: 900, Duration: 1500},
			want:     "Focus Time 15:00 (running)",
		},
		{
			name:     "paused",
			snapshot: engine.Snapshot{Phase: engine.LongBreak, Remaining: 100, Duration: 900},
			want:     "Long Break 01:40 (paused)",
		},
		{
			name:     "resume pending",
			snapshot: engine.Snapshot{Phase: engine.ShortBreak, Remaining: 300, Duration: 300, ResumePending: true},
			want:     "Short Break 05:00 (starting soon)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLine(tt.snapshot))
		})
	}
}
