package engine

import (
	"fmt"
	"strings"
)

// Phase is one step of the focus/break cycle.
type Phase int

const (
	Focus Phase = iota
	ShortBreak
	LongBreak
)

// Phases lists every phase in display order.
var Phases = []Phase{Focus, ShortBreak, LongBreak}

// Valid reports whether the phase is one of the known phases.
func (phase Phase) Valid() bool {
	return phase >= Focus && phase <= LongBreak
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == ShortBreak || phase == LongBreak
}

func (phase Phase) String() string {
	switch phase {
	case Focus:
		return "focus"
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	default:
		return fmt.Sprintf("phase(%d)", int(phase))
	}
}

// ParsePhase converts a phase name back to a Phase. Hyphens and case are ignored.
func ParsePhase(value string) (Phase, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	switch normalized {
	case "focus", "pomodoro", "work":
		return Focus, nil
	case "short_break", "short", "shortbreak":
		return ShortBreak, nil
	case "long_break", "long", "longbreak":
		return LongBreak, nil
	}
	return Focus, fmt.Errorf("unknown phase %q", value)
}
