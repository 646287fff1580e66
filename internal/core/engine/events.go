package engine

import "time"

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventTransition  EventType = "transition"
)

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// From is the phase that expired; set on EventTransition only.
	From Phase
	At   time.Time
}

// Snapshot is a consistent copy of the engine state for rendering.
type Snapshot struct {
	Phase          Phase
	Running        bool
	Remaining      int
	Duration       int
	Saved          map[Phase]int
	CompletedFocus int
	Progress       float64
	Deadline       time.Time
	ResumePending  bool
}

func (state *State) snapshot() Snapshot {
	saved := make(map[Phase]int, len(state.Saved))
	for phase, seconds := range state.Saved {
		saved[phase] = seconds
	}
	return Snapshot{
		Phase:          state.Phase,
		Running:        state.Running,
		Remaining:      state.Remaining,
		Duration:       state.Default(state.Phase),
		Saved:          saved,
		CompletedFocus: state.CompletedFocus,
		Progress:       state.Progress(),
		Deadline:       state.Deadline,
	}
}
