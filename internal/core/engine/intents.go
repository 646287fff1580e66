package engine

import "time"

// Cue identifies an audio cue the engine wants played.
type Cue int

const (
	CueAcknowledge Cue = iota
	CueBreakStart
	CueBackToWork
)

func (cue Cue) String() string {
	switch cue {
	case CueAcknowledge:
		return "acknowledge"
	case CueBreakStart:
		return "break_start"
	case CueBackToWork:
		return "back_to_work"
	default:
		return "unknown"
	}
}

// Notification is a desktop notification request.
type Notification struct {
	Title string
	Body  string
}

// IntentKind describes what kind of side effect an Intent asks for.
type IntentKind string

const (
	IntentPlaySound      IntentKind = "play_sound"
	IntentNotify         IntentKind = "notify"
	IntentScheduleResume IntentKind = "schedule_resume"
)

// Intent is data describing a side effect produced by a state transition.
// Only the field matching Kind is meaningful.
type Intent struct {
	Kind         IntentKind
	Cue          Cue
	Notification Notification
	Delay        time.Duration
}

const notificationTitle = "FocusFlow Timer"

func soundIntent(cue Cue) Intent {
	return Intent{Kind: IntentPlaySound, Cue: cue}
}

func completionIntent(expired Phase) Intent {
	body := "Break time is over. Ready to focus?"
	if expired == Focus {
		body = "Great work! Time for a break."
	}
	return Intent{Kind: IntentNotify, Notification: Notification{Title: notificationTitle, Body: body}}
}

func resumeIntent(delay time.Duration) Intent {
	return Intent{Kind: IntentScheduleResume, Delay: delay}
}
