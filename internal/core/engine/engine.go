// Package engine implements the pomodoro timer engine: the focus/break state
// machine, the deadline-corrected countdown loop and the dispatch of audio,
// notification and auto-resume intents produced at phase boundaries.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/model"
)

// SoundPlayer plays audio cues. Implementations must not block.
type SoundPlayer interface {
	Play(cue Cue)
}

// Notifier shows desktop notifications. Implementations must not block.
type Notifier interface {
	Notify(notification Notification)
}

// Options contains collaborators for the Engine. Nil fields get no-op defaults.
type Options struct {
	Clock    clock.Clock
	Sound    SoundPlayer
	Notifier Notifier
	Logger   *zap.Logger
}

// Engine owns the timer state. Commands, ticks and the delayed auto-resume
// are serialized by a single mutex; side effects run after it is released.
type Engine struct {
	mu     sync.Mutex
	config model.PomodoroConfig
	state  State

	clock    clock.Clock
	sound    SoundPlayer
	notifier Notifier
	logger   *zap.Logger

	resume    clock.Timer
	resumeGen uint64

	events []chan Event
	closed bool
}

// New creates an Engine in the initial Focus state.
func New(config model.PomodoroConfig, options Options) *Engine {
	config = config.Normalize()
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Engine{
		config:   config,
		state:    NewState(config),
		clock:    options.Clock,
		sound:    options.Sound,
		notifier: options.Notifier,
		logger:   options.Logger.Named("engine"),
	}
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the engine.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start begins or resumes the countdown of the current phase.
func (engine *Engine) Start() {
	engine.command("start", func(state *State, now time.Time) []Intent {
		return state.Start(now, true)
	})
}

// Pause stops the countdown, keeping the remaining time of the phase.
func (engine *Engine) Pause() {
	engine.command("pause", func(state *State, _ time.Time) []Intent {
		return state.Pause()
	})
}

// Toggle pauses a running timer and starts a stopped one.
func (engine *Engine) Toggle() {
	engine.command("toggle", func(state *State, now time.Time) []Intent {
		if state.Running {
			return state.Pause()
		}
		return state.Start(now, true)
	})
}

// Reset stops the countdown and rewinds the current phase.
func (engine *Engine) Reset() {
	engine.command("reset", func(state *State, _ time.Time) []Intent {
		return state.Reset()
	})
}

// SwitchPhase moves to target manually. The engine accepts the switch while
// running; front ends decide whether to offer it.
func (engine *Engine) SwitchPhase(target Phase) {
	engine.command("switch", func(state *State, _ time.Time) []Intent {
		return state.SwitchPhase(target)
	})
}

// Tick advances the countdown to now.
func (engine *Engine) Tick(now time.Time) {
	engine.mu.Lock()
	if !engine.state.Running {
		engine.mu.Unlock()
		return
	}
	expiring := engine.state.Phase
	intents := engine.state.Tick(now)
	effects := engine.scheduleLocked(intents)

	if len(intents) > 0 {
		engine.logger.Debug("phase completed",
			zap.Stringer("from", expiring),
			zap.Stringer("to", engine.state.Phase),
			zap.Int("completed_focus", engine.state.CompletedFocus))
		engine.emitLocked(Event{Type: EventTransition, Snapshot: engine.snapshotLocked(), From: expiring, At: now})
	} else {
		engine.emitLocked(Event{Type: EventProgress, Snapshot: engine.snapshotLocked(), At: now})
	}
	engine.mu.Unlock()

	engine.dispatch(effects)
}

// Run ticks the engine until ctx is cancelled.
func (engine *Engine) Run(ctx context.Context) {
	engine.mu.Lock()
	interval := engine.config.TickInterval
	engine.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			engine.Tick(engine.clock.Now())
		}
	}
}

// UpdateConfig applies new durations and auto-resume settings. The tick
// interval of an already running loop is not changed.
func (engine *Engine) UpdateConfig(config model.PomodoroConfig) {
	config = config.Normalize()

	engine.mu.Lock()
	engine.config = config
	engine.state.Reconfigure(config, engine.clock.Now())
	if !config.AutoResume {
		engine.cancelResumeLocked()
	}
	engine.emitLocked(Event{Type: EventStateChange, Snapshot: engine.snapshotLocked(), At: engine.clock.Now()})
	engine.mu.Unlock()
}

// Close cancels a pending auto-resume and closes observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.cancelResumeLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a consistent copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Phase returns the current phase.
func (engine *Engine) Phase() Phase {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.Phase
}

// Running reports whether the countdown is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.Running
}

// Remaining returns the seconds left in the current phase.
func (engine *Engine) Remaining() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.Remaining
}

// CompletedFocusSessions returns the number of focus phases that ran out.
func (engine *Engine) CompletedFocusSessions() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.CompletedFocus
}

// Progress returns the elapsed fraction of the current phase.
func (engine *Engine) Progress() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.Progress()
}

// ResumePending reports whether an automatic resume is armed.
func (engine *Engine) ResumePending() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.resume != nil
}

// command runs a manual command. Any manual command cancels a pending
// auto-resume before mutating state.
func (engine *Engine) command(name string, mutate func(state *State, now time.Time) []Intent) {
	engine.mu.Lock()
	engine.cancelResumeLocked()
	now := engine.clock.Now()
	intents := mutate(&engine.state, now)
	effects := engine.scheduleLocked(intents)
	if len(intents) > 0 {
		engine.logger.Debug("command applied",
			zap.String("command", name),
			zap.Stringer("phase", engine.state.Phase),
			zap.Bool("running", engine.state.Running),
			zap.Int("remaining", engine.state.Remaining))
		engine.emitLocked(Event{Type: EventStateChange, Snapshot: engine.snapshotLocked(), At: now})
	}
	engine.mu.Unlock()

	engine.dispatch(effects)
}

// scheduleLocked arms scheduling intents and returns the effects that must
// run outside the lock.
func (engine *Engine) scheduleLocked(intents []Intent) []Intent {
	effects := intents[:0:0]
	for _, intent := range intents {
		if intent.Kind == IntentScheduleResume {
			engine.armResumeLocked(intent.Delay)
			continue
		}
		effects = append(effects, intent)
	}
	return effects
}

func (engine *Engine) armResumeLocked(delay time.Duration) {
	engine.cancelResumeLocked()
	gen := engine.resumeGen
	engine.resume = engine.clock.AfterFunc(delay, func() {
		engine.autoResume(gen)
	})
}

func (engine *Engine) cancelResumeLocked() {
	if engine.resume != nil {
		engine.resume.Stop()
		engine.resume = nil
	}
	engine.resumeGen++
}

// autoResume starts the new phase unless a manual command intervened since
// the resume was armed.
func (engine *Engine) autoResume(gen uint64) {
	engine.mu.Lock()
	if engine.closed || engine.resume == nil || gen != engine.resumeGen {
		engine.mu.Unlock()
		return
	}
	engine.resume = nil
	now := engine.clock.Now()
	engine.state.Start(now, false)
	engine.logger.Debug("auto-resumed", zap.Stringer("phase", engine.state.Phase))
	engine.emitLocked(Event{Type: EventStateChange, Snapshot: engine.snapshotLocked(), At: now})
	engine.mu.Unlock()
}

func (engine *Engine) dispatch(effects []Intent) {
	for _, intent := range effects {
		switch intent.Kind {
		case IntentPlaySound:
			if engine.sound != nil {
				engine.sound.Play(intent.Cue)
			}
		case IntentNotify:
			if engine.notifier != nil {
				engine.notifier.Notify(intent.Notification)
			}
		}
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	snapshot := engine.state.snapshot()
	snapshot.ResumePending = engine.resume != nil
	return snapshot
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
