package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually driven Clock. Callbacks registered with AfterFunc run
// synchronously from Advance or Set once their due time is reached.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	nextSeq int
}

type fakeTimer struct {
	clock *Fake
	due   time.Time
	seq   int
	fn    func()
	done  bool
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc schedules f to run once the fake time passes d from now.
func (fake *Fake) AfterFunc(d time.Duration, f func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	timer := &fakeTimer{clock: fake, due: fake.now.Add(d), seq: fake.nextSeq, fn: f}
	fake.nextSeq++
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward by d and fires due callbacks.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(d)
	fake.mu.Unlock()
	fake.Set(target)
}

// Set moves the clock to t and fires due callbacks in due order. Moving
// backwards only changes Now.
func (fake *Fake) Set(t time.Time) {
	fake.mu.Lock()
	fake.now = t
	due := fake.collectDueLocked()
	fake.mu.Unlock()

	for _, timer := range due {
		timer.fn()
	}
}

// Pending reports how many callbacks are armed and not yet fired or stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	count := 0
	for _, timer := range fake.timers {
		if !timer.done {
			count++
		}
	}
	return count
}

func (fake *Fake) collectDueLocked() []*fakeTimer {
	var due []*fakeTimer
	remaining := fake.timers[:0]
	for _, timer := range fake.timers {
		if timer.done {
			continue
		}
		if !timer.due.After(fake.now) {
			timer.done = true
			due = append(due, timer)
			continue
		}
		remaining = append(remaining, timer)
	}
	fake.timers = remaining
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due
}

// Stop cancels the callback. It reports whether the call prevented it from
// firing.
func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	if timer.done {
		return false
	}
	timer.done = true
	return true
}
