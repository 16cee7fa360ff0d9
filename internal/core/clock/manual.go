package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock and Scheduler whose time only moves when Advance is called.
// Due callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	nextID int
}

type manualTimer struct {
	owner    *Manual
	id       int
	due      time.Time
	callback func()
	stopped  bool
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// AfterFunc registers callback to run once the clock has advanced by delay.
func (manual *Manual) AfterFunc(delay time.Duration, callback func()) Timer {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.nextID++
	timer := &manualTimer{
		owner:    manual,
		id:       manual.nextID,
		due:      manual.now.Add(delay),
		callback: callback,
	}
	manual.timers = append(manual.timers, timer)
	return timer
}

// Pending returns the number of callbacks waiting to fire.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	count := 0
	for _, timer := range manual.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

// Advance moves the clock forward, firing every callback that falls due on the
// way in due order. Callbacks scheduled while advancing fire too if they fall
// inside the window.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	target := manual.now.Add(delta)
	manual.mu.Unlock()

	for {
		timer := manual.popDue(target)
		if timer == nil {
			break
		}
		timer.callback()
	}

	manual.mu.Lock()
	manual.now = target
	manual.mu.Unlock()
}

// Set jumps the clock to an absolute time without firing callbacks.
func (manual *Manual) Set(now time.Time) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.now = now
}

func (manual *Manual) popDue(target time.Time) *manualTimer {
	manual.mu.Lock()
	defer manual.mu.Unlock()

	live := manual.timers[:0]
	for _, timer := range manual.timers {
		if !timer.stopped {
			live = append(live, timer)
		}
	}
	manual.timers = live
	if len(manual.timers) == 0 {
		return nil
	}

	sort.SliceStable(manual.timers, func(i, j int) bool {
		if manual.timers[i].due.Equal(manual.timers[j].due) {
			return manual.timers[i].id < manual.timers[j].id
		}
		return manual.timers[i].due.Before(manual.timers[j].due)
	})
	first := manual.timers[0]
	if first.due.After(target) {
		return nil
	}
	manual.timers = manual.timers[1:]
	if first.due.After(manual.now) {
		manual.now = first.due
	}
	return first
}

func (timer *manualTimer) Stop() bool {
	timer.owner.mu.Lock()
	defer timer.owner.mu.Unlock()
	if timer.stopped {
		return false
	}
	for _, pending := range timer.owner.timers {
		if pending == timer {
			timer.stopped = true
			return true
		}
	}
	return false
}
