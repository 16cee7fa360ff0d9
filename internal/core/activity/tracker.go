package activity

import (
	"time"

	"dangerouswriter/internal/core/clock"
)

// Tracker remembers when the user last typed.
//
// With grace enabled the stored time is pushed into the future by the grace
// buffer, so it may read up to that much ahead of the wall clock.
type Tracker struct {
	clock        clock.Clock
	lastActivity time.Time
	graceEnabled bool
	graceBuffer  time.Duration
}

// New creates a Tracker armed at the current time, without grace applied.
func New(source clock.Clock, graceEnabled bool, graceBuffer time.Duration) *Tracker {
	if source == nil {
		source = clock.System
	}
	return &Tracker{
		clock:        source,
		lastActivity: source.Now(),
		graceEnabled: graceEnabled,
		graceBuffer:  graceBuffer,
	}
}

// RecordKeystroke marks the user as active now, plus the grace buffer when enabled.
func (tracker *Tracker) RecordKeystroke() {
	tracker.lastActivity = tracker.clock.Now()
	if tracker.graceEnabled {
		tracker.lastActivity = tracker.lastActivity.Add(tracker.graceBuffer)
	}
}

// Rearm resets the activity time to now without grace.
func (tracker *Tracker) Rearm() {
	tracker.lastActivity = tracker.clock.Now()
}

// Remaining returns timeout - (now - lastActivity). It goes negative once the
// user has been idle for longer than timeout.
func (tracker *Tracker) Remaining(timeout time.Duration) time.Duration {
	return timeout - tracker.clock.Now().Sub(tracker.lastActivity)
}

// LastActivity returns the stored activity time, grace included.
func (tracker *Tracker) LastActivity() time.Time {
	return tracker.lastActivity
}

// SetGraceEnabled toggles the grace buffer for subsequent keystrokes.
func (tracker *Tracker) SetGraceEnabled(enabled bool) {
	tracker.graceEnabled = enabled
}

// GraceEnabled reports whether keystrokes get the grace buffer.
func (tracker *Tracker) GraceEnabled() bool {
	return tracker.graceEnabled
}
