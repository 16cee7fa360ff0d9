package idlemonitor

import (
	"fmt"
	"time"
)

// EventType defines the type of monitor event.
type EventType string

const (
	EventProgress EventType = "progress"
	EventErase    EventType = "erase"
)

// Event represents a monitor update for observers.
type Event struct {
	Type      EventType
	Remaining time.Duration
	Warning   bool
	At        time.Time
}

// FormatRemaining renders remaining idle time for the countdown label,
// floored at zero with one decimal place.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("⏳ %.1fs", remaining.Seconds())
}
