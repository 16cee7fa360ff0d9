package model

import "time"

// Timeout bounds in whole seconds.
const (
	MinTimeoutSeconds     = 3
	MaxTimeoutSeconds     = 60
	DefaultTimeoutSeconds = 5
)

// IntroText is pre-filled into the buffer when the application starts.
const IntroText = "Start typing. If you stop for 5s, everything gets erased.\n\n"

// SessionConfig contains runtime settings for a writing session.
type SessionConfig struct {
	TimeoutSeconds int
	GraceEnabled   bool

	// GraceBuffer is added to the last keystroke time when grace is enabled.
	GraceBuffer time.Duration
	// TickInterval is the delay between the end of one idle check and the next.
	TickInterval time.Duration
	// WarnThreshold marks the countdown as urgent once remaining time drops below it.
	WarnThreshold time.Duration
}

// DefaultSessionConfig returns the settings every session starts with.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TimeoutSeconds: DefaultTimeoutSeconds,
		GraceEnabled:   true,
		GraceBuffer:    time.Second,
		TickInterval:   100 * time.Millisecond,
		WarnThreshold:  2 * time.Second,
	}
}

// Timeout returns the idle timeout as a duration.
func (config SessionConfig) Timeout() time.Duration {
	return time.Duration(config.TimeoutSeconds) * time.Second
}
