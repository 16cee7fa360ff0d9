package timeout

import (
	"strconv"
	"strings"
	"time"

	"dangerouswriter/internal/core/model"
)

// Setting holds the active idle timeout in whole seconds.
type Setting struct {
	seconds int
}

// New returns a Setting at the default timeout.
func New() *Setting {
	return &Setting{seconds: model.DefaultTimeoutSeconds}
}

// Commit validates user input. Integers within bounds are applied; anything
// else resets the setting to the default. The returned value is what the
// stepper should display.
func (setting *Setting) Commit(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		setting.seconds = model.DefaultTimeoutSeconds
		return setting.seconds, false
	}
	return setting.CommitValue(value)
}

// CommitValue applies an already-parsed value with the same rules as Commit.
func (setting *Setting) CommitValue(value int) (int, bool) {
	if !InRange(value) {
		setting.seconds = model.DefaultTimeoutSeconds
		return setting.seconds, false
	}
	setting.seconds = value
	return setting.seconds, true
}

// Step moves the timeout by delta, clamped to the allowed bounds.
func (setting *Setting) Step(delta int) int {
	value := setting.seconds + delta
	if value < model.MinTimeoutSeconds {
		value = model.MinTimeoutSeconds
	}
	if value > model.MaxTimeoutSeconds {
		value = model.MaxTimeoutSeconds
	}
	setting.seconds = value
	return value
}

// Seconds returns the active timeout.
func (setting *Setting) Seconds() int {
	return setting.seconds
}

// Duration returns the active timeout as a duration.
func (setting *Setting) Duration() time.Duration {
	return time.Duration(setting.seconds) * time.Second
}

// InRange reports whether value is an acceptable timeout.
func InRange(value int) bool {
	return value >= model.MinTimeoutSeconds && value <= model.MaxTimeoutSeconds
}
