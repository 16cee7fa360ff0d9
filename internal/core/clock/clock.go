// Package clock abstracts wall-clock reads and delayed callbacks so the idle
// loop can be driven by a toolkit event loop in production and by hand in tests.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay. Implementations decide which
// goroutine the callback runs on; UI front-ends route it onto their event loop.
type Scheduler interface {
	AfterFunc(delay time.Duration, callback func()) Timer
}

// System is the wall clock.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, callback func()) Timer

// AfterFunc calls fn(delay, callback).
func (fn SchedulerFunc) AfterFunc(delay time.Duration, callback func()) Timer {
	return fn(delay, callback)
}

// Dispatching returns a Scheduler backed by time.AfterFunc that hands the
// callback to dispatch instead of running it on the timer goroutine.
func Dispatching(dispatch func(func())) Scheduler {
	return SchedulerFunc(func(delay time.Duration, callback func()) Timer {
		return time.AfterFunc(delay, func() {
			dispatch(callback)
		})
	})
}
