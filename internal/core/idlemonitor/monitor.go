package idlemonitor

import (
	"time"

	"go.uber.org/zap"

	"dangerouswriter/internal/core/activity"
	"dangerouswriter/internal/core/clock"
)

// Buffer is the text the monitor erases once the user has been idle too long.
type Buffer interface {
	Text() string
	Clear()
}

// TimeoutSource reports the currently configured idle timeout.
type TimeoutSource interface {
	Duration() time.Duration
}

// Observer receives monitor events on the goroutine that runs Tick.
type Observer func(Event)

// Config contains runtime options for Monitor.
type Config struct {
	TickInterval  time.Duration
	WarnThreshold time.Duration
}

// Monitor polls the activity tracker and erases the buffer after an idle timeout.
//
// Monitor is not safe for concurrent use. Every method, and every callback the
// scheduler delivers, must run on the single UI goroutine.
type Monitor struct {
	log       *zap.Logger
	options   Config
	clock     clock.Clock
	scheduler clock.Scheduler
	tracker   *activity.Tracker
	timeout   TimeoutSource
	buffer    Buffer
	observers []Observer
	pending   clock.Timer
	running   bool
	// generation invalidates ticks that were already queued when Stop ran.
	generation int
}

// New creates a Monitor. Start must be called before it begins polling.
func New(log *zap.Logger, options Config, source clock.Clock, scheduler clock.Scheduler, tracker *activity.Tracker, timeout TimeoutSource, buffer Buffer) *Monitor {
	if options.TickInterval <= 0 {
		options.TickInterval = 100 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	if source == nil {
		source = clock.System
	}
	return &Monitor{
		log:       log,
		options:   options,
		clock:     source,
		scheduler: scheduler,
		tracker:   tracker,
		timeout:   timeout,
		buffer:    buffer,
	}
}

// Subscribe registers an observer for progress and erase events.
func (monitor *Monitor) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	monitor.observers = append(monitor.observers, observer)
}

// Start runs a first check immediately and keeps polling until Stop.
func (monitor *Monitor) Start() {
	if monitor.running {
		return
	}
	monitor.running = true
	monitor.generation++
	monitor.log.Debug("idle monitor started", zap.Duration("interval", monitor.options.TickInterval))
	monitor.loop(monitor.generation)
}

// Stop cancels the pending check. Calling Stop twice is harmless.
func (monitor *Monitor) Stop() {
	if !monitor.running {
		return
	}
	monitor.running = false
	monitor.generation++
	if monitor.pending != nil {
		monitor.pending.Stop()
		monitor.pending = nil
	}
	monitor.log.Debug("idle monitor stopped")
}

// Running reports whether the monitor is polling.
func (monitor *Monitor) Running() bool {
	return monitor.running
}

// Tick performs one idle check and returns the remaining idle time.
func (monitor *Monitor) Tick() time.Duration {
	now := monitor.clock.Now()
	remaining := monitor.tracker.Remaining(monitor.timeout.Duration())

	monitor.emit(Event{
		Type:      EventProgress,
		Remaining: remaining,
		Warning:   remaining > 0 && remaining <= monitor.options.WarnThreshold,
		At:        now,
	})

	if remaining > 0 {
		return remaining
	}

	monitor.tracker.Rearm()
	if monitor.buffer.Text() == "" {
		return remaining
	}
	monitor.buffer.Clear()
	monitor.log.Info("buffer erased after idle timeout", zap.Duration("timeout", monitor.timeout.Duration()))
	monitor.emit(Event{
		Type:      EventErase,
		Remaining: remaining,
		At:        now,
	})
	return remaining
}

// loop runs one check and schedules the next once it has finished.
func (monitor *Monitor) loop(generation int) {
	if !monitor.running || generation != monitor.generation {
		return
	}
	monitor.Tick()
	if !monitor.running || generation != monitor.generation {
		return
	}
	monitor.pending = monitor.scheduler.AfterFunc(monitor.options.TickInterval, func() {
		monitor.loop(generation)
	})
}

func (monitor *Monitor) emit(event Event) {
	for _, observer := range monitor.observers {
		observer(event)
	}
}
