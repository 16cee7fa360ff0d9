// Package session owns the state of one writing session and exposes the
// operations a front-end wires to its widgets.
//
// All Controller methods must be called from the front-end's UI goroutine.
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"dangerouswriter/internal/core/activity"
	"dangerouswriter/internal/core/clock"
	"dangerouswriter/internal/core/idlemonitor"
	"dangerouswriter/internal/core/model"
	"dangerouswriter/internal/core/timeout"
	"dangerouswriter/internal/core/wordcount"
	"dangerouswriter/internal/export"
)

// Buffer is the editable text owned by the front-end.
type Buffer interface {
	Text() string
	Clear()
}

// ModifiedFlag is implemented by buffers whose change notification stays
// latched until cleared. TextChanged clears it after every recount.
type ModifiedFlag interface {
	SetModified(modified bool)
}

// View receives status updates.
type View interface {
	SetWordCount(label string)
	SetRemaining(label string, warning bool)
	SetTimeout(seconds int)
}

// Prompter shows dialogs. Callbacks run on the UI goroutine.
type Prompter interface {
	Confirm(title, message string, onResult func(confirmed bool))
	Inform(title, message string)
	// ChooseExportTarget asks for a destination. A nil writer with a nil
	// error means the user cancelled.
	ChooseExportTarget(suggestedName string, extensions []string, onChosen func(writer io.WriteCloser, err error))
	ShowError(err error)
}

// Options configures a Controller.
type Options struct {
	Config    model.SessionConfig
	Clock     clock.Clock
	Scheduler clock.Scheduler
}

// Controller ties the activity tracker, timeout setting and idle monitor to a
// front-end buffer.
type Controller struct {
	log      *zap.Logger
	buffer   Buffer
	view     View
	prompter Prompter
	tracker  *activity.Tracker
	timeout  *timeout.Setting
	monitor  *idlemonitor.Monitor
}

// New creates a Controller. Call Start once the buffer holds its initial text.
func New(log *zap.Logger, options Options, buffer Buffer, view View, prompter Prompter) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if options.Clock == nil {
		options.Clock = clock.System
	}

	setting := timeout.New()
	setting.CommitValue(options.Config.TimeoutSeconds)

	tracker := activity.New(options.Clock, options.Config.GraceEnabled, options.Config.GraceBuffer)
	monitor := idlemonitor.New(log.Named("idle"), idlemonitor.Config{
		TickInterval:  options.Config.TickInterval,
		WarnThreshold: options.Config.WarnThreshold,
	}, options.Clock, options.Scheduler, tracker, setting, buffer)

	controller := &Controller{
		log:      log,
		buffer:   buffer,
		view:     view,
		prompter: prompter,
		tracker:  tracker,
		timeout:  setting,
		monitor:  monitor,
	}
	monitor.Subscribe(controller.handleMonitorEvent)
	return controller
}

// Start counts the initial text, arms the tracker as if the user had just
// typed, and begins idle polling.
func (controller *Controller) Start() {
	controller.view.SetTimeout(controller.timeout.Seconds())
	controller.TextChanged()
	controller.tracker.RecordKeystroke()
	controller.monitor.Start()
	controller.log.Info("session started",
		zap.Int("timeout_seconds", controller.timeout.Seconds()),
		zap.Bool("grace", controller.tracker.GraceEnabled()))
}

// Stop ends idle polling. Front-ends call it when their window closes.
func (controller *Controller) Stop() {
	controller.monitor.Stop()
}

// Subscribe forwards idle monitor events to an additional observer.
func (controller *Controller) Subscribe(observer idlemonitor.Observer) {
	controller.monitor.Subscribe(observer)
}

// Keystroke records user activity.
func (controller *Controller) Keystroke() {
	controller.tracker.RecordKeystroke()
}

// TextChanged recounts words and re-arms a latched modified flag.
func (controller *Controller) TextChanged() {
	if flag, ok := controller.buffer.(ModifiedFlag); ok {
		flag.SetModified(false)
	}
	controller.view.SetWordCount(wordcount.Label(wordcount.Count(controller.buffer.Text())))
}

// SetGraceEnabled toggles the grace buffer for later keystrokes.
func (controller *Controller) SetGraceEnabled(enabled bool) {
	controller.tracker.SetGraceEnabled(enabled)
	controller.log.Debug("grace toggled", zap.Bool("grace", enabled))
}

// GraceEnabled reports whether the grace buffer is on.
func (controller *Controller) GraceEnabled() bool {
	return controller.tracker.GraceEnabled()
}

// CommitTimeout applies raw stepper input; invalid input falls back to the
// default and the view is updated either way.
func (controller *Controller) CommitTimeout(raw string) int {
	seconds, accepted := controller.timeout.Commit(raw)
	if !accepted {
		controller.log.Debug("timeout input rejected", zap.String("input", raw), zap.Int("timeout_seconds", seconds))
	}
	controller.view.SetTimeout(seconds)
	return seconds
}

// StepTimeout moves the timeout by delta within bounds.
func (controller *Controller) StepTimeout(delta int) int {
	seconds := controller.timeout.Step(delta)
	controller.view.SetTimeout(seconds)
	return seconds
}

// TimeoutSeconds returns the active timeout.
func (controller *Controller) TimeoutSeconds() int {
	return controller.timeout.Seconds()
}

// Remaining returns the idle time left before erasure.
func (controller *Controller) Remaining() time.Duration {
	return controller.tracker.Remaining(controller.timeout.Duration())
}

// NewSession asks for confirmation, then clears the buffer and re-arms the
// tracker with the same rules as a keystroke.
func (controller *Controller) NewSession() {
	controller.prompter.Confirm("New Session", "Clear text and restart?", func(confirmed bool) {
		if !confirmed {
			return
		}
		controller.buffer.Clear()
		controller.tracker.RecordKeystroke()
		controller.TextChanged()
		controller.log.Info("session reset")
	})
}

// Export writes the trimmed buffer to a destination picked by the user.
func (controller *Controller) Export() {
	content, err := export.Prepare(controller.buffer.Text())
	if errors.Is(err, export.ErrNothingToExport) {
		controller.prompter.Inform("Nothing to export", "There's no text to export yet.")
		return
	}

	controller.prompter.ChooseExportTarget(export.DefaultFileName, export.Extensions, func(writer io.WriteCloser, err error) {
		if err != nil {
			controller.reportExportError(fmt.Errorf("choose export destination: %w", err))
			return
		}
		if writer == nil {
			controller.log.Debug("export cancelled")
			return
		}
		if err := export.Write(writer, content); err != nil {
			controller.reportExportError(err)
			return
		}
		controller.log.Info("text exported", zap.Int("bytes", len(content)))
	})
}

func (controller *Controller) reportExportError(err error) {
	controller.log.Error("export failed", zap.Error(err))
	controller.prompter.ShowError(err)
}

func (controller *Controller) handleMonitorEvent(event idlemonitor.Event) {
	switch event.Type {
	case idlemonitor.EventProgress:
		controller.view.SetRemaining(idlemonitor.FormatRemaining(event.Remaining), event.Warning)
	case idlemonitor.EventErase:
		controller.TextChanged()
	}
}
