package editor

import (
	"image/color"
	"io"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"dangerouswriter/internal/core/session"
	"dangerouswriter/internal/export"
)

// Minimum window content size.
const (
	MinWidth  = 700
	MinHeight = 500
)

// Config defines the editor window.
type Config struct {
	Title        string
	Width        float32
	Height       float32
	IntroText    string
	GraceEnabled bool
}

// Window is the main editor window. It serves as the session's buffer, view
// and prompter.
type Window struct {
	app          fyne.App
	window       fyne.Window
	entry        *writingEntry
	wordsLabel   *widget.Label
	timerLabel   *widget.Label
	timeoutEntry *stepperEntry
	graceCheck   *widget.Check
	minusButton  *widget.Button
	plusButton   *widget.Button
	newButton    *widget.Button
	exportButton *widget.Button
	controller   *session.Controller
}

// New creates the editor window. Attach must be called before Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	entry := newWritingEntry()
	entry.SetText(config.IntroText)
	entry.moveCursorToEnd()

	wordsLabel := widget.NewLabel("0 words")
	timerLabel := widget.NewLabelWithStyle("⏳ 0.0s", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})

	timeoutEntry := newStepperEntry()
	graceCheck := widget.NewCheck("1s grace after typing resumes", nil)
	graceCheck.SetChecked(config.GraceEnabled)

	editor := &Window{
		app:          app,
		window:       window,
		entry:        entry,
		wordsLabel:   wordsLabel,
		timerLabel:   timerLabel,
		timeoutEntry: timeoutEntry,
		graceCheck:   graceCheck,
	}

	editor.minusButton = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		editor.stepTimeout(-1)
	})
	editor.plusButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		editor.stepTimeout(1)
	})
	editor.newButton = widget.NewButton("New Session", func() {
		editor.withController(func(controller *session.Controller) { controller.NewSession() })
	})
	editor.exportButton = widget.NewButtonWithIcon("Export…", theme.DocumentSaveIcon(), func() {
		editor.withController(func(controller *session.Controller) { controller.Export() })
	})

	stepper := container.NewHBox(
		editor.minusButton,
		container.NewGridWrap(fyne.NewSize(56, timeoutEntry.MinSize().Height), timeoutEntry),
		editor.plusButton,
	)
	top := container.NewHBox(
		widget.NewLabel("Idle Timeout (sec):"),
		stepper,
		graceCheck,
		layout.NewSpacer(),
		editor.newButton,
		editor.exportButton,
	)
	status := container.NewHBox(wordsLabel, timerLabel)

	minimum := canvas.NewRectangle(color.Transparent)
	minimum.SetMinSize(fyne.NewSize(MinWidth, MinHeight))
	window.SetContent(container.NewStack(minimum, container.NewBorder(top, status, nil, nil, entry)))
	window.Resize(fyne.NewSize(max(config.Width, MinWidth), max(config.Height, MinHeight)))
	return editor
}

// Attach wires widget callbacks to controller.
func (editor *Window) Attach(controller *session.Controller) {
	editor.controller = controller
	editor.entry.onKeystroke = controller.Keystroke
	editor.entry.OnChanged = func(string) {
		controller.TextChanged()
	}
	editor.timeoutEntry.OnSubmitted = func(text string) {
		controller.CommitTimeout(text)
	}
	editor.timeoutEntry.onFocusLost = func() {
		controller.CommitTimeout(editor.timeoutEntry.Text)
	}
	editor.graceCheck.OnChanged = controller.SetGraceEnabled
	editor.window.SetOnClosed(controller.Stop)
}

// Show displays the window and focuses the text area.
func (editor *Window) Show() {
	editor.window.Show()
	editor.window.RequestFocus()
	editor.window.Canvas().Focus(editor.entry)
}

// ShowAndRun displays the window and runs the application event loop.
func (editor *Window) ShowAndRun() {
	editor.window.SetMaster()
	editor.Show()
	editor.app.Run()
}

// Text returns the buffer content.
func (editor *Window) Text() string {
	return editor.entry.Text
}

// Clear empties the buffer.
func (editor *Window) Clear() {
	editor.entry.SetText("")
}

// SetWordCount updates the word count label.
func (editor *Window) SetWordCount(label string) {
	editor.wordsLabel.SetText(label)
}

// SetRemaining updates the countdown label.
func (editor *Window) SetRemaining(label string, warning bool) {
	importance := widget.MediumImportance
	if warning {
		importance = widget.DangerImportance
	}
	editor.timerLabel.Importance = importance
	editor.timerLabel.SetText(label)
}

// SetTimeout updates the stepper value.
func (editor *Window) SetTimeout(seconds int) {
	editor.timeoutEntry.SetText(strconv.Itoa(seconds))
}

// Confirm shows a yes/no dialog.
func (editor *Window) Confirm(title, message string, onResult func(bool)) {
	dialog.ShowConfirm(title, message, onResult, editor.window)
}

// Inform shows an informational dialog.
func (editor *Window) Inform(title, message string) {
	dialog.ShowInformation(title, message, editor.window)
}

// ShowError shows an error dialog.
func (editor *Window) ShowError(err error) {
	dialog.ShowError(err, editor.window)
}

// ChooseExportTarget shows a save dialog.
func (editor *Window) ChooseExportTarget(suggestedName string, extensions []string, onChosen func(io.WriteCloser, error)) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			onChosen(nil, err)
			return
		}
		if writer == nil {
			onChosen(nil, nil)
			return
		}
		onChosen(writer, nil)
	}, editor.window)
	save.SetFileName(suggestedName)
	if filter := exportFilter(extensions); filter != nil {
		save.SetFilter(filter)
	}
	save.Show()
}

// exportFilter narrows the save dialog to extensions. Fyne's dialog offers a
// single filter, so a list that also allows any file type gets none.
func exportFilter(extensions []string) fynestorage.FileFilter {
	if len(extensions) == 0 || slices.Contains(extensions, export.AnyExtension) {
		return nil
	}
	return fynestorage.NewExtensionFileFilter(extensions)
}

// stepTimeout applies what the field shows before stepping, so the buttons
// always move from the displayed value.
func (editor *Window) stepTimeout(delta int) {
	editor.withController(func(controller *session.Controller) {
		controller.CommitTimeout(editor.timeoutEntry.Text)
		controller.StepTimeout(delta)
	})
}

func (editor *Window) withController(action func(*session.Controller)) {
	if editor.controller != nil {
		action(editor.controller)
	}
}
