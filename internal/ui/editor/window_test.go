package editor

import (
	"strconv"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dangerouswriter/internal/core/clock"
	"dangerouswriter/internal/core/model"
	"dangerouswriter/internal/core/session"
	"dangerouswriter/internal/export"
)

func newTestEditor(t *testing.T, intro string) (*Window, *session.Controller, *clock.Manual) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	editor := New(app, Config{
		Title:        "dangerous writer",
		Width:        700,
		Height:       500,
		IntroText:    intro,
		GraceEnabled: true,
	})
	manual := clock.NewManual(time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC))
	controller := session.New(nil, session.Options{
		Config:    model.DefaultSessionConfig(),
		Clock:     manual,
		Scheduler: manual,
	}, editor, editor, editor)
	editor.Attach(controller)
	controller.Start()
	t.Cleanup(controller.Stop)
	return editor, controller, manual
}

func TestEditorStartsWithIntro(t *testing.T) {
	editor, _, _ := newTestEditor(t, model.IntroText)

	assert.Equal(t, model.IntroText, editor.Text())
	assert.Equal(t, "10 words", editor.wordsLabel.Text)
	assert.Equal(t, "5", editor.timeoutEntry.Text)
	assert.Equal(t, "⏳ 6.0s", editor.timerLabel.Text)
	assert.True(t, editor.graceCheck.Checked)
	assert.Equal(t, 2, editor.entry.CursorRow)
	assert.Equal(t, 0, editor.entry.CursorColumn)
}

func TestTypingRecordsActivityAndCounts(t *testing.T) {
	editor, controller, manual := newTestEditor(t, "")

	manual.Advance(3 * time.Second)
	require.Equal(t, 3*time.Second, controller.Remaining())

	test.Type(editor.entry, "hello world")

	assert.Equal(t, "hello world", editor.Text())
	assert.Equal(t, "2 words", editor.wordsLabel.Text)
	assert.Equal(t, 6*time.Second, controller.Remaining())
}

func TestIdleClearsEntry(t *testing.T) {
	editor, _, manual := newTestEditor(t, "")
	test.Type(editor.entry, "soon gone")

	manual.Advance(4500 * time.Millisecond)
	assert.Equal(t, widget.DangerImportance, editor.timerLabel.Importance)

	manual.Advance(1500 * time.Millisecond)
	assert.Equal(t, "", editor.Text())
	assert.Equal(t, "0 words", editor.wordsLabel.Text)
	assert.Equal(t, widget.MediumImportance, editor.timerLabel.Importance)
}

func TestTimeoutEntrySubmit(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "60", want: "60"},
		{input: "61", want: "5"},
		{input: "2", want: "5"},
		{input: "abc", want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			editor, controller, _ := newTestEditor(t, "")

			editor.timeoutEntry.SetText(tt.input)
			editor.timeoutEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})

			assert.Equal(t, tt.want, editor.timeoutEntry.Text)
			assert.Equal(t, tt.want, strconv.Itoa(controller.TimeoutSeconds()))
		})
	}
}

func TestTimeoutEntryCommitsOnFocusLost(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "100", want: 5},
		{input: "abc", want: 5},
		{input: "42", want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			editor, controller, _ := newTestEditor(t, "")
			controller.StepTimeout(5)

			editor.timeoutEntry.SetText(tt.input)
			editor.timeoutEntry.FocusLost()

			assert.Equal(t, strconv.Itoa(tt.want), editor.timeoutEntry.Text)
			assert.Equal(t, tt.want, controller.TimeoutSeconds())
		})
	}
}

func TestStepperStepsFromDisplayedValue(t *testing.T) {
	editor, controller, _ := newTestEditor(t, "")

	editor.timeoutEntry.SetText("20")
	test.Tap(editor.plusButton)
	assert.Equal(t, 21, controller.TimeoutSeconds())
	assert.Equal(t, "21", editor.timeoutEntry.Text)

	editor.timeoutEntry.SetText("abc")
	test.Tap(editor.minusButton)
	assert.Equal(t, 4, controller.TimeoutSeconds())
	assert.Equal(t, "4", editor.timeoutEntry.Text)
}

func TestContentKeepsMinimumSize(t *testing.T) {
	editor, _, _ := newTestEditor(t, "")

	size := editor.window.Content().MinSize()
	assert.GreaterOrEqual(t, size.Width, float32(MinWidth))
	assert.GreaterOrEqual(t, size.Height, float32(MinHeight))
}

func TestExportFilterAllowsAnyFile(t *testing.T) {
	assert.Nil(t, exportFilter(export.Extensions))
	assert.Nil(t, exportFilter(nil))

	filter := exportFilter([]string{".txt", ".md"})
	require.NotNil(t, filter)
	assert.True(t, filter.Matches(storage.NewFileURI("/tmp/draft.md")))
	assert.False(t, filter.Matches(storage.NewFileURI("/tmp/draft.png")))
}

func TestGraceCheckTogglesController(t *testing.T) {
	editor, controller, _ := newTestEditor(t, "")

	test.Tap(editor.graceCheck)
	assert.False(t, controller.GraceEnabled())

	test.Type(editor.entry, "x")
	assert.Equal(t, 5*time.Second, controller.Remaining())
}

func TestClearFiresWordCount(t *testing.T) {
	editor, _, _ := newTestEditor(t, "one two three")
	require.Equal(t, "3 words", editor.wordsLabel.Text)

	editor.Clear()

	assert.Equal(t, "0 words", editor.wordsLabel.Text)
}
