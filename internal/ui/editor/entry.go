package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// writingEntry is a word-wrapped multi-line entry that reports every key the
// user presses before handling it.
type writingEntry struct {
	widget.Entry
	onKeystroke func()
}

func newWritingEntry() *writingEntry {
	entry := &writingEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune records activity, then inserts the rune.
func (entry *writingEntry) TypedRune(r rune) {
	entry.keystroke()
	entry.Entry.TypedRune(r)
}

// TypedKey records activity, then handles navigation and editing keys.
func (entry *writingEntry) TypedKey(key *fyne.KeyEvent) {
	entry.keystroke()
	entry.Entry.TypedKey(key)
}

// TypedShortcut records activity, then handles clipboard and selection shortcuts.
func (entry *writingEntry) TypedShortcut(shortcut fyne.Shortcut) {
	entry.keystroke()
	entry.Entry.TypedShortcut(shortcut)
}

// KeyDown catches modifier-only presses on desktop drivers.
func (entry *writingEntry) KeyDown(key *fyne.KeyEvent) {
	entry.keystroke()
	entry.Entry.KeyDown(key)
}

func (entry *writingEntry) keystroke() {
	if entry.onKeystroke != nil {
		entry.onKeystroke()
	}
}

// moveCursorToEnd places the caret after the last character.
func (entry *writingEntry) moveCursorToEnd() {
	row := 0
	column := 0
	for _, r := range entry.Text {
		if r == '\n' {
			row++
			column = 0
			continue
		}
		column++
	}
	entry.CursorRow = row
	entry.CursorColumn = column
	entry.Refresh()
}

// stepperEntry is the timeout field. It reports when it loses focus so a
// half-typed value is committed or reset instead of lingering.
type stepperEntry struct {
	widget.Entry
	onFocusLost func()
}

func newStepperEntry() *stepperEntry {
	entry := &stepperEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// FocusLost commits the current text.
func (entry *stepperEntry) FocusLost() {
	entry.Entry.FocusLost()
	if entry.onFocusLost != nil {
		entry.onFocusLost()
	}
}
