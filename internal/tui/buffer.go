package tui

// Buffer is the editable text of the terminal front-end.
//
// The modified flag latches: the change callback fires only when the flag goes
// from clean to dirty, and the listener must call SetModified(false) to hear
// about the next edit.
type Buffer struct {
	runes    []rune
	cursor   int
	modified bool
	onChange func()
}

// NewBuffer returns a buffer holding text with the cursor at the end.
func NewBuffer(text string) *Buffer {
	runes := []rune(text)
	return &Buffer{runes: runes, cursor: len(runes)}
}

// OnChange registers the listener for the modified flag.
func (buffer *Buffer) OnChange(callback func()) {
	buffer.onChange = callback
}

// Text returns the buffer content.
func (buffer *Buffer) Text() string {
	return string(buffer.runes)
}

// Clear empties the buffer.
func (buffer *Buffer) Clear() {
	buffer.runes = buffer.runes[:0]
	buffer.cursor = 0
	buffer.markModified()
}

// Modified reports the latched modified flag.
func (buffer *Buffer) Modified() bool {
	return buffer.modified
}

// SetModified sets the latched modified flag.
func (buffer *Buffer) SetModified(modified bool) {
	buffer.modified = modified
}

// Cursor returns the cursor offset in runes.
func (buffer *Buffer) Cursor() int {
	return buffer.cursor
}

// SetCursor moves the cursor, clamped to the buffer.
func (buffer *Buffer) SetCursor(offset int) {
	buffer.cursor = max(0, min(offset, len(buffer.runes)))
}

// Insert puts r before the cursor.
func (buffer *Buffer) Insert(r rune) {
	buffer.runes = append(buffer.runes, 0)
	copy(buffer.runes[buffer.cursor+1:], buffer.runes[buffer.cursor:])
	buffer.runes[buffer.cursor] = r
	buffer.cursor++
	buffer.markModified()
}

// Backspace removes the rune before the cursor.
func (buffer *Buffer) Backspace() {
	if buffer.cursor == 0 {
		return
	}
	buffer.runes = append(buffer.runes[:buffer.cursor-1], buffer.runes[buffer.cursor:]...)
	buffer.cursor--
	buffer.markModified()
}

// Delete removes the rune under the cursor.
func (buffer *Buffer) Delete() {
	if buffer.cursor >= len(buffer.runes) {
		return
	}
	buffer.runes = append(buffer.runes[:buffer.cursor], buffer.runes[buffer.cursor+1:]...)
	buffer.markModified()
}

// Left moves the cursor one rune back.
func (buffer *Buffer) Left() {
	buffer.SetCursor(buffer.cursor - 1)
}

// Right moves the cursor one rune forward.
func (buffer *Buffer) Right() {
	buffer.SetCursor(buffer.cursor + 1)
}

func (buffer *Buffer) markModified() {
	if buffer.modified {
		return
	}
	buffer.modified = true
	if buffer.onChange != nil {
		buffer.onChange()
	}
}
