package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []visualLine
	}{
		{name: "empty", text: "", width: 10, want: []visualLine{{0, 0}}},
		{name: "short", text: "abc", width: 10, want: []visualLine{{0, 3}}},
		{name: "newlines", text: "ab\n\ncd", width: 10, want: []visualLine{{0, 2}, {3, 3}, {4, 6}}},
		{name: "trailing newline", text: "ab\n", width: 10, want: []visualLine{{0, 2}, {3, 3}}},
		{name: "word break", text: "hello world", width: 8, want: []visualLine{{0, 6}, {6, 11}}},
		{name: "hard break", text: "abcdefgh", width: 3, want: []visualLine{{0, 3}, {3, 6}, {6, 8}}},
		{name: "exact width", text: "abc", width: 3, want: []visualLine{{0, 3}, {3, 3}}},
		{name: "wide runes", text: "你好世界你好世界", width: 10, want: []visualLine{{0, 5}, {5, 8}}},
		{name: "wide rune at edge", text: "ab你", width: 3, want: []visualLine{{0, 2}, {2, 3}}},
		{name: "wide rune wider than row", text: "你", width: 1, want: []visualLine{{0, 1}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLines([]rune(tt.text), tt.width))
		})
	}
}

func TestCursorPositionRoundTrip(t *testing.T) {
	text := []rune("hello world\nx")
	lines := wrapLines(text, 8)

	row, col := cursorPosition(text, lines, 6)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	row, col = cursorPosition(text, lines, 13)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	assert.Equal(t, 13, offsetAt(text, lines, row, col))
	assert.Equal(t, 11, offsetAt(text, lines, 1, 50))
	assert.Equal(t, 13, offsetAt(text, lines, 9, 9))
}

func TestCursorPositionCountsCells(t *testing.T) {
	text := []rune("你好世界你好世界")
	lines := wrapLines(text, 10)

	row, col := cursorPosition(text, lines, 8)
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, col)

	row, col = cursorPosition(text, lines, 3)
	assert.Equal(t, 0, row)
	assert.Equal(t, 6, col)

	assert.Equal(t, 3, offsetAt(text, lines, 0, 6))
	assert.Equal(t, 1, offsetAt(text, lines, 0, 3))
	assert.Equal(t, 7, offsetAt(text, lines, 1, 4))
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, runeWidth('a'))
	assert.Equal(t, 1, runeWidth('\t'))
	assert.Equal(t, 2, runeWidth('你'))
	assert.Equal(t, 2, runeWidth('⏳'))
}
