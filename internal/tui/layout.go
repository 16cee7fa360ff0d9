package tui

import "github.com/rivo/uniseg"

// visualLine is a run of the buffer shown on one screen row. start and end
// are rune offsets; end is exclusive and never includes the newline.
type visualLine struct {
	start int
	end   int
}

// runeWidth returns the number of screen cells r occupies. Tabs are drawn as
// a single space and zero-width runes still take a cell so the cursor can sit
// on them.
func runeWidth(r rune) int {
	if r == '\t' {
		return 1
	}
	return max(1, uniseg.StringWidth(string(r)))
}

func cellsBetween(text []rune, start, end int) int {
	cells := 0
	for _, r := range text[start:end] {
		cells += runeWidth(r)
	}
	return cells
}

// wrapLines breaks text into rows of at most width cells, preferring to break
// after a space. A logical line that fills the row exactly gets an empty
// continuation row so the cursor has somewhere to go.
func wrapLines(text []rune, width int) []visualLine {
	if width < 1 {
		width = 1
	}
	var lines []visualLine
	start := 0
	for {
		newline := start
		for newline < len(text) && text[newline] != '\n' {
			newline++
		}
		for cellsBetween(text, start, newline) >= width {
			cut, cells := start, 0
			for cut < newline && cells+runeWidth(text[cut]) <= width {
				cells += runeWidth(text[cut])
				cut++
			}
			if cut == start {
				cut = start + 1
			}
			brk := cut
			if cut < newline {
				for i := cut; i > start; i-- {
					if text[i-1] == ' ' {
						brk = i
						break
					}
				}
			}
			lines = append(lines, visualLine{start: start, end: brk})
			start = brk
		}
		lines = append(lines, visualLine{start: start, end: newline})
		if newline >= len(text) {
			return lines
		}
		start = newline + 1
	}
}

// cursorPosition maps a rune offset to a row and a column in cells. An offset
// on a wrap boundary belongs to the following row.
func cursorPosition(text []rune, lines []visualLine, offset int) (row, col int) {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].start <= offset {
			return i, cellsBetween(text, lines[i].start, min(offset, lines[i].end))
		}
	}
	return 0, 0
}

// offsetAt maps a row and a cell column back to a rune offset. Columns past
// the end of the row clamp to it; a column inside a wide rune lands before it.
func offsetAt(text []rune, lines []visualLine, row, col int) int {
	if len(lines) == 0 {
		return 0
	}
	line := lines[max(0, min(row, len(lines)-1))]
	offset, cells := line.start, 0
	for offset < line.end && cells+runeWidth(text[offset]) <= col {
		cells += runeWidth(text[offset])
		offset++
	}
	return offset
}
