package wordcount

import (
	"fmt"
	"strings"
)

// Count returns the number of whitespace-separated words in text.
func Count(text string) int {
	return len(strings.Fields(text))
}

// Label formats a word count for the status bar.
func Label(count int) string {
	if count == 1 {
		return "1 word"
	}
	return fmt.Sprintf("%d words", count)
}
