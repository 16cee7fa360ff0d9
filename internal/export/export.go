package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is suggested when the user picks an export destination.
const DefaultFileName = "dangerous_writer_export.txt"

// DefaultExtension is appended to destinations chosen without one.
const DefaultExtension = ".txt"

// AnyExtension in an extension list means files of every type are offered.
const AnyExtension = "*"

// Extensions lists the file types offered in the save dialog.
var Extensions = []string{".txt", ".md", AnyExtension}

// ErrNothingToExport indicates the buffer holds only whitespace.
var ErrNothingToExport = errors.New("nothing to export")

// Prepare trims surrounding whitespace and rejects empty content.
func Prepare(text string) (string, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return "", ErrNothingToExport
	}
	return content, nil
}

// Write stores content verbatim as UTF-8 and closes the writer.
func Write(writer io.WriteCloser, content string) error {
	_, writeErr := io.WriteString(writer, content)
	closeErr := writer.Close()
	if writeErr != nil {
		return fmt.Errorf("write export: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close export: %w", closeErr)
	}
	return nil
}

// Create opens path for writing, truncating any existing file. A path without
// an extension gets DefaultExtension.
func Create(path string) (*os.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("create export file: empty path")
	}
	path = WithDefaultExtension(path)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return file, nil
}

// WithDefaultExtension appends DefaultExtension when path has none.
func WithDefaultExtension(path string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + DefaultExtension
}
