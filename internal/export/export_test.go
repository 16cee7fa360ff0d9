package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{name: "empty", text: "", wantErr: ErrNothingToExport},
		{name: "whitespace only", text: " \n\t \n", wantErr: ErrNothingToExport},
		{name: "plain", text: "abc", want: "abc"},
		{name: "trimmed", text: "\n  hello world \n\n", want: "hello world"},
		{name: "inner whitespace kept", text: "line one\n\nline two\n", want: "line one\n\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")

	file, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, Write(file, "abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestCreateAddsDefaultExtension(t *testing.T) {
	dir := t.TempDir()

	file, err := Create(filepath.Join(dir, "notes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), file.Name())
	require.NoError(t, Write(file, "héllo wörld"))

	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", string(data))
}

func TestCreateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	file, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, Write(file, "new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCreateFailures(t *testing.T) {
	_, err := Create("   ")
	assert.Error(t, err)

	_, err = Create(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type failingWriter struct {
	closed bool
}

func (writer *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func (writer *failingWriter) Close() error {
	writer.closed = true
	return nil
}

func TestWriteClosesOnFailure(t *testing.T) {
	writer := &failingWriter{}

	err := Write(writer, "abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write export: disk full")
	assert.True(t, writer.closed)
}

func TestWithDefaultExtension(t *testing.T) {
	assert.Equal(t, "a.txt", WithDefaultExtension("a"))
	assert.Equal(t, "a.md", WithDefaultExtension("a.md"))
	assert.Equal(t, "dir/b.txt", WithDefaultExtension("dir/b"))
}
