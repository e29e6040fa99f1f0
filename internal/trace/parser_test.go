package trace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTraceFile encodes a record the way the interception library does.
func writeTraceFile(t *testing.T, dir, name string, fields ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(fields, RecordSep)), 0644))
	return path
}

func argv(args ...string) string {
	return strings.Join(args, UnitSep) + UnitSep
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTraceFile(t, dir, "cmd.1234",
		"1234", "1", "execve", "/home/user/project",
		argv("gcc", "-c", "main.c", "-o", "main.o"))

	rec, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, 1234, rec.PID)
	assert.Equal(t, 1, rec.PPID)
	assert.Equal(t, "execve", rec.Function)
	assert.Equal(t, "/home/user/project", rec.Directory)
	assert.Equal(t, []string{"gcc", "-c", "main.c", "-o", "main.o"}, rec.Args)
}

func TestParseFileEmptyArgument(t *testing.T) {
	dir := t.TempDir()
	path := writeTraceFile(t, dir, "cmd.7",
		"7", "1", "execve", "/tmp", argv("cc", "", "-c", "a.c"))

	rec, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cc", "", "-c", "a.c"}, rec.Args)
}

// Re-joining the parsed argument vector with the unit separator (plus the
// trailing terminator) must reproduce the original fifth field byte-for-byte.
func TestParseFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fifth := argv("clang++", "-std=c++17", "-c", "lib.cpp", "-o", "lib.o")
	path := writeTraceFile(t, dir, "cmd.99", "99", "98", "execvp", "/src", fifth)

	rec, err := ParseFile(path)
	require.NoError(t, err)

	rejoined := strings.Join(rec.Args, UnitSep) + UnitSep
	assert.Equal(t, fifth, rejoined)
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		fields []string
	}{
		{"empty file", []string{""}},
		{"four fields", []string{"1", "2", "execve", "/tmp"}},
		{"bad pid", []string{"nope", "1", "execve", "/tmp", argv("cc")}},
		{"bad ppid", []string{"1", "nope", "execve", "/tmp", argv("cc")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTraceFile(t, dir, "cmd.bad", tt.fields...)
			_, err := ParseFile(path)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, path, perr.Path)
		})
	}
}

func TestParseFileUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmd.missing")

	_, err := ParseFile(path)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeTraceFile(t, dir, "cmd.1", "1", "0", "execve", "/", argv("make"))
	writeTraceFile(t, dir, "cmd.2", "2", "1", "execve", "/", argv("cc"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	files, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, filepath.Base(f), "cmd.")
	}
}

func TestScanDirEmpty(t *testing.T) {
	files, err := ScanDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
