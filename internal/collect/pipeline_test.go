package collect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earshot-dev/earshot/internal/compdb"
	"github.com/earshot-dev/earshot/internal/trace"
)

func writeTrace(t *testing.T, dir, name string, pid, ppid, function, cwd string, args ...string) {
	t.Helper()
	fifth := strings.Join(args, trace.UnitSep) + trace.UnitSep
	content := strings.Join([]string{pid, ppid, function, cwd, fifth}, trace.RecordSep)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// Scenario: one real compile and one unrelated process yield exactly one
// curated entry.
func TestEntriesFiltersNonCompilers(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.100", "100", "1", "execve", "/work",
		"/usr/bin/cc", "-c", "foo.c", "-o", "foo.o")
	writeTrace(t, dir, "cmd.101", "101", "1", "execve", "/work",
		"/bin/ls", "-la")

	entries, err := Entries(dir, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/cc -c foo.c -o foo.o", entries[0].Command)
	assert.Equal(t, "/work", entries[0].Directory)
	assert.Equal(t, filepath.Join(cwd, "foo.c"), entries[0].File)
}

// Scenario: a compiler re-exec is rejected despite the name match.
func TestEntriesCancelledInvocation(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.200", "200", "1", "execve", "/work",
		"gcc", "-cc1", "-c", "foo.c")

	entries, err := Entries(dir, Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesLinkOnlyYieldsNothing(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.300", "300", "1", "execve", "/work",
		"gcc", "a.o", "b.o", "-o", "prog")

	entries, err := Entries(dir, Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesMultipleSources(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.400", "400", "1", "execve", "/work",
		"gcc", "-c", "a.c", "b.c")

	entries, err := Entries(dir, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entries[0].Command, entries[1].Command)
	assert.Equal(t, entries[0].Directory, entries[1].Directory)
	assert.NotEqual(t, entries[0].File, entries[1].File)
}

func TestRecordsCountsEveryTraceFile(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.1", "1", "0", "execve", "/", "make")
	writeTrace(t, dir, "cmd.2", "2", "1", "execve", "/", "cc", "-c", "x.c")
	writeTrace(t, dir, "cmd.3", "3", "1", "execve", "/", "/bin/sh", "-c", "true")

	records, err := Records(dir, Options{})
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// Filtered output is never larger than the raw record set.
	entries, err := Entries(dir, Options{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(entries), len(records))
}

func TestEntriesAbortsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.1", "1", "0", "execve", "/", "cc", "-c", "x.c")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmd.2"), []byte("garbage"), 0644))

	_, err := Entries(dir, Options{})
	var perr *trace.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestEntriesTolerantSkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.1", "1", "0", "execve", "/", "cc", "-c", "x.c")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmd.2"), []byte("garbage"), 0644))

	entries, err := Entries(dir, Options{Tolerant: true})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// Re-running collection over an unmodified scratch directory produces
// byte-identical serialized output.
func TestCollectionIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "cmd.1", "1", "0", "execve", "/w", "cc", "-c", "a.c")
	writeTrace(t, dir, "cmd.2", "2", "0", "execve", "/w", "g++", "-c", "b.cpp")

	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		entries, err := Entries(dir, Options{})
		require.NoError(t, err)
		require.NoError(t, compdb.Write(buf, entries))
	}
	assert.Equal(t, first.Bytes(), second.Bytes())
}
