package extdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteParseRoundTrip(t *testing.T) {
	cases := [][]Entry{
		nil,
		{{"_Z1fun1i@x86_64", "ast/x86_64/fun1.c.ast"}},
		{
			{"_Z1fun1i@x86_64", "ast/x86_64/fun1.c.ast"},
			{"_Z1fun2i@x86_64", "ast/x86_64/fun2.c.ast"},
		},
		// Module paths may contain spaces.
		{{"_Z1fun3i@x86_64", "ast/x86_64/fun with space.c.ast"}},
	}

	for _, entries := range cases {
		path := filepath.Join(t.TempDir(), "test.syms")
		require.NoError(t, WriteFile(path, entries))
		parsed, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, entries, parsed)
	}
}

func TestParseFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.syms")
	require.NoError(t, os.WriteFile(path, []byte("loneword\n"), 0644))

	_, err := ParseFile(path)
	assert.Error(t, err)
}

func TestFilterKeepsUnique(t *testing.T) {
	input := []Entry{
		{"_Z1fun1i@x86_64", "ast/x86_64/fun1.c.ast"},
		{"_Z1fun2i@x86_64", "ast/x86_64/fun2.c.ast"},
		{"_Z1fun3i@x86_64", "ast/x86_64/fun3.c.ast"},
	}
	assert.Equal(t, input, Filter(input))
}

func TestFilterRepeatedPairIsStillUnique(t *testing.T) {
	input := []Entry{
		{"_Z1fun1i@x86_64", "ast/x86_64/fun1.c.ast"},
		{"_Z1fun2i@x86_64", "ast/x86_64/fun2.c.ast"},
	}
	result := Filter(append(append([]Entry{}, input...), input...))
	assert.Equal(t, input, result)
}

func TestFilterDropsAmbiguous(t *testing.T) {
	input := []Entry{
		{"_Z1fun1i@x86_64", "ast/x86_64/fun1.c.ast"},
		{"_Z1fun2i@x86_64", "ast/x86_64/fun2.c.ast"},
		{"_Z1fun1i@x86_64", "ast/x86_64/fun3.c.ast"},
	}
	result := Filter(input)
	require.Len(t, result, 1)
	assert.Equal(t, "_Z1fun2i@x86_64", result[0].Symbol)
}

func TestMerge(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "a.syms"),
		[]byte("sym1 mod/a.ast\nsym2 mod/b.ast\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "b.syms"),
		[]byte("sym2 mod/c.ast\nsym3 mod/d.ast\n"), 0644))

	out := filepath.Join(t.TempDir(), "merged.syms")
	require.NoError(t, Merge(inDir, out))

	merged, err := ParseFile(out)
	require.NoError(t, err)
	// sym2 is defined in two modules and is dropped.
	assert.Equal(t, []Entry{
		{"sym1", "mod/a.ast"},
		{"sym3", "mod/d.ast"},
	}, merged)
}
