package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
)

func catDog() (sequence.Sequence, match.Locks) {
	seq := sequence.Parse("cat dog xyz")
	matches := []match.Match{{Start: 0, End: 3, Word: "cat"}, {Start: 4, End: 7, Word: "dog"}}
	return seq, match.LockCells(seq, matches)
}

func TestTerminal_NeverColorIsPlainText(t *testing.T) {
	seq, locks := catDog()
	r := NewTerminal(&bytes.Buffer{}, ColorNever)

	assert.Equal(t, "cat dog xyz", r.Render(seq, locks))
}

func TestTerminal_AutoOnBufferIsPlainText(t *testing.T) {
	seq, locks := catDog()
	r := NewTerminal(&bytes.Buffer{}, ColorAuto)

	assert.Equal(t, "cat dog xyz", r.Render(seq, locks), "a buffer is not a terminal")
}

func TestTerminal_AlwaysHighlightsEachGroup(t *testing.T) {
	// --- Arrange ---
	seq, locks := catDog()
	r := NewTerminal(&bytes.Buffer{}, ColorAlways)

	// --- Act ---
	out := r.Render(seq, locks)

	// --- Assert ---
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, 2, strings.Count(out, "\x1b[0m"), "one highlighted segment per lock group")
	assert.True(t, strings.HasSuffix(out, " xyz"), "unlocked cells stay plain: %q", out)
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, " dog ")
}

func TestTerminal_NoLocks(t *testing.T) {
	seq := sequence.Parse("xyzcatqrs")
	r := NewTerminal(&bytes.Buffer{}, ColorAlways)

	assert.Equal(t, "xyzcatqrs", r.Render(seq, match.NewLocks(len(seq))))
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("ALWAYS")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)

	_, err = ParseColorMode("rainbow")
	require.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f), "a regular file is not a terminal")
}
