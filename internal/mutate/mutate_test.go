package mutate

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
	"github.com/specialistvlad/weasel/internal/wordset"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// separatorFirst always triggers mutation and always tries the separator
// before any letter, which makes the fallback path reachable.
type separatorFirst struct{}

func (separatorFirst) IntN(n int) int   { return 0 }
func (separatorFirst) Float64() float64 { return 0 }
func (separatorFirst) Shuffle(n int, swap func(i, j int)) {
	// candidates ends with the separator; move it to the front.
	swap(0, n-1)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Repair ")
	require.NoError(t, err)
	assert.Equal(t, StrategyRepair, s)

	s, err = ParseStrategy("length")
	require.NoError(t, err)
	assert.Equal(t, StrategyLength, s)

	_, err = ParseStrategy("sanitize")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	_, err := New(StrategyRepair, newRand(1), Options{MinBlock: 0, Rate: 0.1})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = New(StrategyRepair, newRand(1), Options{MinBlock: 3, Rate: 1.5})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = New(Strategy("bogus"), newRand(1), Options{MinBlock: 3, Rate: 0.1})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMutate_PreservesInvariantsAndLocks(t *testing.T) {
	t.Parallel()

	words := wordset.New(3, "cat", "dog", "horse", "bird", "fish", "tree", "sun")
	for _, strategy := range Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			for seed := uint64(0); seed < 40; seed++ {
				// --- Arrange ---
				rng := newRand(seed)
				m, err := New(strategy, rng, Options{MinBlock: 3, Rate: 0.3, Lengths: words.LengthHistogram()})
				require.NoError(t, err)
				seq, err := sequence.Generate(rng, 90, 3, 0.15)
				require.NoError(t, err)

				for gen := 0; gen < 60; gen++ {
					matches := match.Detect(seq, words, 3)
					locks := match.LockCells(seq, matches)

					// --- Act ---
					next, _ := m.Mutate(seq, locks)

					// --- Assert ---
					require.Len(t, next, len(seq))
					require.NoError(t, next.Validate(3), "seed %d gen %d: %q -> %q", seed, gen, seq, next)
					for i, locked := range locks.Locked {
						if locked {
							require.Equal(t, seq[i], next[i], "locked cell %d changed", i)
						}
					}
					again := match.Detect(next, words, 3)
					for _, prev := range matches {
						assert.Contains(t, again, prev, "match %v was not re-selected", prev)
					}
					seq = next
				}
			}
		})
	}
}

func TestRepair_LockedSequenceIsUntouched(t *testing.T) {
	// --- Arrange ---
	words := wordset.New(3, "cat", "dog")
	seq := sequence.Parse("cat dog")
	locks := match.LockCells(seq, match.Detect(seq, words, 3))
	m, err := New(StrategyRepair, newRand(3), Options{MinBlock: 3, Rate: 1})
	require.NoError(t, err)

	// --- Act ---
	next, st := m.Mutate(seq, locks)

	// --- Assert ---
	assert.Equal(t, seq, next)
	assert.Zero(t, st.Attempted)
	assert.Zero(t, st.Changed)
}

func TestRepair_NoSeparatorUnlessBothSidesFit(t *testing.T) {
	words := wordset.New(3, "cat")
	seq := sequence.Parse("xyzcatqrs")
	locks := match.LockCells(seq, match.Detect(seq, words, 3))
	require.Zero(t, locks.Count())

	for seed := uint64(0); seed < 300; seed++ {
		m, err := New(StrategyRepair, newRand(seed), Options{MinBlock: 3, Rate: 1})
		require.NoError(t, err)

		next, _ := m.Mutate(seq, locks)

		require.Len(t, next, 9)
		require.NoError(t, next.Validate(3))
		if idx := bytes.IndexByte(next, sequence.Separator); idx >= 0 {
			assert.GreaterOrEqual(t, idx, 3, "left side of a separator must hold min block letters")
			assert.LessOrEqual(t, idx, 5, "right side of a separator must hold min block letters")
		}
	}
}

func TestRepair_FallbackWhenNoSplitFits(t *testing.T) {
	// --- Arrange ---
	// With min block 5 no cell of a 9-letter run can become a separator, and
	// a single attempt means the separator-first order always falls back.
	seq := sequence.Parse("xyzcatqrs")
	locks := match.NewLocks(len(seq))
	m, err := New(StrategyRepair, separatorFirst{}, Options{MinBlock: 5, Rate: 1, MaxAttempts: 1})
	require.NoError(t, err)

	// --- Act ---
	var next sequence.Sequence
	var st Stats
	require.NotPanics(t, func() { next, st = m.Mutate(seq, locks) })

	// --- Assert ---
	assert.Len(t, next, 9)
	require.NoError(t, next.Validate(5))
	assert.Equal(t, 9, st.Attempted)
	assert.Equal(t, 9, st.Fallbacks)
	assert.Equal(t, "aaaaaaaaa", next.String(), "fallback draws letter index 0 from the stub")
}

func TestRepair_SeparatorAcceptedWhenAllowed(t *testing.T) {
	// The separator-first stub with a roomy run places a separator as soon as
	// both sides hold min block letters.
	seq := sequence.Parse("abcdefghij")
	m, err := New(StrategyRepair, separatorFirst{}, Options{MinBlock: 3, Rate: 1})
	require.NoError(t, err)

	next, st := m.Mutate(seq, match.NewLocks(len(seq)))

	require.NoError(t, next.Validate(3))
	// Letters fall back to 'b', the second candidate after the swap.
	assert.Equal(t, "bbb bbbbbb", next.String())
	assert.Zero(t, st.Fallbacks)
}

func TestCanPlaceSeparator(t *testing.T) {
	seq := sequence.Parse("abcdefg hij")
	none := match.NewLocks(len(seq))

	assert.False(t, CanPlaceSeparator(seq, none, 0, 3), "first cell")
	assert.False(t, CanPlaceSeparator(seq, none, 10, 3), "last cell")
	assert.False(t, CanPlaceSeparator(seq, none, 6, 3), "next to a separator")
	assert.False(t, CanPlaceSeparator(seq, none, 2, 3), "left run too short")
	assert.True(t, CanPlaceSeparator(seq, none, 3, 3))

	locked := match.NewLocks(len(seq))
	locked.Locked[0] = true
	assert.False(t, CanPlaceSeparator(seq, locked, 3, 3), "would split a locked run")
}

func TestLengthBiased_Partition(t *testing.T) {
	l := &LengthBiased{rng: newRand(5), opts: Options{MinBlock: 3, Lengths: map[int]int{3: 10, 4: 5}}}

	for n := 3; n < 60; n++ {
		blocks := l.Partition(n)

		total := len(blocks) - 1
		for _, b := range blocks {
			assert.GreaterOrEqual(t, b, 3, "n=%d blocks=%v", n, blocks)
			total += b
		}
		assert.Equal(t, n, total, "n=%d blocks=%v", n, blocks)
	}
}

func TestLengthBiased_PartitionFollowsHistogram(t *testing.T) {
	// Only length 4 has weight, so a 14-cell span splits as 4+1+4+1+4.
	l := &LengthBiased{rng: newRand(9), opts: Options{MinBlock: 3, Lengths: map[int]int{4: 1}}}

	assert.Equal(t, []int{4, 4, 4}, l.Partition(14))
}

func TestLengthBiased_MergesUnlockedRuns(t *testing.T) {
	seq := sequence.Parse("abc def")
	m, err := New(StrategyLength, separatorFirst{}, Options{MinBlock: 3, Rate: 1, Lengths: map[int]int{7: 1}})
	require.NoError(t, err)

	next, st := m.Mutate(seq, match.NewLocks(len(seq)))

	require.NoError(t, next.Validate(3))
	assert.Len(t, next.Runs(), 1, "the separator is merged and the 7-cell run kept whole")
	assert.Equal(t, 2, st.Attempted)
}
