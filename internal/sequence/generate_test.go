package sequence

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerate_PreservesInvariants(t *testing.T) {
	t.Parallel()

	for _, minBlock := range []int{1, 2, 3, 5} {
		for seed := uint64(0); seed < 200; seed++ {
			// --- Arrange ---
			rng := newRand(seed)
			n := 1 + int(seed%130)
			if n < minBlock {
				n = minBlock
			}

			// --- Act ---
			seq, err := Generate(rng, n, minBlock, 0.3)

			// --- Assert ---
			require.NoError(t, err)
			require.Len(t, seq, n, "seed %d", seed)
			require.NoError(t, seq.Validate(minBlock), "seed %d produced %q", seed, seq)
		}
	}
}

func TestGenerate_PlacesSeparators(t *testing.T) {
	rng := newRand(7)

	seq, err := Generate(rng, 120, 3, 0.5)
	require.NoError(t, err)

	assert.Greater(t, len(seq.Runs()), 1, "a high space probability should split the row")
}

func TestGenerate_ZeroProbabilityHasNoSeparators(t *testing.T) {
	rng := newRand(1)

	seq, err := Generate(rng, 50, 3, 0)
	require.NoError(t, err)

	assert.Len(t, seq.Runs(), 1)
	assert.NotContains(t, seq.String(), " ")
}

func TestGenerate_Errors(t *testing.T) {
	rng := newRand(1)

	_, err := Generate(rng, 0, 3, 0.1)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(rng, 2, 3, 0.1)
	require.ErrorIs(t, err, ErrTooShort)
}

func TestGenerate_IsDeterministicForSeed(t *testing.T) {
	a, err := Generate(newRand(99), 80, 3, 0.1)
	require.NoError(t, err)
	b, err := Generate(newRand(99), 80, 3, 0.1)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
