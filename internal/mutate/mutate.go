// Package mutate produces the next generation of a sequence. Every strategy
// leaves locked cells untouched, keeps the length fixed, and emits a sequence
// that satisfies the structural invariants by construction; nothing is
// repaired after the fact.
package mutate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
)

// DefaultMaxAttempts caps the candidates tried for a single cell before the
// letter fallback is used.
const DefaultMaxAttempts = 40

// Strategy selects how unlocked cells are rewritten.
type Strategy string

const (
	// StrategyRepair rewrites individual cells, accepting a separator only
	// where the local constraints allow it.
	StrategyRepair Strategy = "repair"
	// StrategyLength merges unlocked runs and re-partitions them into blocks
	// whose lengths follow the word set's length distribution.
	StrategyLength Strategy = "length"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyRepair, StrategyLength}

var (
	// ErrUnknownStrategy is returned for a strategy name that is not recognised.
	ErrUnknownStrategy = errors.New("unknown mutation strategy")
	// ErrInvalidOptions is returned when Options cannot drive a mutator.
	ErrInvalidOptions = errors.New("invalid mutation options")
)

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Options configures a Mutator.
type Options struct {
	// MinBlock is the minimum run length the output must respect.
	MinBlock int
	// Rate is the per-cell (repair) or per-run (length) mutation probability.
	Rate float64
	// MaxAttempts caps candidate tries per cell. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// Lengths weights block lengths for StrategyLength, usually the word
	// set's length histogram. Nil means uniform.
	Lengths map[int]int
}

// Stats counts what one Mutate call did.
type Stats struct {
	// Attempted is the number of cells (or runs) drawn for mutation.
	Attempted int
	// Changed is the number of cells whose value differs afterwards.
	Changed int
	// Fallbacks is the number of cells that exhausted their attempts and
	// received a random letter.
	Fallbacks int
}

// Mutator turns one generation into the next.
type Mutator interface {
	Mutate(seq sequence.Sequence, locks match.Locks) (sequence.Sequence, Stats)
}

// New returns the Mutator for strategy.
func New(strategy Strategy, rng sequence.Rand, opts Options) (Mutator, error) {
	if opts.MinBlock < 1 {
		return nil, fmt.Errorf("%w: min block must be at least 1, got %d", ErrInvalidOptions, opts.MinBlock)
	}
	if opts.Rate < 0 || opts.Rate > 1 {
		return nil, fmt.Errorf("%w: rate must be within [0,1], got %g", ErrInvalidOptions, opts.Rate)
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	switch strategy {
	case StrategyRepair, "":
		return &Repair{rng: rng, opts: opts}, nil
	case StrategyLength:
		return &LengthBiased{rng: rng, opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// countChanged returns how many cells differ between a and b.
func countChanged(a, b sequence.Sequence) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
