package mutate

import (
	"sort"

	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
)

// LengthBiased mutates whole runs. It first merges unlocked runs by turning
// unlocked separators into letters, then rewrites unlocked runs as blocks of
// word-like lengths. Block edges never touch the run's edges, so the
// surrounding separators stay single and every block is long enough.
type LengthBiased struct {
	rng  sequence.Rand
	opts Options
}

// Mutate implements Mutator.
func (l *LengthBiased) Mutate(seq sequence.Sequence, locks match.Locks) (sequence.Sequence, Stats) {
	out := seq.Clone()
	var st Stats

	for i := range out {
		if !out.IsSeparator(i) || locks.IsLocked(i) {
			continue
		}
		if l.rng.Float64() >= l.opts.Rate {
			continue
		}
		if l.touchesLock(out, locks, i) {
			continue
		}
		st.Attempted++
		out[i] = sequence.RandomLetter(l.rng)
	}

	for _, r := range out.Runs() {
		if locks.AnyLocked(r.Start, r.End) {
			continue
		}
		if l.rng.Float64() >= l.opts.Rate {
			continue
		}
		st.Attempted++
		l.rewrite(out, r)
	}

	st.Changed = countChanged(seq, out)
	return out, st
}

// touchesLock reports whether turning separator i into a letter would merge
// into a run that holds locked cells.
func (l *LengthBiased) touchesLock(cur sequence.Sequence, locks match.Locks, i int) bool {
	if r, ok := cur.RunAt(i - 1); ok && locks.AnyLocked(r.Start, r.End) {
		return true
	}
	if r, ok := cur.RunAt(i + 1); ok && locks.AnyLocked(r.Start, r.End) {
		return true
	}
	return false
}

// rewrite fills span r with fresh blocks of letters separated by single
// separators.
func (l *LengthBiased) rewrite(out sequence.Sequence, r sequence.Run) {
	pos := r.Start
	for bi, size := range l.Partition(r.Len()) {
		if bi > 0 {
			out[pos] = sequence.Separator
			pos++
		}
		for k := 0; k < size; k++ {
			out[pos] = sequence.RandomLetter(l.rng)
			pos++
		}
	}
}

// Partition splits a span of n cells into block sizes. Consecutive blocks are
// separated by one cell, so the sizes plus the separators add up to n. Every
// block is at least MinBlock long whenever n is.
func (l *LengthBiased) Partition(n int) []int {
	minBlock := l.opts.MinBlock
	var blocks []int
	rem := n
	for rem >= 2*minBlock+1 {
		k := l.pickLength(rem)
		if k == rem {
			break
		}
		blocks = append(blocks, k)
		rem -= k + 1
	}
	return append(blocks, rem)
}

// pickLength draws the next block size for a remainder of rem cells. Options
// are rem itself (no split) and every size that leaves at least MinBlock
// cells after a separator.
func (l *LengthBiased) pickLength(rem int) int {
	minBlock := l.opts.MinBlock
	sizes := []int{rem}
	for k := minBlock; k <= rem-minBlock-1; k++ {
		sizes = append(sizes, k)
	}
	sort.Ints(sizes)

	weights := make([]int, len(sizes))
	total := 0
	for i, k := range sizes {
		weights[i] = l.opts.Lengths[k]
		total += weights[i]
	}
	if total == 0 {
		return sizes[l.rng.IntN(len(sizes))]
	}

	pick := l.rng.IntN(total)
	for i, w := range weights {
		if pick < w {
			return sizes[i]
		}
		pick -= w
	}
	return rem
}
