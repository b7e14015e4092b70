package mutate

import (
	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
)

// candidates is every value a cell may take.
const candidates = sequence.Alphabet + string(sequence.Separator)

// Repair mutates cell by cell. A letter is always acceptable; a separator is
// accepted only where both resulting runs are long enough and free of locks.
// Each accepted value leaves the working sequence valid, so the pass as a
// whole is valid.
type Repair struct {
	rng  sequence.Rand
	opts Options
}

// Mutate implements Mutator.
func (r *Repair) Mutate(seq sequence.Sequence, locks match.Locks) (sequence.Sequence, Stats) {
	out := seq.Clone()
	var st Stats
	for i := range out {
		if locks.IsLocked(i) {
			continue
		}
		if r.rng.Float64() >= r.opts.Rate {
			continue
		}
		st.Attempted++
		v, ok := r.choose(out, locks, i)
		if !ok {
			st.Fallbacks++
		}
		out[i] = v
	}
	st.Changed = countChanged(seq, out)
	return out, st
}

// choose picks the replacement for cell i. The boolean is false when the
// attempt cap was reached and a fallback letter was drawn instead.
func (r *Repair) choose(cur sequence.Sequence, locks match.Locks, i int) (byte, bool) {
	order := []byte(candidates)
	r.rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

	for attempt, c := range order {
		if attempt >= r.opts.MaxAttempts {
			break
		}
		if c != sequence.Separator {
			return c, true
		}
		if CanPlaceSeparator(cur, locks, i, r.opts.MinBlock) {
			return c, true
		}
	}
	return sequence.RandomLetter(r.rng), false
}

// CanPlaceSeparator reports whether cell i of cur may hold a separator
// without breaking an invariant or splitting a locked run.
func CanPlaceSeparator(cur sequence.Sequence, locks match.Locks, i, minBlock int) bool {
	n := len(cur)
	if i <= 0 || i >= n-1 {
		return false
	}
	if cur.IsSeparator(i-1) || cur.IsSeparator(i+1) {
		return false
	}
	left := cur.LettersBefore(i)
	right := cur.LettersAfter(i)
	if left < minBlock || right < minBlock {
		return false
	}
	if locks.AnyLocked(i-left, i) || locks.AnyLocked(i+1, i+1+right) {
		return false
	}
	return true
}
