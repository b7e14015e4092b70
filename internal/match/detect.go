// Package match finds the words a sequence already spells, derives which
// cells those words freeze for the current generation, and decides when the
// whole sequence is made of words.
//
// Everything here is a pure function of the sequence and the word set. Locks
// are never carried from one generation to the next; a matched word keeps its
// lock only because its cells are never mutated, so it is matched again.
package match

import (
	"sort"

	"github.com/specialistvlad/weasel/internal/sequence"
)

// WordMembership reports whether a token is a valid word.
type WordMembership interface {
	Contains(token string) bool
}

// Match is a run whose text is a word and whose neighbours are separators or
// sequence ends.
type Match struct {
	Start int
	End   int
	Word  string
}

// Len returns the number of letters in the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Run returns the span of the match.
func (m Match) Run() sequence.Run {
	return sequence.Run{Start: m.Start, End: m.End}
}

// Candidates returns every run of at least minBlock letters that is bounded on
// both sides and spelled as a word, in left-to-right order.
func Candidates(seq sequence.Sequence, words WordMembership, minBlock int) []Match {
	var out []Match
	for _, r := range seq.Runs() {
		if r.Len() < minBlock || !bounded(seq, r) {
			continue
		}
		text := seq.Text(r)
		if !words.Contains(text) {
			continue
		}
		out = append(out, Match{Start: r.Start, End: r.End, Word: text})
	}
	return out
}

// Detect returns the non-overlapping matches in seq. Longer candidates win;
// among equal lengths the leftmost wins. The result is in selection order.
func Detect(seq sequence.Sequence, words WordMembership, minBlock int) []Match {
	return Select(Candidates(seq, words, minBlock), len(seq))
}

// Select greedily picks non-overlapping candidates, longest first and then
// leftmost first. n is the length of the sequence the candidates index into.
func Select(candidates []Match, n int) []Match {
	ordered := make([]Match, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Len() != ordered[j].Len() {
			return ordered[i].Len() > ordered[j].Len()
		}
		return ordered[i].Start < ordered[j].Start
	})

	claimed := make([]bool, n)
	chosen := make([]Match, 0, len(ordered))
	for _, c := range ordered {
		if anyClaimed(claimed, c.Start, c.End) {
			continue
		}
		for i := c.Start; i < c.End; i++ {
			claimed[i] = true
		}
		chosen = append(chosen, c)
	}
	return chosen
}

func anyClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// bounded reports whether r is isolated by separators or sequence ends.
func bounded(seq sequence.Sequence, r sequence.Run) bool {
	leftOK := r.Start == 0 || seq.IsSeparator(r.Start-1)
	rightOK := r.End == len(seq) || seq.IsSeparator(r.End)
	return leftOK && rightOK
}
