package match

import "github.com/specialistvlad/weasel/internal/sequence"

// Complete reports whether seq is finished: it has at least one run of
// minBlock or more letters, and every such run is a word.
func Complete(seq sequence.Sequence, words WordMembership, minBlock int) bool {
	found := false
	for _, r := range seq.Runs() {
		if r.Len() < minBlock {
			continue
		}
		if !words.Contains(seq.Text(r)) {
			return false
		}
		found = true
	}
	return found
}
