// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Sequence type, its runs, and the structural
// invariants every generation must satisfy.
package sequence

import (
	"errors"
	"fmt"
)

// Separator is the single non-letter symbol a cell may hold.
const Separator byte = ' '

// Alphabet lists the letters a cell may hold.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

var (
	// ErrLeadingSeparator is returned when the first cell is a separator.
	ErrLeadingSeparator = errors.New("sequence starts with a separator")
	// ErrTrailingSeparator is returned when the last cell is a separator.
	ErrTrailingSeparator = errors.New("sequence ends with a separator")
	// ErrAdjacentSeparators is returned when two separators touch.
	ErrAdjacentSeparators = errors.New("sequence has adjacent separators")
	// ErrShortRun is returned when a run is shorter than the minimum block.
	ErrShortRun = errors.New("sequence has a run shorter than the minimum block")
	// ErrInvalidCell is returned when a cell holds neither a letter nor a separator.
	ErrInvalidCell = errors.New("sequence has an invalid cell")
)

// Sequence is a fixed-length row of cells. Each cell is a lowercase ASCII
// letter or Separator.
type Sequence []byte

// Run is a maximal span of letters, as the half-open range [Start, End).
type Run struct {
	Start int
	End   int
}

// Len returns the number of letters in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// Overlaps reports whether r and o share at least one cell.
func (r Run) Overlaps(o Run) bool {
	return r.Start < o.End && o.Start < r.End
}

// Parse converts a string into a Sequence without validating it.
func Parse(s string) Sequence {
	return Sequence(s)
}

// String returns the sequence as text.
func (s Sequence) String() string {
	return string(s)
}

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// IsSeparator reports whether cell i holds the separator.
func (s Sequence) IsSeparator(i int) bool {
	return s[i] == Separator
}

// Text returns the letters covered by r.
func (s Sequence) Text(r Run) string {
	return string(s[r.Start:r.End])
}

// Runs returns every maximal letter run, left to right.
func (s Sequence) Runs() []Run {
	var runs []Run
	start := -1
	for i, c := range s {
		if c == Separator {
			if start >= 0 {
				runs = append(runs, Run{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, End: len(s)})
	}
	return runs
}

// RunAt returns the maximal letter run containing cell i. It returns false
// when cell i is a separator or out of range.
func (s Sequence) RunAt(i int) (Run, bool) {
	if i < 0 || i >= len(s) || s[i] == Separator {
		return Run{}, false
	}
	start := i
	for start > 0 && s[start-1] != Separator {
		start--
	}
	end := i + 1
	for end < len(s) && s[end] != Separator {
		end++
	}
	return Run{Start: start, End: end}, true
}

// LettersBefore counts the letters immediately left of cell i, up to the
// previous separator or the start of the row.
func (s Sequence) LettersBefore(i int) int {
	n := 0
	for j := i - 1; j >= 0 && s[j] != Separator; j-- {
		n++
	}
	return n
}

// LettersAfter counts the letters immediately right of cell i, up to the next
// separator or the end of the row.
func (s Sequence) LettersAfter(i int) int {
	n := 0
	for k := i + 1; k < len(s) && s[k] != Separator; k++ {
		n++
	}
	return n
}

// Validate checks the structural invariants and returns the first violation.
func (s Sequence) Validate(minBlock int) error {
	if len(s) == 0 {
		return nil
	}
	for i, c := range s {
		if c != Separator && (c < 'a' || c > 'z') {
			return fmt.Errorf("%w: %q at index %d", ErrInvalidCell, c, i)
		}
	}
	if s[0] == Separator {
		return ErrLeadingSeparator
	}
	if s[len(s)-1] == Separator {
		return ErrTrailingSeparator
	}
	for i := 1; i < len(s); i++ {
		if s[i] == Separator && s[i-1] == Separator {
			return fmt.Errorf("%w at index %d", ErrAdjacentSeparators, i-1)
		}
	}
	for _, r := range s.Runs() {
		if r.Len() < minBlock {
			return fmt.Errorf("%w: [%d,%d) has %d letters, need %d", ErrShortRun, r.Start, r.End, r.Len(), minBlock)
		}
	}
	return nil
}
