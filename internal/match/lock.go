package match

import "github.com/specialistvlad/weasel/internal/sequence"

// NoGroup marks a cell that belongs to no match.
const NoGroup = -1

// Locks is the per-cell freeze state of one generation. Group holds the index
// of the owning match in the slice passed to LockCells, or NoGroup.
type Locks struct {
	Locked []bool
	Group  []int
}

// NewLocks returns an all-unlocked state for n cells.
func NewLocks(n int) Locks {
	l := Locks{
		Locked: make([]bool, n),
		Group:  make([]int, n),
	}
	for i := range l.Group {
		l.Group[i] = NoGroup
	}
	return l
}

// LockCells locks every cell of every match, plus the separator directly
// before and after each match. Letters are never locked by adjacency.
func LockCells(seq sequence.Sequence, matches []Match) Locks {
	l := NewLocks(len(seq))
	for id, m := range matches {
		for i := m.Start; i < m.End; i++ {
			l.set(i, id)
		}
		if m.Start-1 >= 0 && seq.IsSeparator(m.Start-1) {
			l.set(m.Start-1, id)
		}
		if m.End < len(seq) && seq.IsSeparator(m.End) {
			l.set(m.End, id)
		}
	}
	return l
}

func (l Locks) set(i, group int) {
	l.Locked[i] = true
	l.Group[i] = group
}

// IsLocked reports whether cell i is frozen.
func (l Locks) IsLocked(i int) bool {
	return i >= 0 && i < len(l.Locked) && l.Locked[i]
}

// Count returns the number of locked cells.
func (l Locks) Count() int {
	n := 0
	for _, v := range l.Locked {
		if v {
			n++
		}
	}
	return n
}

// AnyLocked reports whether any cell in [start, end) is locked.
func (l Locks) AnyLocked(start, end int) bool {
	for i := start; i < end; i++ {
		if l.IsLocked(i) {
			return true
		}
	}
	return false
}
