// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file builds the first generation.
//
// Why build left to right instead of sampling and repairing?
//
// A separator is only placed where both the run behind it and the room left in
// front of it can hold minBlock letters, so every prefix of the row is already
// valid. The result needs no retries and no repair pass.
package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a non-positive length is requested.
	ErrInvalidLength = errors.New("sequence length must be positive")
	// ErrTooShort is returned when the length cannot hold a single run of minBlock letters.
	ErrTooShort = errors.New("sequence length is shorter than the minimum block")
)

// Rand is the subset of *math/rand/v2.Rand the evolution needs.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// RandomLetter draws a uniform letter from Alphabet.
func RandomLetter(rng Rand) byte {
	return Alphabet[rng.IntN(len(Alphabet))]
}

// Generate builds a random Sequence of length n that satisfies every invariant
// for minBlock. spaceProb is the chance of placing a separator wherever one is
// allowed.
func Generate(rng Rand, n, minBlock int, spaceProb float64) (Sequence, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if minBlock < 1 {
		minBlock = 1
	}
	if n < minBlock {
		return nil, fmt.Errorf("%w: length %d, min block %d", ErrTooShort, n, minBlock)
	}

	seq := make(Sequence, 0, n)
	sinceSeparator := 0
	for len(seq) < n {
		if len(seq) == 0 {
			seq = append(seq, RandomLetter(rng))
			sinceSeparator = 1
			continue
		}
		remaining := n - len(seq)
		eligible := sinceSeparator >= minBlock && remaining-1 >= minBlock
		if eligible && rng.Float64() < spaceProb {
			seq = append(seq, Separator)
			sinceSeparator = 0
			continue
		}
		seq = append(seq, RandomLetter(rng))
		sinceSeparator++
	}

	// Unreachable with minBlock >= 1, kept so the last cell is never a separator.
	if seq[n-1] == Separator {
		seq[n-1] = RandomLetter(rng)
	}
	return seq, nil
}
