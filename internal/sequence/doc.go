// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sequence provides the cell-level model that every other stage of
// the evolution works on: a fixed-length row of lowercase letters and single
// separators.
//
// # Core Concepts
//
//   - Sequence: the row itself. It is a plain byte slice so it can be copied,
//     compared and printed without ceremony. A generation never edits the
//     previous Sequence; it produces a new one.
//
//   - Run: a maximal span of letters, bounded by separators or by the ends of
//     the row. Runs are derived on demand and carry no identity between
//     generations.
//
//   - Invariants: a valid Sequence never starts or ends with a separator,
//     never holds two separators side by side, and every Run is at least
//     minBlock letters long. Validate reports the first violation it finds.
//
// Why a separate sequence package?
//
// Detection, locking, mutation and rendering all reason about the same cells
// and the same runs. Keeping the representation and its invariants in one
// leaf package means each stage can be tested against a single definition of
// "valid", and the generator can be checked with the exact same Validate the
// mutator is checked with.
package sequence
