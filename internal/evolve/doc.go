// Package evolve drives the generation loop: detect matches, lock them, render
// the frame, check for convergence, and mutate into the next generation.
//
// # State machine
//
//	Running ──(all runs are words)──▶ Converged
//	   │
//	   └──(context cancelled)──────▶ Cancelled
//
// The loop is strictly sequential. Cancellation is cooperative: it is noticed
// at the top of a tick or while waiting out the frame delay, never in the
// middle of a mutation. On cancellation the latest sequence is rendered once
// more and Run returns without an error.
//
// Observers (metrics, publishers) are called synchronously after each frame is
// rendered. An observer error is logged and does not stop the loop.
package evolve
