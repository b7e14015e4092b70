// Package app wires a validated Config into a running evolution: it loads the
// word list, seeds the random source, builds the mutator, renderer and
// observers, and runs the engine alongside the optional health server.
// It is decoupled from any specific entrypoint like a CLI.
package app
