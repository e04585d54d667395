// Package app wires the program together: it routes incoming
// instructions to the registered handlers and runs every invocation
// against an isolated store cache, so a failed instruction leaves no
// trace in the state.
package app
