// Package guess decides whether a submitted guess matches the active puzzle.
// It is a pure decision layer; the session performs all state mutation.
package guess
