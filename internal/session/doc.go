// Package session implements the game session state machine: puzzle
// loading, attempt progression, win/loss transitions, and ledger updates.
// The session is not re-entrant; callers hold off further input while a
// transition runs, which the loading/non-playing status guard enforces.
package session
