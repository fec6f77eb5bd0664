// Package game defines the shared vocabulary of the puzzle engine: play
// modes, media kinds, session statuses, and the fixed reveal progression.
package game
