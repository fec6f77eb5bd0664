// Command posterdle is the terminal client for the poster guessing game:
// it loads the daily or infinite puzzle, handles guesses and progressive
// reveal, and keeps streaks and outcomes in the local progress store.
package main
