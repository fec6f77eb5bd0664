// Package titles canonicalizes free-text titles for comparison. Guesses and
// catalog titles pass through the same normalization so that case, accents,
// punctuation, and leading articles never decide a match.
package titles
