package daily

import (
	"math"
	"time"

	"posterdle/internal/catalog"
	"posterdle/internal/game"
)

// Mode offsets keep the normal and hard daily sequences from ever landing on
// the same seed for a given date. Changing these constants changes every
// player's daily puzzle, so they are fixed for the life of the game.
const (
	offsetDaily     = 0
	offsetDailyHard = 500000
	pageSalt        = 9999
)

// ModeOffset returns the seed offset for a daily mode.
func ModeOffset(mode game.Mode) int {
	if mode == game.ModeDailyHard {
		return offsetDailyHard
	}
	return offsetDaily
}

// SeedBase encodes a date and mode offset into the integer seed all daily
// derivations start from: year*10000 + month*100 + day + offset.
func SeedBase(date time.Time, modeOffset int) int {
	return date.Year()*10000 + int(date.Month())*100 + date.Day() + modeOffset
}

// Page derives the catalog page (1..catalog.MaxPopularPage) for a seed base.
func Page(seedBase int) int {
	return hash(seedBase+pageSalt)%catalog.MaxPopularPage + 1
}

// Index derives the in-page item index for a seed base once the page's item
// count is known. itemCount must be positive.
func Index(seedBase, itemCount int) int {
	return hash(seedBase) % itemCount
}

// hash is the fixed reproducible integer hash shared by every client: the
// fractional part of sin(seed)*10000, scaled to a six-digit integer. Do not
// replace it with a seeded PRNG; the exact values are the protocol.
func hash(seed int) int {
	x := math.Sin(float64(seed)) * 10000
	frac := x - math.Floor(x)
	return int(math.Floor(frac * 1000000))
}
