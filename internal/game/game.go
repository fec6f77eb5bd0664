package game

// Mode identifies one of the four play modes.
type Mode string

const (
	ModeDaily        Mode = "daily"
	ModeDailyHard    Mode = "daily-hard"
	ModeInfinite     Mode = "infinite"
	ModeInfiniteHard Mode = "infinite-hard"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeDaily, ModeDailyHard, ModeInfinite, ModeInfiniteHard}

// IsDaily reports whether the mode plays one fixed puzzle per calendar day.
func (m Mode) IsDaily() bool {
	return m == ModeDaily || m == ModeDailyHard
}

// IsInfinite reports whether the mode tracks a win streak instead of a daily outcome.
func (m Mode) IsInfinite() bool {
	return m == ModeInfinite || m == ModeInfiniteHard
}

// IsHard reports whether poster strips carry visual distortions in this mode.
func (m Mode) IsHard() bool {
	return m == ModeDailyHard || m == ModeInfiniteHard
}

// Valid reports whether the mode is one of the four known values.
func (m Mode) Valid() bool {
	switch m {
	case ModeDaily, ModeDailyHard, ModeInfinite, ModeInfiniteHard:
		return true
	}
	return false
}

// MediaKind distinguishes movies from TV shows.
type MediaKind string

const (
	MediaMovie MediaKind = "movie"
	MediaTV    MediaKind = "tv"
)

// Valid reports whether the media kind is known.
func (k MediaKind) Valid() bool {
	return k == MediaMovie || k == MediaTV
}

// Status is the lifecycle state of the active puzzle.
type Status string

const (
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Resolved reports whether the puzzle reached a terminal state.
func (s Status) Resolved() bool {
	return s == StatusWon || s == StatusLost
}

// WrongGuess records one failed attempt: the label shown to the player and
// the year extracted from the raw guess, empty when none was given.
type WrongGuess struct {
	Label string `json:"label"`
	Year  string `json:"year"`
}

// RevealSchedule is the descending sequence of hidden-poster percentages.
// Index i is the amount still covered at attempt i; its length is the
// maximum number of attempts.
var RevealSchedule = []int{100, 80, 60, 40, 20, 10}

// MaxAttempts is the number of guesses before the puzzle is lost.
func MaxAttempts() int {
	return len(RevealSchedule)
}

// StripCount returns how many poster strips are individually rendered at the
// given attempt step. One strip opens per consumed attempt.
func StripCount(step int) int {
	if step < 0 {
		return 1
	}
	if step >= len(RevealSchedule) {
		return len(RevealSchedule)
	}
	return step + 1
}
