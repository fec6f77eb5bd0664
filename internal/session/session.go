package session

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"posterdle/internal/catalog"
	"posterdle/internal/effects"
	"posterdle/internal/game"
	"posterdle/internal/ledger"
	"posterdle/internal/logging"
)

var (
	// ErrNotPlaying is returned when a gameplay action arrives outside the
	// playing status.
	ErrNotPlaying = errors.New("no puzzle in progress")
	// ErrNoEligibleItem marks a catalog page with no poster-bearing item.
	// For daily modes this is a hard failure: the day's page is fixed and
	// unusable.
	ErrNoEligibleItem = errors.New("no eligible item on catalog page")
	// ErrNoPuzzle is returned when no puzzle has been loaded yet.
	ErrNoPuzzle = errors.New("no puzzle loaded")
)

// skipLabel is the sentinel recorded when the player submits a blank guess.
const skipLabel = "(passé)"

// LanguageFilterFrEn restricts infinite picks to French or English originals.
const LanguageFilterFrEn = "fr-en"

// Settings are the player-tunable gameplay options. Defaults come from
// config; persisted ledger values take precedence once changed in-game.
type Settings struct {
	RememberSeen   bool
	LanguageFilter string // "all" or LanguageFilterFrEn
	SeenTTL        time.Duration
}

// Session is the engine orchestrating one player's game. All state is
// owned here; the presentation layer renders Snapshot values and dispatches
// the operation methods.
type Session struct {
	mu     sync.Mutex
	client catalog.Client
	ledger *ledger.Ledger
	logger *slog.Logger
	rng    *rand.Rand
	now    func() time.Time

	mode     game.Mode
	media    game.MediaKind
	settings Settings

	status        game.Status
	puzzle        *catalog.Item
	step          int
	wrong         []game.WrongGuess
	strips        []effects.Effect
	reference     string
	pendingGiveUp bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand overrides the random source used for infinite picks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// New constructs a session. Mode starts at daily; the media kind restores
// the persisted preference, defaulting to movies. Persisted settings
// override the provided defaults.
func New(client catalog.Client, led *ledger.Ledger, defaults Settings, logger *slog.Logger, opts ...Option) (*Session, error) {
	if client == nil || led == nil {
		return nil, errors.New("session requires a catalog client and a ledger")
	}

	logger = logging.NewComponentLogger(logger, "session")
	logger = logger.With(logging.String("session_id", uuid.NewString()))

	s := &Session{
		client:   client,
		ledger:   led,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
		mode:     game.ModeDaily,
		media:    game.MediaMovie,
		settings: defaults,
		status:   game.StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}

	if pref, ok := led.MediaPref(); ok {
		s.media = pref
	}
	if enabled, ok := led.RememberSeen(); ok {
		s.settings.RememberSeen = enabled
	}
	if filter, ok := led.LanguageFilter(); ok {
		s.settings.LanguageFilter = filter
	}
	if s.settings.SeenTTL <= 0 {
		s.settings.SeenTTL = 48 * time.Hour
	}

	return s, nil
}

// Snapshot is the serializable view of the session the presentation layer
// renders.
type Snapshot struct {
	Mode          game.Mode
	Media         game.MediaKind
	Status        game.Status
	Puzzle        *catalog.Item
	Step          int
	RevealPercent int
	StripCount    int
	StripEffects  []effects.Effect
	WrongGuesses  []game.WrongGuess
	AttemptsLeft  int
	ReferenceID   string
	Streak        ledger.StreakRecord
	Settings      Settings
	PendingGiveUp bool
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Mode:          s.mode,
		Media:         s.media,
		Status:        s.status,
		Step:          s.step,
		RevealPercent: revealPercent(s.step),
		StripCount:    game.StripCount(s.step),
		AttemptsLeft:  game.MaxAttempts() - s.step,
		ReferenceID:   s.reference,
		Settings:      s.settings,
		PendingGiveUp: s.pendingGiveUp,
	}
	if s.puzzle != nil {
		puzzle := *s.puzzle
		snap.Puzzle = &puzzle
	}
	snap.WrongGuesses = append([]game.WrongGuess(nil), s.wrong...)
	snap.StripEffects = append([]effects.Effect(nil), s.strips...)
	if s.mode.IsInfinite() {
		snap.Streak = s.ledger.Streak(s.mode, s.media)
	}
	return snap
}

// revealPercent maps an attempt step into the fixed reveal schedule; the
// value is how much of the poster is still hidden.
func revealPercent(step int) int {
	if step < 0 {
		return game.RevealSchedule[0]
	}
	if step >= len(game.RevealSchedule) {
		return game.RevealSchedule[len(game.RevealSchedule)-1]
	}
	return game.RevealSchedule[step]
}

// frenchOrEnglish reports whether an item satisfies the fr-en language filter.
func frenchOrEnglish(item catalog.Item) bool {
	return item.OriginalLanguage == "fr" || item.OriginalLanguage == "en"
}
