package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"posterdle/internal/game"
	"posterdle/internal/logging"
)

// Outcome is the persisted result of a daily puzzle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// StreakRecord tracks consecutive infinite-mode wins for one (mode, media)
// pair. TodayBest is keyed by calendar day; bests only ever grow within
// their windows.
type StreakRecord struct {
	Current      int    `json:"current"`
	TodayBest    int    `json:"today_best"`
	TodayBestDay string `json:"today_best_day"`
	AllTimeBest  int    `json:"all_time_best"`
}

// SeenEntry is one remembered infinite-mode item. The blob format is the
// persisted wire shape: a JSON array of these records.
type SeenEntry struct {
	MovieID int64 `json:"movieId"`
	Expiry  int64 `json:"expiry"` // epoch millis
}

// Ledger reads and writes game progress through a Storage port. Read errors
// and malformed blobs degrade to empty values; write errors propagate.
type Ledger struct {
	storage Storage
	logger  *slog.Logger
}

// New wraps a storage port. A nil logger is replaced with a no-op.
func New(storage Storage, logger *slog.Logger) *Ledger {
	return &Ledger{
		storage: storage,
		logger:  logging.NewComponentLogger(logger, "ledger"),
	}
}

// Day formats a time as the calendar-day string all day-scoped keys use.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// MarkDayWon records a daily win. The win and loss flags for a key tuple are
// mutually exclusive, so any prior loss flag is removed.
func (l *Ledger) MarkDayWon(mode game.Mode, media game.MediaKind, day string) error {
	if err := l.storage.Set(winKey(mode, media, day), day); err != nil {
		return fmt.Errorf("mark day won: %w", err)
	}
	if err := l.storage.Remove(lossKey(mode, media, day)); err != nil {
		return fmt.Errorf("clear loss flag: %w", err)
	}
	return nil
}

// MarkDayLost records a daily loss and clears any prior win flag.
func (l *Ledger) MarkDayLost(mode game.Mode, media game.MediaKind, day string) error {
	if err := l.storage.Set(lossKey(mode, media, day), day); err != nil {
		return fmt.Errorf("mark day lost: %w", err)
	}
	if err := l.storage.Remove(winKey(mode, media, day)); err != nil {
		return fmt.Errorf("clear win flag: %w", err)
	}
	return nil
}

// DayOutcome returns the persisted result for a daily key tuple, together
// with the stored completion-day string when one exists.
func (l *Ledger) DayOutcome(mode game.Mode, media game.MediaKind, day string) (Outcome, string) {
	if value, found, err := l.storage.Get(winKey(mode, media, day)); err == nil && found {
		return OutcomeWon, value
	}
	if value, found, err := l.storage.Get(lossKey(mode, media, day)); err == nil && found {
		return OutcomeLost, value
	}
	return OutcomeNone, ""
}

// CachedDailyItemID returns the catalog id previously resolved for a daily
// key tuple, so reloads replay the same item without re-deriving it.
func (l *Ledger) CachedDailyItemID(mode game.Mode, media game.MediaKind, day string) (int64, bool) {
	value, found, err := l.storage.Get(dailyItemKey(mode, media, day))
	if err != nil || !found {
		return 0, false
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SetCachedDailyItemID stores the resolved daily catalog id.
func (l *Ledger) SetCachedDailyItemID(mode game.Mode, media game.MediaKind, day string, id int64) error {
	if err := l.storage.Set(dailyItemKey(mode, media, day), strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("cache daily item: %w", err)
	}
	return nil
}

// Streak returns the streak record for a (mode, media) pair. Missing or
// malformed records read as zero.
func (l *Ledger) Streak(mode game.Mode, media game.MediaKind) StreakRecord {
	value, found, err := l.storage.Get(streakKey(mode, media))
	if err != nil || !found {
		return StreakRecord{}
	}
	var rec StreakRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		l.logger.Warn("malformed streak record, starting fresh",
			logging.String("mode", string(mode)),
			logging.String("media", string(media)),
			logging.Error(err))
		return StreakRecord{}
	}
	if rec.Current < 0 {
		rec.Current = 0
	}
	return rec
}

// RecordWin increments the current streak and raises the day and all-time
// bests where needed, then persists the record.
func (l *Ledger) RecordWin(mode game.Mode, media game.MediaKind, day string) (StreakRecord, error) {
	rec := l.Streak(mode, media)
	rec.Current++
	if rec.TodayBestDay != day {
		rec.TodayBestDay = day
		rec.TodayBest = 0
	}
	if rec.Current > rec.TodayBest {
		rec.TodayBest = rec.Current
	}
	if rec.Current > rec.AllTimeBest {
		rec.AllTimeBest = rec.Current
	}
	return rec, l.saveStreak(mode, media, rec)
}

// RecordLoss resets the current streak to zero. Bests are never lowered.
func (l *Ledger) RecordLoss(mode game.Mode, media game.MediaKind) (StreakRecord, error) {
	rec := l.Streak(mode, media)
	rec.Current = 0
	return rec, l.saveStreak(mode, media, rec)
}

// AbandonStreak forfeits an in-progress streak, as when the player leaves an
// active infinite session.
func (l *Ledger) AbandonStreak(mode game.Mode, media game.MediaKind) error {
	_, err := l.RecordLoss(mode, media)
	return err
}

func (l *Ledger) saveStreak(mode game.Mode, media game.MediaKind, rec StreakRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal streak: %w", err)
	}
	if err := l.storage.Set(streakKey(mode, media), string(data)); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// SeenRecently returns the non-expired remembered item ids for a media kind.
// Expired entries are dropped from the view on every read; they are only
// physically removed by the next AddSeen write.
func (l *Ledger) SeenRecently(media game.MediaKind, now time.Time) []int64 {
	entries := l.activeSeen(media, now)
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.MovieID)
	}
	return ids
}

// AddSeen remembers a resolved item until now+ttl and rewrites the whole
// sequence, which also compacts away expired entries.
func (l *Ledger) AddSeen(media game.MediaKind, id int64, now time.Time, ttl time.Duration) error {
	entries := l.activeSeen(media, now)
	entries = append(entries, SeenEntry{MovieID: id, Expiry: now.Add(ttl).UnixMilli()})

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal seen set: %w", err)
	}
	if err := l.storage.Set(seenKey(media), string(data)); err != nil {
		return fmt.Errorf("save seen set: %w", err)
	}
	return nil
}

func (l *Ledger) activeSeen(media game.MediaKind, now time.Time) []SeenEntry {
	value, found, err := l.storage.Get(seenKey(media))
	if err != nil || !found {
		return nil
	}
	var entries []SeenEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		l.logger.Warn("malformed seen set, treating as empty",
			logging.String("media", string(media)),
			logging.Error(err))
		return nil
	}
	cutoff := now.UnixMilli()
	active := entries[:0]
	for _, e := range entries {
		if e.Expiry > cutoff {
			active = append(active, e)
		}
	}
	return active
}

// MediaPref returns the persisted media-kind preference.
func (l *Ledger) MediaPref() (game.MediaKind, bool) {
	value, found, err := l.storage.Get(keyMediaPref)
	if err != nil || !found {
		return "", false
	}
	kind := game.MediaKind(value)
	if !kind.Valid() {
		return "", false
	}
	return kind, true
}

// SetMediaPref persists the media-kind preference.
func (l *Ledger) SetMediaPref(media game.MediaKind) error {
	return l.storage.Set(keyMediaPref, string(media))
}

// Token returns the persisted API credential.
func (l *Ledger) Token() (string, bool) {
	value, found, err := l.storage.Get(keyToken)
	if err != nil || !found || value == "" {
		return "", false
	}
	return value, true
}

// SetToken persists a validated API credential.
func (l *Ledger) SetToken(token string) error {
	return l.storage.Set(keyToken, token)
}

// RememberSeen returns the remember-seen toggle; found is false when the
// player never changed it and the config default applies.
func (l *Ledger) RememberSeen() (enabled, found bool) {
	value, ok, err := l.storage.Get(keyRememberSeen)
	if err != nil || !ok {
		return false, false
	}
	return value == "1", true
}

// SetRememberSeen persists the remember-seen toggle.
func (l *Ledger) SetRememberSeen(enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return l.storage.Set(keyRememberSeen, value)
}

// LanguageFilter returns the persisted infinite-mode language filter choice.
func (l *Ledger) LanguageFilter() (string, bool) {
	value, found, err := l.storage.Get(keyLanguageFilter)
	if err != nil || !found || value == "" {
		return "", false
	}
	return value, true
}

// SetLanguageFilter persists the language filter choice.
func (l *Ledger) SetLanguageFilter(filter string) error {
	return l.storage.Set(keyLanguageFilter, filter)
}

// Clear wipes the entire durable store: outcomes, streaks, seen sets,
// settings, and the credential.
func (l *Ledger) Clear() error {
	if err := l.storage.Clear(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	l.logger.Info("progress store cleared")
	return nil
}
