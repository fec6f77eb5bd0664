package ledger

import (
	"testing"
	"time"

	"posterdle/internal/game"
)

func newTestLedger() (*Ledger, *Memory) {
	store := NewMemory()
	return New(store, nil), store
}

func TestDailyOutcomeRoundTrip(t *testing.T) {
	l, _ := newTestLedger()
	day := "2026-08-28"

	if outcome, _ := l.DayOutcome(game.ModeDaily, game.MediaMovie, day); outcome != OutcomeNone {
		t.Fatalf("fresh day outcome = %v, want none", outcome)
	}

	if err := l.MarkDayWon(game.ModeDaily, game.MediaMovie, day); err != nil {
		t.Fatalf("MarkDayWon failed: %v", err)
	}

	outcome, completed := l.DayOutcome(game.ModeDaily, game.MediaMovie, day)
	if outcome != OutcomeWon {
		t.Errorf("outcome = %v, want won", outcome)
	}
	if completed != day {
		t.Errorf("completion day = %q, want %q", completed, day)
	}

	// Other tuples are unaffected.
	if outcome, _ := l.DayOutcome(game.ModeDailyHard, game.MediaMovie, day); outcome != OutcomeNone {
		t.Error("hard-mode outcome leaked from normal mode")
	}
	if outcome, _ := l.DayOutcome(game.ModeDaily, game.MediaTV, day); outcome != OutcomeNone {
		t.Error("tv outcome leaked from movie")
	}
}

func TestWinAndLossFlagsMutuallyExclusive(t *testing.T) {
	l, _ := newTestLedger()
	day := "2026-08-28"

	if err := l.MarkDayLost(game.ModeDaily, game.MediaMovie, day); err != nil {
		t.Fatal(err)
	}
	if outcome, _ := l.DayOutcome(game.ModeDaily, game.MediaMovie, day); outcome != OutcomeLost {
		t.Fatal("expected lost")
	}

	if err := l.MarkDayWon(game.ModeDaily, game.MediaMovie, day); err != nil {
		t.Fatal(err)
	}
	if outcome, _ := l.DayOutcome(game.ModeDaily, game.MediaMovie, day); outcome != OutcomeWon {
		t.Error("win should replace the loss flag")
	}
}

func TestStreakProgression(t *testing.T) {
	l, _ := newTestLedger()
	day := "2026-08-28"

	for i := 1; i <= 3; i++ {
		rec, err := l.RecordWin(game.ModeInfinite, game.MediaMovie, day)
		if err != nil {
			t.Fatalf("RecordWin failed: %v", err)
		}
		if rec.Current != i {
			t.Errorf("after %d wins Current = %d", i, rec.Current)
		}
		if rec.TodayBest < rec.Current {
			t.Errorf("TodayBest %d < Current %d", rec.TodayBest, rec.Current)
		}
	}

	rec, err := l.RecordLoss(game.ModeInfinite, game.MediaMovie)
	if err != nil {
		t.Fatalf("RecordLoss failed: %v", err)
	}
	if rec.Current != 0 {
		t.Errorf("Current after loss = %d, want 0", rec.Current)
	}
	if rec.TodayBest != 3 || rec.AllTimeBest != 3 {
		t.Errorf("bests lowered by loss: today=%d alltime=%d", rec.TodayBest, rec.AllTimeBest)
	}

	// A shorter streak never lowers the bests.
	if _, err := l.RecordWin(game.ModeInfinite, game.MediaMovie, day); err != nil {
		t.Fatal(err)
	}
	rec = l.Streak(game.ModeInfinite, game.MediaMovie)
	if rec.Current != 1 || rec.TodayBest != 3 || rec.AllTimeBest != 3 {
		t.Errorf("unexpected record after rebuild: %+v", rec)
	}
}

func TestStreakTodayBestResetsOnNewDay(t *testing.T) {
	l, _ := newTestLedger()

	for i := 0; i < 4; i++ {
		if _, err := l.RecordWin(game.ModeInfinite, game.MediaTV, "2026-08-27"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.RecordLoss(game.ModeInfinite, game.MediaTV); err != nil {
		t.Fatal(err)
	}

	rec, err := l.RecordWin(game.ModeInfinite, game.MediaTV, "2026-08-28")
	if err != nil {
		t.Fatal(err)
	}
	if rec.TodayBest != 1 || rec.TodayBestDay != "2026-08-28" {
		t.Errorf("today best should restart on a new day: %+v", rec)
	}
	if rec.AllTimeBest != 4 {
		t.Errorf("all-time best = %d, want 4", rec.AllTimeBest)
	}
}

func TestStreakMalformedRecordReadsAsZero(t *testing.T) {
	l, store := newTestLedger()
	if err := store.Set(streakKey(game.ModeInfinite, game.MediaMovie), "{corrupt"); err != nil {
		t.Fatal(err)
	}
	rec := l.Streak(game.ModeInfinite, game.MediaMovie)
	if rec != (StreakRecord{}) {
		t.Errorf("malformed record should read as zero, got %+v", rec)
	}
}

func TestSeenRecentlyExpiry(t *testing.T) {
	l, _ := newTestLedger()
	now := time.Now()

	if err := l.AddSeen(game.MediaMovie, 100, now, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := l.AddSeen(game.MediaMovie, 200, now, 2*time.Hour); err != nil {
		t.Fatal(err)
	}

	ids := l.SeenRecently(game.MediaMovie, now)
	if len(ids) != 2 {
		t.Fatalf("seen = %v, want both entries", ids)
	}

	// Past the first expiry, only the second survives.
	ids = l.SeenRecently(game.MediaMovie, now.Add(90*time.Minute))
	if len(ids) != 1 || ids[0] != 200 {
		t.Errorf("seen after expiry = %v, want [200]", ids)
	}

	// An entry expiring exactly now is excluded.
	ids = l.SeenRecently(game.MediaMovie, now.Add(time.Hour))
	if len(ids) != 1 || ids[0] != 200 {
		t.Errorf("boundary expiry should be excluded, got %v", ids)
	}

	if got := l.SeenRecently(game.MediaTV, now); len(got) != 0 {
		t.Errorf("tv seen set should be independent, got %v", got)
	}
}

func TestSeenRecentlyMalformedBlobTreatedEmpty(t *testing.T) {
	l, store := newTestLedger()
	if err := store.Set(seenKey(game.MediaMovie), "not json"); err != nil {
		t.Fatal(err)
	}
	if got := l.SeenRecently(game.MediaMovie, time.Now()); len(got) != 0 {
		t.Errorf("malformed blob should read empty, got %v", got)
	}

	// The next write recovers the blob.
	if err := l.AddSeen(game.MediaMovie, 7, time.Now(), time.Hour); err != nil {
		t.Fatalf("AddSeen after corruption failed: %v", err)
	}
	if got := l.SeenRecently(game.MediaMovie, time.Now()); len(got) != 1 || got[0] != 7 {
		t.Errorf("seen after recovery = %v", got)
	}
}

func TestCachedDailyItemID(t *testing.T) {
	l, _ := newTestLedger()
	day := "2026-08-28"

	if _, found := l.CachedDailyItemID(game.ModeDaily, game.MediaMovie, day); found {
		t.Fatal("fresh tuple should have no cached id")
	}

	if err := l.SetCachedDailyItemID(game.ModeDaily, game.MediaMovie, day, 27205); err != nil {
		t.Fatal(err)
	}
	id, found := l.CachedDailyItemID(game.ModeDaily, game.MediaMovie, day)
	if !found || id != 27205 {
		t.Errorf("cached id = (%d, %v)", id, found)
	}
}

func TestSettingsAndClear(t *testing.T) {
	l, _ := newTestLedger()

	if err := l.SetMediaPref(game.MediaTV); err != nil {
		t.Fatal(err)
	}
	if err := l.SetToken("secret"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetRememberSeen(false); err != nil {
		t.Fatal(err)
	}
	if err := l.SetLanguageFilter("fr-en"); err != nil {
		t.Fatal(err)
	}

	if pref, ok := l.MediaPref(); !ok || pref != game.MediaTV {
		t.Errorf("media pref = (%q, %v)", pref, ok)
	}
	if token, ok := l.Token(); !ok || token != "secret" {
		t.Errorf("token = (%q, %v)", token, ok)
	}
	if enabled, ok := l.RememberSeen(); !ok || enabled {
		t.Errorf("remember seen = (%v, %v)", enabled, ok)
	}
	if filter, ok := l.LanguageFilter(); !ok || filter != "fr-en" {
		t.Errorf("language filter = (%q, %v)", filter, ok)
	}

	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Token(); ok {
		t.Error("token should be gone after Clear")
	}
	if _, ok := l.MediaPref(); ok {
		t.Error("media pref should be gone after Clear")
	}
}
