package session

import (
	"context"
	"fmt"
	"strings"

	"posterdle/internal/catalog"
	"posterdle/internal/effects"
	"posterdle/internal/game"
	"posterdle/internal/guess"
	"posterdle/internal/ledger"
	"posterdle/internal/logging"
	"posterdle/internal/titles"
)

// SubmitGuess evaluates a guess against the active puzzle. A blank guess
// with no selection counts as an explicit skip: it consumes an attempt with
// a sentinel label and never reaches the evaluator.
func (s *Session) SubmitGuess(ctx context.Context, raw string, selected *catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != game.StatusPlaying {
		return ErrNotPlaying
	}
	if s.puzzle == nil {
		return ErrNoPuzzle
	}

	raw = strings.TrimSpace(raw)
	if raw == "" && selected == nil {
		s.wrong = append(s.wrong, game.WrongGuess{Label: skipLabel})
		s.advanceLocked(ctx)
		return nil
	}

	if guess.Evaluate(raw, selected, *s.puzzle) {
		return s.winLocked(ctx)
	}

	s.wrong = append(s.wrong, wrongGuessLabel(raw, selected))
	s.advanceLocked(ctx)
	return nil
}

// wrongGuessLabel builds the record shown in the wrong-guess list.
func wrongGuessLabel(raw string, selected *catalog.Item) game.WrongGuess {
	if selected != nil {
		return game.WrongGuess{Label: selected.Title, Year: selected.Year()}
	}
	fragment, year := titles.ExtractYear(raw)
	if fragment == "" {
		fragment = raw
	}
	return game.WrongGuess{Label: fragment, Year: year}
}

// advanceLocked moves to the next progression step, or resolves the puzzle
// as lost when the attempts are exhausted.
func (s *Session) advanceLocked(ctx context.Context) {
	if s.step < game.MaxAttempts()-1 {
		s.step++
		if s.mode.IsHard() && s.status == game.StatusPlaying {
			s.strips = effects.Generate(game.StripCount(s.step))
		}
		return
	}
	if err := s.loseLocked(ctx); err != nil {
		s.logger.Error("loss bookkeeping failed", logging.Error(err))
	}
}

func (s *Session) winLocked(ctx context.Context) error {
	s.status = game.StatusWon
	s.markSeenLocked()
	s.lookupReferenceLocked(ctx)

	day := ledger.Day(s.now())
	if s.mode.IsInfinite() {
		rec, err := s.ledger.RecordWin(s.mode, s.media, day)
		if err != nil {
			return fmt.Errorf("record win: %w", err)
		}
		s.logger.Info("puzzle won",
			logging.Int64("item_id", s.puzzle.ID),
			logging.Int("streak", rec.Current))
		return nil
	}

	if err := s.ledger.MarkDayWon(s.mode, s.media, day); err != nil {
		return fmt.Errorf("mark day won: %w", err)
	}
	s.logger.Info("daily puzzle won",
		logging.Int64("item_id", s.puzzle.ID),
		logging.String("day", day))
	return nil
}

func (s *Session) loseLocked(ctx context.Context) error {
	s.status = game.StatusLost
	s.markSeenLocked()
	s.lookupReferenceLocked(ctx)

	if s.mode.IsInfinite() {
		if _, err := s.ledger.RecordLoss(s.mode, s.media); err != nil {
			return fmt.Errorf("record loss: %w", err)
		}
	} else {
		day := ledger.Day(s.now())
		if err := s.ledger.MarkDayLost(s.mode, s.media, day); err != nil {
			return fmt.Errorf("mark day lost: %w", err)
		}
	}

	s.logger.Info("puzzle lost",
		logging.Int64("item_id", s.puzzle.ID),
		logging.Int("wrong_guesses", len(s.wrong)))
	return nil
}

// markSeenLocked remembers a resolved infinite-mode item so future random
// picks avoid it while the entry lives.
func (s *Session) markSeenLocked() {
	if !s.mode.IsInfinite() || !s.settings.RememberSeen || s.puzzle == nil {
		return
	}
	if err := s.ledger.AddSeen(s.media, s.puzzle.ID, s.now(), s.settings.SeenTTL); err != nil {
		s.logger.Warn("failed to remember seen item",
			logging.Int64("item_id", s.puzzle.ID),
			logging.Error(err))
	}
}

// RequestGiveUp asks to forfeit the current puzzle. The forfeit only takes
// effect after ConfirmGiveUp.
func (s *Session) RequestGiveUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != game.StatusPlaying {
		return ErrNotPlaying
	}
	s.pendingGiveUp = true
	return nil
}

// ConfirmGiveUp forfeits the puzzle: the attempts-exhausted transition runs
// without consuming an attempt slot.
func (s *Session) ConfirmGiveUp(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pendingGiveUp || s.status != game.StatusPlaying {
		return ErrNotPlaying
	}
	s.pendingGiveUp = false
	return s.loseLocked(ctx)
}

// CancelGiveUp abandons a pending give-up request.
func (s *Session) CancelGiveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingGiveUp = false
}

// SwitchMode changes the play mode and loads a puzzle for it. Leaving an
// actively played infinite session forfeits the streak, so the first call
// reports that confirmation is needed without switching; the caller retries
// with confirmed once the player agrees.
func (s *Session) SwitchMode(ctx context.Context, mode game.Mode, confirmed bool) (needsConfirm bool, err error) {
	if !mode.Valid() {
		return false, fmt.Errorf("unknown mode %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return false, nil
	}
	if s.abandonsStreakLocked() && !confirmed {
		return true, nil
	}
	if s.abandonsStreakLocked() {
		if err := s.ledger.AbandonStreak(s.mode, s.media); err != nil {
			return false, fmt.Errorf("forfeit streak: %w", err)
		}
	}

	s.mode = mode
	return false, s.loadLocked(ctx)
}

// SwitchMedia changes the media kind, with the same confirmation contract
// as SwitchMode, and persists the preference.
func (s *Session) SwitchMedia(ctx context.Context, media game.MediaKind, confirmed bool) (needsConfirm bool, err error) {
	if !media.Valid() {
		return false, fmt.Errorf("unknown media kind %q", media)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if media == s.media {
		return false, nil
	}
	if s.abandonsStreakLocked() && !confirmed {
		return true, nil
	}
	if s.abandonsStreakLocked() {
		if err := s.ledger.AbandonStreak(s.mode, s.media); err != nil {
			return false, fmt.Errorf("forfeit streak: %w", err)
		}
	}

	s.media = media
	if err := s.ledger.SetMediaPref(media); err != nil {
		return false, fmt.Errorf("persist media preference: %w", err)
	}
	return false, s.loadLocked(ctx)
}

// abandonsStreakLocked reports whether leaving the current session forfeits
// an in-progress infinite streak.
func (s *Session) abandonsStreakLocked() bool {
	return s.mode.IsInfinite() && s.status == game.StatusPlaying
}

// NextPuzzle starts a fresh infinite puzzle once the current one resolved.
func (s *Session) NextPuzzle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mode.IsInfinite() {
		return fmt.Errorf("next puzzle only applies to infinite modes")
	}
	if !s.status.Resolved() {
		return fmt.Errorf("current puzzle is not resolved")
	}
	return s.loadLocked(ctx)
}

// UpdateSettings applies and persists new gameplay settings.
func (s *Session) UpdateSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.SeenTTL <= 0 {
		settings.SeenTTL = s.settings.SeenTTL
	}
	if err := s.ledger.SetRememberSeen(settings.RememberSeen); err != nil {
		return err
	}
	if err := s.ledger.SetLanguageFilter(settings.LanguageFilter); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// ValidateToken checks a credential against the catalog and persists it on
// success. Failure mutates nothing.
func (s *Session) ValidateToken(ctx context.Context, token string) error {
	if err := s.client.ValidateToken(ctx, token); err != nil {
		return fmt.Errorf("validate token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.SetToken(token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.logger.Info("credential validated and stored")
	return nil
}

// ClearProgress wipes the entire durable store. The caller is responsible
// for the confirm/cancel dialog and for reloading afterwards.
func (s *Session) ClearProgress() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clear()
}
