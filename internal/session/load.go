package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"posterdle/internal/catalog"
	"posterdle/internal/daily"
	"posterdle/internal/effects"
	"posterdle/internal/game"
	"posterdle/internal/ledger"
	"posterdle/internal/logging"
)

// LoadPuzzle resolves a fresh puzzle for the current (mode, media) pair.
// Daily modes derive the item deterministically from today's date and
// restore a persisted outcome when one exists; infinite modes pick randomly.
//
// Daily fetch failures are returned to the caller with no state mutated, so
// the load can simply be retried. Infinite fetch failures become an
// immediate loss.
func (s *Session) LoadPuzzle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Session) loadLocked(ctx context.Context) error {
	s.status = game.StatusLoading
	s.puzzle = nil
	s.reference = ""
	s.wrong = nil
	s.strips = nil
	s.step = 0
	s.pendingGiveUp = false

	if s.mode.IsDaily() {
		return s.loadDailyLocked(ctx)
	}
	return s.loadInfiniteLocked(ctx)
}

func (s *Session) loadDailyLocked(ctx context.Context) error {
	day := ledger.Day(s.now())

	item, err := s.resolveDailyItem(ctx, day)
	if err != nil {
		s.logger.Error("daily puzzle load failed",
			logging.String("mode", string(s.mode)),
			logging.String("media", string(s.media)),
			logging.Error(err))
		return err
	}
	s.puzzle = &item

	outcome, _ := s.ledger.DayOutcome(s.mode, s.media, day)
	switch outcome {
	case ledger.OutcomeWon:
		s.status = game.StatusWon
		s.lookupReferenceLocked(ctx)
	case ledger.OutcomeLost:
		s.status = game.StatusLost
		s.lookupReferenceLocked(ctx)
	default:
		s.startPlayingLocked()
	}

	s.logger.Info("daily puzzle loaded",
		logging.String("mode", string(s.mode)),
		logging.String("media", string(s.media)),
		logging.Int64("item_id", item.ID),
		logging.String("status", string(s.status)))
	return nil
}

// resolveDailyItem resolves today's item: the cached id when it still
// exists, otherwise a fresh derivation from the date seed. Re-derivation is
// idempotent, so a stale cached id converges back onto the same daily pick.
func (s *Session) resolveDailyItem(ctx context.Context, day string) (catalog.Item, error) {
	if id, ok := s.ledger.CachedDailyItemID(s.mode, s.media, day); ok {
		item, err := s.client.Details(ctx, s.media, id)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return catalog.Item{}, fmt.Errorf("fetch cached daily item: %w", err)
		}
		s.logger.Warn("cached daily item vanished, re-deriving",
			logging.Int64("item_id", id),
			logging.String("day", day))
	}

	seed := daily.SeedBase(s.now(), daily.ModeOffset(s.mode))
	pageNum := daily.Page(seed)

	items, err := s.client.PopularPage(ctx, s.media, pageNum)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("fetch daily page %d: %w", pageNum, err)
	}

	eligible := slices.DeleteFunc(slices.Clone(items), func(it catalog.Item) bool {
		return !it.HasPoster()
	})
	if len(eligible) == 0 {
		return catalog.Item{}, fmt.Errorf("page %d: %w", pageNum, ErrNoEligibleItem)
	}

	item := eligible[daily.Index(seed, len(eligible))]
	if err := s.ledger.SetCachedDailyItemID(s.mode, s.media, day, item.ID); err != nil {
		return catalog.Item{}, err
	}
	return item, nil
}

func (s *Session) loadInfiniteLocked(ctx context.Context) error {
	item, err := s.pickInfiniteItem(ctx)
	if err != nil {
		// Catalog unavailable: the in-progress streak cannot continue, so
		// the puzzle resolves as an immediate loss.
		s.logger.Warn("infinite puzzle load failed, converting to loss",
			logging.String("media", string(s.media)),
			logging.Error(err))
		s.status = game.StatusLost
		if _, lossErr := s.ledger.RecordLoss(s.mode, s.media); lossErr != nil {
			return lossErr
		}
		return nil
	}

	s.puzzle = &item
	s.startPlayingLocked()

	s.logger.Info("infinite puzzle loaded",
		logging.String("mode", string(s.mode)),
		logging.String("media", string(s.media)),
		logging.Int64("item_id", item.ID))
	return nil
}

func (s *Session) pickInfiniteItem(ctx context.Context) (catalog.Item, error) {
	pageNum := s.rng.IntN(catalog.MaxPopularPage) + 1

	items, err := s.client.PopularPage(ctx, s.media, pageNum)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("fetch page %d: %w", pageNum, err)
	}

	eligible := slices.DeleteFunc(slices.Clone(items), func(it catalog.Item) bool {
		return !it.HasPoster()
	})
	if len(eligible) == 0 {
		return catalog.Item{}, fmt.Errorf("page %d: %w", pageNum, ErrNoEligibleItem)
	}

	candidates := eligible
	if s.settings.RememberSeen {
		seen := s.ledger.SeenRecently(s.media, s.now())
		unseen := slices.DeleteFunc(slices.Clone(eligible), func(it catalog.Item) bool {
			return slices.Contains(seen, it.ID)
		})
		// The seen set only biases picks; when the whole page was seen
		// recently, repeats are allowed rather than failing the load.
		if len(unseen) > 0 {
			candidates = unseen
		}
	}

	pick := candidates[s.rng.IntN(len(candidates))]

	if s.settings.LanguageFilter == LanguageFilterFrEn && !frenchOrEnglish(pick) {
		for _, candidate := range candidates {
			if frenchOrEnglish(candidate) {
				return candidate, nil
			}
		}
		// No candidate on this page satisfies the filter; keep the pick.
	}
	return pick, nil
}

func (s *Session) startPlayingLocked() {
	s.status = game.StatusPlaying
	s.step = 0
	s.wrong = nil
	if s.mode.IsHard() {
		s.strips = effects.Generate(game.StripCount(s.step))
	} else {
		s.strips = nil
	}
}

// lookupReferenceLocked resolves the IMDb link for the active puzzle.
// Best effort: failures yield an empty reference and are never surfaced.
func (s *Session) lookupReferenceLocked(ctx context.Context) {
	s.reference = ""
	if s.puzzle == nil {
		return
	}
	id, err := s.client.ExternalID(ctx, s.media, s.puzzle.ID)
	if err != nil {
		s.logger.Debug("external id lookup failed",
			logging.Int64("item_id", s.puzzle.ID),
			logging.Error(err))
		return
	}
	s.reference = id
}
