package ledger

import (
	"fmt"

	"posterdle/internal/game"
)

// Key derivation is kept as pure functions so the key families can be
// tested without touching storage.

func winKey(mode game.Mode, media game.MediaKind, day string) string {
	return fmt.Sprintf("win:%s:%s:%s", mode, media, day)
}

func lossKey(mode game.Mode, media game.MediaKind, day string) string {
	return fmt.Sprintf("loss:%s:%s:%s", mode, media, day)
}

func dailyItemKey(mode game.Mode, media game.MediaKind, day string) string {
	return fmt.Sprintf("daily-item:%s:%s:%s", mode, media, day)
}

func streakKey(mode game.Mode, media game.MediaKind) string {
	return fmt.Sprintf("streak:%s:%s", mode, media)
}

func seenKey(media game.MediaKind) string {
	return fmt.Sprintf("seen:%s", media)
}

const (
	keyMediaPref      = "pref:media"
	keyToken          = "auth:token"
	keyRememberSeen   = "settings:remember-seen"
	keyLanguageFilter = "settings:language-filter"
)
