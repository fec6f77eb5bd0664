package catalog

import (
	"context"
	"errors"
	"strings"

	"posterdle/internal/game"
)

// Item is the active guessable entity. Immutable once loaded; the session
// replaces it wholesale when a new puzzle loads.
type Item struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	OriginalTitle    string         `json:"original_title"`
	OriginalLanguage string         `json:"original_language"`
	PosterPath       string         `json:"poster_path"`
	ReleaseDate      string         `json:"release_date"`
	Media            game.MediaKind `json:"media"`
}

// Year returns the 4-digit release year, or "" when the date is unknown.
func (i Item) Year() string {
	date := strings.TrimSpace(i.ReleaseDate)
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// HasPoster reports whether the item carries a poster image and is therefore
// eligible as a puzzle.
func (i Item) HasPoster() bool {
	return strings.TrimSpace(i.PosterPath) != ""
}

// MaxPopularPage is the highest catalog page the pickers draw from.
const MaxPopularPage = 50

// ErrNotFound marks an item id that no longer resolves in the catalog.
var ErrNotFound = errors.New("catalog item not found")

// Client is the catalog collaborator consumed by the session. All operations
// may fail with a generic fetch error; the engine needs no finer taxonomy.
type Client interface {
	// Details fetches a single item by id.
	Details(ctx context.Context, media game.MediaKind, id int64) (Item, error)
	// PopularPage fetches one page (1..MaxPopularPage) of popular items.
	PopularPage(ctx context.Context, media game.MediaKind, page int) ([]Item, error)
	// Suggestions returns up to five search matches for a text query.
	// Queries under two characters yield no results without a request.
	Suggestions(ctx context.Context, media game.MediaKind, query string) ([]Item, error)
	// ExternalID resolves the IMDb reference id for an item, best effort.
	ExternalID(ctx context.Context, media game.MediaKind, id int64) (string, error)
	// ValidateToken checks that an API credential is accepted upstream.
	ValidateToken(ctx context.Context, token string) error
}
