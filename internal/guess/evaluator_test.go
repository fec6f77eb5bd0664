package guess

import (
	"testing"

	"posterdle/internal/catalog"
	"posterdle/internal/game"
)

var inception = catalog.Item{
	ID:            27205,
	Title:         "Inception",
	OriginalTitle: "Inception",
	ReleaseDate:   "2010-07-14",
	Media:         game.MediaMovie,
}

var intouchables = catalog.Item{
	ID:            77338,
	Title:         "Intouchables",
	OriginalTitle: "Intouchables",
	ReleaseDate:   "2011-11-02",
	Media:         game.MediaMovie,
}

func TestEvaluateFreeText(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		target catalog.Item
		want   bool
	}{
		{"title with matching year", "inception 2010", inception, true},
		{"title with wrong year", "Inception 2011", inception, false},
		{"title without year", "inception", inception, true},
		{"title in parentheses form", "Inception (2010)", inception, true},
		{"wrong title", "interstellar", inception, false},
		{"year only", "2010", inception, false},
		{"article variant accepted", "Les Intouchables", intouchables, true},
		{"diacritics ignored", "inceptión", inception, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.raw, nil, tc.target); got != tc.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

// The literal "win" token is an intentional cheat code inherited from the
// original game. It must keep working until explicitly removed.
func TestEvaluateCheatToken(t *testing.T) {
	if !Evaluate("win", nil, inception) {
		t.Error("literal win guess should always be accepted")
	}
	if !Evaluate("WIN", nil, intouchables) {
		t.Error("cheat token should be case-insensitive")
	}
}

func TestEvaluateSelected(t *testing.T) {
	sameID := inception
	wrongItem := catalog.Item{ID: 999, Title: "Interstellar", OriginalTitle: "Interstellar", ReleaseDate: "2014-11-05"}
	sameTitleOtherID := catalog.Item{ID: 555, Title: "Inception", OriginalTitle: "Inception", ReleaseDate: "2010-01-01"}
	sameTitleWrongYear := catalog.Item{ID: 556, Title: "Inception", OriginalTitle: "Inception", ReleaseDate: "1999-01-01"}
	sameTitleNoYear := catalog.Item{ID: 557, Title: "Inception", OriginalTitle: "Inception"}

	tests := []struct {
		name     string
		selected catalog.Item
		want     bool
	}{
		{"exact id", sameID, true},
		{"different item", wrongItem, false},
		{"same title same year other id", sameTitleOtherID, true},
		{"same title wrong year", sameTitleWrongYear, false},
		{"same title unknown year", sameTitleNoYear, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Free-text noise must be ignored on the selected path.
			if got := Evaluate("garbage text", &tc.selected, inception); got != tc.want {
				t.Errorf("Evaluate(selected=%d) = %v, want %v", tc.selected.ID, got, tc.want)
			}
		})
	}
}
