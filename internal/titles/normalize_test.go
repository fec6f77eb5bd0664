package titles

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		dropArticles bool
		want         string
	}{
		{"lowercase and punctuation", "Blade Runner 2049!", false, "bladerunner2049"},
		{"diacritics fold", "Amélie", false, "amelie"},
		{"diacritics equal plain", "amelie", false, "amelie"},
		{"article kept without flag", "Les Intouchables", false, "lesintouchables"},
		{"article dropped", "Les Intouchables", true, "intouchables"},
		{"english article dropped", "The Godfather", true, "godfather"},
		{"elided article dropped", "L'Arnacœur", true, "arnacur"},
		{"curly elided article dropped", "L’Arnaque", true, "arnaque"},
		{"single token article untouched", "It", true, "it"},
		{"only first article dropped", "The The", true, "the"},
		{"empty input", "", false, ""},
		{"whitespace only", "   ", true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input, tc.dropArticles)
			if got != tc.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q", tc.input, tc.dropArticles, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Amélie", "Les Intouchables", "The Good, the Bad and the Ugly", "2001: A Space Odyssey", ""}
	for _, s := range inputs {
		for _, drop := range []bool{false, true} {
			once := Normalize(s, drop)
			twice := Normalize(once, drop)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (drop=%v): %q != %q", s, drop, once, twice)
			}
		}
	}
}

func TestNormalizeArticleEquivalence(t *testing.T) {
	if Normalize("Les Intouchables", true) != Normalize("Intouchables", true) {
		t.Error("article-stripped forms should compare equal")
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		raw          string
		wantFragment string
		wantYear     string
	}{
		{"inception 2010", "inception", "2010"},
		{"Inception (2010)", "Inception", "2010"},
		{"inception", "inception", ""},
		{"Blade Runner 2049", "Blade Runner", "2049"},
		{"1917", "", "1917"},
		{"movie from 1899", "movie from 1899", ""},
		{"", "", ""},
	}

	for _, tc := range tests {
		fragment, year := ExtractYear(tc.raw)
		if fragment != tc.wantFragment || year != tc.wantYear {
			t.Errorf("ExtractYear(%q) = (%q, %q), want (%q, %q)", tc.raw, fragment, year, tc.wantFragment, tc.wantYear)
		}
	}
}
