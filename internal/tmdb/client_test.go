package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"posterdle/internal/catalog"
	"posterdle/internal/game"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", server.URL, "fr-FR")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client
}

func TestPopularPageNormalizesTVFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/popular" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("api key missing from request")
		}
		if r.URL.Query().Get("language") != "fr-FR" {
			t.Error("language missing from request")
		}
		w.Write([]byte(`{"page":1,"results":[
			{"id":1396,"name":"Breaking Bad","original_name":"Breaking Bad","original_language":"en","poster_path":"/bb.jpg","first_air_date":"2008-01-20"}
		]}`))
	})

	items, err := client.PopularPage(context.Background(), game.MediaTV, 1)
	if err != nil {
		t.Fatalf("PopularPage failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.Title != "Breaking Bad" || item.OriginalTitle != "Breaking Bad" {
		t.Errorf("name fields not normalized: %+v", item)
	}
	if item.ReleaseDate != "2008-01-20" {
		t.Errorf("first_air_date not normalized: %q", item.ReleaseDate)
	}
	if item.Year() != "2008" {
		t.Errorf("Year() = %q", item.Year())
	}
	if item.Media != game.MediaTV {
		t.Errorf("media = %q", item.Media)
	}
}

func TestPopularPageRejectsOutOfRange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.PopularPage(context.Background(), game.MediaMovie, 0); err == nil {
		t.Error("page 0 should be rejected")
	}
	if _, err := client.PopularPage(context.Background(), game.MediaMovie, catalog.MaxPopularPage+1); err == nil {
		t.Error("page beyond max should be rejected")
	}
}

func TestDetailsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Details(context.Background(), game.MediaMovie, 42)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSuggestionsShortQuerySkipsRequest(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	items, err := client.Suggestions(context.Background(), game.MediaMovie, "a")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if items != nil || requested {
		t.Error("short query must not issue a request")
	}
}

func TestSuggestionsCappedAtFive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "incep" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"C"},
			{"id":4,"title":"D"},{"id":5,"title":"E"},{"id":6,"title":"F"},{"id":7,"title":"G"}
		]}`))
	})

	items, err := client.Suggestions(context.Background(), game.MediaMovie, "incep")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("got %d suggestions, want 5", len(items))
	}
}

func TestExternalID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205/external_ids" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"imdb_id":"tt1375666"}`))
	})

	id, err := client.ExternalID(context.Background(), game.MediaMovie, 27205)
	if err != nil {
		t.Fatalf("ExternalID failed: %v", err)
	}
	if id != "tt1375666" {
		t.Errorf("imdb id = %q", id)
	}
}

func TestValidateToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "good" {
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	if err := client.ValidateToken(context.Background(), "good"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if err := client.ValidateToken(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if err := client.ValidateToken(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token should be invalid, got %v", err)
	}
}
