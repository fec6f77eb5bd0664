package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"posterdle/internal/catalog"
	"posterdle/internal/game"
)

// maxSuggestions caps the number of search matches returned to the UI.
const maxSuggestions = 5

// minQueryLength is the shortest query that triggers a search request.
const minQueryLength = 2

// record models a single TMDB result. Movie and TV payloads use different
// field names for the same concepts; both sets are declared and resolved in
// toItem.
type record struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Name             string `json:"name"`
	OriginalTitle    string `json:"original_title"`
	OriginalName     string `json:"original_name"`
	OriginalLanguage string `json:"original_language"`
	PosterPath       string `json:"poster_path"`
	ReleaseDate      string `json:"release_date"`
	FirstAirDate     string `json:"first_air_date"`
}

// page models the TMDB paginated list response.
type page struct {
	Page         int      `json:"page"`
	Results      []record `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// externalIDs models the TMDB external_ids payload.
type externalIDs struct {
	IMDBID string `json:"imdb_id"`
}

func (r record) toItem(media game.MediaKind) catalog.Item {
	item := catalog.Item{
		ID:               r.ID,
		Title:            r.Title,
		OriginalTitle:    r.OriginalTitle,
		OriginalLanguage: r.OriginalLanguage,
		PosterPath:       r.PosterPath,
		ReleaseDate:      r.ReleaseDate,
		Media:            media,
	}
	if item.Title == "" {
		item.Title = r.Name
	}
	if item.OriginalTitle == "" {
		item.OriginalTitle = r.OriginalName
	}
	if item.ReleaseDate == "" {
		item.ReleaseDate = r.FirstAirDate
	}
	return item
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ catalog.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// PopularPage fetches one page of popular items for a media kind.
func (c *Client) PopularPage(ctx context.Context, media game.MediaKind, pageNum int) ([]catalog.Item, error) {
	if pageNum < 1 || pageNum > catalog.MaxPopularPage {
		return nil, fmt.Errorf("page %d out of range [1,%d]", pageNum, catalog.MaxPopularPage)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(pageNum))

	var payload page
	if err := c.get(ctx, fmt.Sprintf("/%s/popular", media), params, &payload); err != nil {
		return nil, fmt.Errorf("popular page: %w", err)
	}

	items := make([]catalog.Item, 0, len(payload.Results))
	for _, r := range payload.Results {
		items = append(items, r.toItem(media))
	}
	return items, nil
}

// Details fetches a single item by id. A 404 maps to catalog.ErrNotFound so
// callers can recover from stale cached ids.
func (c *Client) Details(ctx context.Context, media game.MediaKind, id int64) (catalog.Item, error) {
	if id <= 0 {
		return catalog.Item{}, errors.New("item id must be positive")
	}
	var payload record
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", media, id), nil, &payload); err != nil {
		return catalog.Item{}, fmt.Errorf("details: %w", err)
	}
	return payload.toItem(media), nil
}

// Suggestions returns up to five search matches for a query. Queries shorter
// than two characters yield no results without issuing a request.
func (c *Client) Suggestions(ctx context.Context, media game.MediaKind, query string) ([]catalog.Item, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return nil, nil
	}
	params := url.Values{}
	params.Set("query", query)

	var payload page
	if err := c.get(ctx, fmt.Sprintf("/search/%s", media), params, &payload); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	limit := min(maxSuggestions, len(payload.Results))
	items := make([]catalog.Item, 0, limit)
	for _, r := range payload.Results[:limit] {
		items = append(items, r.toItem(media))
	}
	return items, nil
}

// ExternalID resolves the IMDb id for an item.
func (c *Client) ExternalID(ctx context.Context, media game.MediaKind, id int64) (string, error) {
	if id <= 0 {
		return "", errors.New("item id must be positive")
	}
	var payload externalIDs
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/external_ids", media, id), nil, &payload); err != nil {
		return "", fmt.Errorf("external ids: %w", err)
	}
	return payload.IMDBID, nil
}

// ErrInvalidToken marks a credential rejected by TMDB.
var ErrInvalidToken = errors.New("tmdb token rejected")

// ValidateToken checks an arbitrary API credential against the configuration
// endpoint. A 401 means the token is invalid; other failures are fetch errors.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}

	endpoint, err := url.Parse(c.baseURL + "/configuration")
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", token)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidToken
	default:
		return fmt.Errorf("tmdb validation returned %d", resp.StatusCode)
	}
}

// get performs an authenticated GET and decodes the JSON payload into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return catalog.ErrNotFound
	default:
		return fmt.Errorf("tmdb returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
