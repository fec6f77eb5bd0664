package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"posterdle/internal/catalog"
	"posterdle/internal/game"
	"posterdle/internal/logging"
)

// defaultDebounce is the quiet period a query must survive before it is
// dispatched to the catalog.
const defaultDebounce = 300 * time.Millisecond

// Suggester turns a stream of partial title input into autocomplete
// candidates. Queries are debounced, duplicates of the last dispatched query
// are dropped, and results from a superseded query never reach the callback.
type Suggester struct {
	mu       sync.Mutex
	client   catalog.Client
	logger   *slog.Logger
	debounce time.Duration
	deliver  func([]catalog.Item)

	media      game.MediaKind
	pending    *time.Timer
	lastQuery  string
	generation uint64
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithDebounce overrides the quiet period, for tests.
func WithDebounce(d time.Duration) SuggesterOption {
	return func(sg *Suggester) {
		if d > 0 {
			sg.debounce = d
		}
	}
}

// NewSuggester builds a suggester delivering results through deliver. The
// callback runs on the timer goroutine; an empty slice means "clear the
// candidate list".
func NewSuggester(client catalog.Client, media game.MediaKind, deliver func([]catalog.Item), logger *slog.Logger, opts ...SuggesterOption) *Suggester {
	sg := &Suggester{
		client:   client,
		logger:   logging.NewComponentLogger(logger, "suggest"),
		debounce: defaultDebounce,
		deliver:  deliver,
		media:    media,
	}
	for _, opt := range opts {
		opt(sg)
	}
	return sg
}

// SetMedia points subsequent queries at a different media kind and drops any
// in-flight work.
func (sg *Suggester) SetMedia(media game.MediaKind) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sg.media = media
	sg.resetLocked()
	sg.lastQuery = ""
}

// Update feeds the latest input text. Short queries cancel pending work and
// clear the candidate list immediately.
func (sg *Suggester) Update(query string) {
	query = strings.TrimSpace(query)

	sg.mu.Lock()
	if len([]rune(query)) < 2 {
		sg.resetLocked()
		sg.lastQuery = ""
		sg.mu.Unlock()
		sg.deliver(nil)
		return
	}
	// Pending work is cancelled even when the input settles back onto the
	// already-dispatched query; an older timer must never outlive newer input.
	sg.resetLocked()
	if query == sg.lastQuery {
		sg.mu.Unlock()
		return
	}

	gen := sg.generation
	media := sg.media
	sg.pending = time.AfterFunc(sg.debounce, func() {
		sg.dispatch(gen, media, query)
	})
	sg.mu.Unlock()
}

// Stop cancels any pending dispatch.
func (sg *Suggester) Stop() {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sg.resetLocked()
}

// resetLocked cancels the pending timer and invalidates in-flight dispatches.
func (sg *Suggester) resetLocked() {
	if sg.pending != nil {
		sg.pending.Stop()
		sg.pending = nil
	}
	sg.generation++
}

func (sg *Suggester) dispatch(gen uint64, media game.MediaKind, query string) {
	sg.mu.Lock()
	if gen != sg.generation {
		sg.mu.Unlock()
		return
	}
	sg.lastQuery = query
	sg.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := sg.client.Suggestions(ctx, media, query)
	if err != nil {
		sg.logger.Debug("suggestion lookup failed",
			logging.String("query", query),
			logging.Error(err))
		return
	}

	sg.mu.Lock()
	stale := gen != sg.generation
	sg.mu.Unlock()
	if stale {
		return
	}
	sg.deliver(items)
}
