package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/metrics"
)

// Autocomplete defaults.
const (
	DefaultSuggestDebounce  = 300 * time.Millisecond
	DefaultSuggestMinLength = 2
	DefaultSuggestLimit     = 5
)

// SuggestionResult is one delivery from a Suggester. A query below the
// minimum length is delivered with no suggestions to clear earlier ones.
type SuggestionResult struct {
	Query       string
	Suggestions []string
	Err         error
}

// SuggesterConfig tunes a Suggester. Zero fields take the defaults.
type SuggesterConfig struct {
	Debounce  time.Duration
	MinLength int
	Limit     int
}

func (c SuggesterConfig) withDefaults() SuggesterConfig {
	if c.Debounce <= 0 {
		c.Debounce = DefaultSuggestDebounce
	}
	if c.MinLength <= 0 {
		c.MinLength = DefaultSuggestMinLength
	}
	if c.Limit <= 0 {
		c.Limit = DefaultSuggestLimit
	}
	return c
}

// Suggester turns a stream of keystrokes into autocomplete results. Each
// Type restarts the debounce timer and cancels the request in flight; a
// response for anything but the latest query is dropped.
type Suggester struct {
	api SuggestionsAPI
	cfg SuggesterConfig
	log zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
	results chan SuggestionResult
}

// NewSuggester creates a Suggester over api.
func NewSuggester(api SuggestionsAPI, cfg SuggesterConfig) *Suggester {
	return &Suggester{
		api:     api,
		cfg:     cfg.withDefaults(),
		log:     logger.Component("suggester"),
		results: make(chan SuggestionResult, 1),
	}
}

// Config returns the effective settings.
func (s *Suggester) Config() SuggesterConfig {
	return s.cfg
}

// Results delivers the latest result. Undelivered results are replaced by
// newer ones. The channel is closed by Close.
func (s *Suggester) Results() <-chan SuggestionResult {
	return s.results
}

// Type records the current contents of the search box.
func (s *Suggester) Type(ctx context.Context, query string) {
	q := strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.gen++
	s.stopPendingLocked()

	if utf8.RuneCountInString(q) < s.cfg.MinLength {
		metrics.RecordSuggestion("cleared")
		s.deliverLocked(SuggestionResult{Query: q, Suggestions: []string{}})
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.fire(ctx, gen, q)
	})
}

func (s *Suggester) fire(ctx context.Context, gen uint64, q string) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	defer cancel()

	suggestions, err := s.api.Suggestions(reqCtx, q, s.cfg.Limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	current := !s.closed && gen == s.gen
	if current {
		s.cancel = nil
	}
	switch {
	case errors.Is(err, context.Canceled):
		metrics.RecordSuggestion("cancelled")
		return
	case !current:
		metrics.RecordSuggestion("stale")
		return
	}

	if err != nil {
		metrics.RecordSuggestion("error")
		s.log.Warn().Err(err).Str("query", q).Msg("Suggestions failed")
		s.deliverLocked(SuggestionResult{Query: q, Suggestions: []string{}, Err: err})
		return
	}

	if suggestions == nil {
		suggestions = []string{}
	}
	metrics.RecordSuggestion("delivered")
	s.deliverLocked(SuggestionResult{Query: q, Suggestions: suggestions})
}

func (s *Suggester) stopPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// deliverLocked keeps only the newest result in the channel buffer.
func (s *Suggester) deliverLocked(res SuggestionResult) {
	select {
	case <-s.results:
	default:
	}
	select {
	case s.results <- res:
	default:
	}
}

// Close cancels pending work, waits for the request in flight and closes
// the results channel.
func (s *Suggester) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.gen++
	s.stopPendingLocked()
	s.mu.Unlock()

	s.wg.Wait()
	close(s.results)
}
