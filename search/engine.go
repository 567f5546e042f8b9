package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/goquery"
	"golang.org/x/sync/errgroup"
)

var _ manfetch.CandidateSource = (*EngineSource)(nil)

const (
	// DefaultEndpoint is DuckDuckGo's HTML results endpoint; the query is
	// appended URL-encoded.
	DefaultEndpoint = "https://html.duckduckgo.com/html/?q="

	// DefaultSearchTimeout bounds each search request.
	DefaultSearchTimeout = 20 * time.Second
)

// botMarkup is lower-case markup found only on DuckDuckGo's
// anti-automation interstitial.
var botMarkup = []string{
	"anomaly-modal",
	"challenge-form",
	"bots use duckduckgo",
}

// botPhrases are lower-case phrases of generic challenge pages. They can
// also appear in result snippets, so they count only on pages without
// results.
var botPhrases = []string{
	"unusual traffic",
	"captcha",
	"are you a robot",
}

// EngineSource queries an HTML search engine with several phrasings of
// the subject at once. When the engine intercepts a query as automated, or
// every query fails, it returns no URLs and human-followable search links.
type EngineSource struct {
	transport manfetch.Transport
	endpoint  string
	timeout   time.Duration
}

// EngineOption configures an EngineSource.
type EngineOption func(*EngineSource)

// WithEndpoint sets the search URL prefix the encoded query is appended to.
func WithEndpoint(endpoint string) EngineOption {
	return func(s *EngineSource) {
		s.endpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) EngineOption {
	return func(s *EngineSource) {
		s.timeout = d
	}
}

// NewEngineSource creates an EngineSource that issues requests through
// transport.
func NewEngineSource(transport manfetch.Transport, opts ...EngineOption) *EngineSource {
	s := &EngineSource{
		transport: transport,
		endpoint:  DefaultEndpoint,
		timeout:   DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EngineSource) Strategy() manfetch.Strategy {
	return manfetch.StrategySearchEngine
}

type queryResult struct {
	urls    []string
	blocked bool
	err     error
}

// Candidates runs every query concurrently and waits for all of them.
func (s *EngineSource) Candidates(ctx context.Context, subject manfetch.Subject) (*manfetch.SourceResult, error) {
	queries := Queries(subject)
	results := make([]queryResult, len(queries))

	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			results[i] = s.query(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var urls []string
	failed := 0
	for _, r := range results {
		if r.blocked {
			return &manfetch.SourceResult{SearchLinks: FallbackLinks(subject)}, nil
		}
		if r.err != nil {
			failed++
			continue
		}
		urls = append(urls, r.urls...)
	}
	if failed == len(results) {
		return &manfetch.SourceResult{SearchLinks: FallbackLinks(subject)}, nil
	}
	return &manfetch.SourceResult{URLs: urls}, nil
}

func (s *EngineSource) query(ctx context.Context, q string) queryResult {
	header := make(http.Header)
	header.Set("Referer", "https://duckduckgo.com/")

	resp, err := s.transport.Get(ctx, &manfetch.Request{
		URL:     s.endpoint + url.QueryEscape(q),
		Header:  header,
		Timeout: s.timeout,
	})
	if err != nil {
		return queryResult{err: err}
	}
	if IsBotPage(resp.Body) {
		return queryResult{blocked: true}
	}
	if !resp.OK() {
		return queryResult{err: &manfetch.StatusError{Code: resp.StatusCode}}
	}

	urls, err := goquery.SearchResultLinks(string(resp.Body))
	if err != nil {
		return queryResult{err: err}
	}
	return queryResult{urls: urls}
}

// Queries returns the five search phrasings for the subject.
func Queries(subject manfetch.Subject) []string {
	s := strings.TrimSpace(subject.Make) + " " + strings.TrimSpace(subject.Model)
	return []string{
		s + " owner's manual PDF",
		s + " manual filetype:pdf",
		s + " installation guide PDF",
		"site:manualslib.com " + s,
		s + " service manual PDF",
	}
}

// IsBotPage reports whether body is an anti-automation interstitial.
func IsBotPage(body []byte) bool {
	lower := strings.ToLower(string(body))
	for _, m := range botMarkup {
		if strings.Contains(lower, m) {
			return true
		}
	}
	for _, p := range botPhrases {
		if strings.Contains(lower, p) {
			urls, err := goquery.SearchResultLinks(string(body))
			return err != nil || len(urls) == 0
		}
	}
	return false
}

// FallbackLinks returns search links a person can follow when automated
// search is blocked.
func FallbackLinks(subject manfetch.Subject) []manfetch.SearchLink {
	q := strings.TrimSpace(subject.Make) + " " + strings.TrimSpace(subject.Model)
	return []manfetch.SearchLink{
		{URL: "https://www.google.com/search?q=" + url.QueryEscape(q+" owner's manual pdf"), Label: "Google"},
		{URL: "https://www.manualslib.com/search/?q=" + url.QueryEscape(q), Label: "ManualsLib"},
		{URL: "https://duckduckgo.com/?q=" + url.QueryEscape(q+" manual pdf"), Label: "DuckDuckGo"},
	}
}
