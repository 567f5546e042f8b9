package manfetch

import "context"

// Strategy identifies how a candidate URL was produced.
type Strategy string

// Candidate strategies.
const (
	StrategyRepository   Strategy = "repository"
	StrategyAI           Strategy = "ai-suggested"
	StrategySearchEngine Strategy = "search-engine"
)

// Candidate is a URL proposed as a manual source.
// Score is a pure function of the URL and the subject.
type Candidate struct {
	URL      string   `json:"url"`
	Strategy Strategy `json:"strategy"`
	Score    int      `json:"score"`
}

// SearchLink is a human-followable search URL offered when automated
// search is blocked.
type SearchLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// SourceResult is the output of a single candidate strategy.
type SourceResult struct {
	URLs        []string
	SearchLinks []SearchLink
}

// SearchResult is the ranked output of candidate generation.
type SearchResult struct {
	Candidates  []Candidate  `json:"candidates"`
	SearchLinks []SearchLink `json:"searchLinks,omitempty"`
}

// URLs returns the candidate URLs in rank order. Never nil.
func (r *SearchResult) URLs() []string {
	urls := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		urls = append(urls, c.URL)
	}
	return urls
}

// CandidateSource is one independent strategy for proposing manual URLs.
type CandidateSource interface {
	// Strategy identifies the source in candidates and logs.
	Strategy() Strategy

	// Candidates proposes URLs for the subject. A source that cannot reach
	// its backend returns an error; a source that is blocked returns no
	// URLs and a set of SearchLinks instead.
	Candidates(ctx context.Context, subject Subject) (*SourceResult, error)
}

// CandidateGenerator produces a deduplicated, ranked list of candidates.
type CandidateGenerator interface {
	// Generate runs every configured source and ranks the combined output.
	// Failing sources degrade to empty results.
	Generate(ctx context.Context, subject Subject) (*SearchResult, error)
}
