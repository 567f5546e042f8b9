package search

import (
	"context"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.CandidateGenerator = (*Generator)(nil)

// Generator runs candidate sources in order and ranks their combined output.
type Generator struct {
	sources []manfetch.CandidateSource
}

// NewGenerator creates a Generator over the given sources. Nil sources are
// skipped, so optional strategies can be passed unconditionally.
func NewGenerator(sources ...manfetch.CandidateSource) *Generator {
	g := &Generator{}
	for _, s := range sources {
		if s != nil {
			g.sources = append(g.sources, s)
		}
	}
	return g
}

// Generate implements manfetch.CandidateGenerator. A failing source
// contributes nothing; the others still run.
func (g *Generator) Generate(ctx context.Context, subject manfetch.Subject) (*manfetch.SearchResult, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	var candidates []manfetch.Candidate
	var links []manfetch.SearchLink
	for _, src := range g.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := src.Candidates(ctx, subject)
		if err != nil || res == nil {
			continue
		}
		for _, u := range res.URLs {
			candidates = append(candidates, manfetch.Candidate{URL: u, Strategy: src.Strategy()})
		}
		links = append(links, res.SearchLinks...)
	}

	result := &manfetch.SearchResult{
		Candidates:  Rank(candidates, subject),
		SearchLinks: links,
	}
	return result, nil
}
