package mock

import (
	"context"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.CandidateSource = (*CandidateSource)(nil)

// CandidateSource is a mock implementation of manfetch.CandidateSource.
type CandidateSource struct {
	StrategyFn   func() manfetch.Strategy
	CandidatesFn func(ctx context.Context, subject manfetch.Subject) (*manfetch.SourceResult, error)
}

func (s *CandidateSource) Strategy() manfetch.Strategy {
	return s.StrategyFn()
}

func (s *CandidateSource) Candidates(ctx context.Context, subject manfetch.Subject) (*manfetch.SourceResult, error) {
	return s.CandidatesFn(ctx, subject)
}

var _ manfetch.CandidateGenerator = (*CandidateGenerator)(nil)

// CandidateGenerator is a mock implementation of manfetch.CandidateGenerator.
type CandidateGenerator struct {
	GenerateFn func(ctx context.Context, subject manfetch.Subject) (*manfetch.SearchResult, error)
}

func (g *CandidateGenerator) Generate(ctx context.Context, subject manfetch.Subject) (*manfetch.SearchResult, error) {
	return g.GenerateFn(ctx, subject)
}
