package search

import (
	"context"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.CandidateSource = (*RepositorySource)(nil)

// RepositorySource proposes URLs by filling the subject into the manual
// repository templates and the matching brand's support-site templates.
// It performs no I/O.
type RepositorySource struct {
	brands []Brand
}

// NewRepositorySource creates a RepositorySource over brands. A nil table
// uses DefaultBrands.
func NewRepositorySource(brands []Brand) *RepositorySource {
	if brands == nil {
		brands = DefaultBrands
	}
	return &RepositorySource{brands: brands}
}

func (s *RepositorySource) Strategy() manfetch.Strategy {
	return manfetch.StrategyRepository
}

func (s *RepositorySource) Candidates(_ context.Context, subject manfetch.Subject) (*manfetch.SourceResult, error) {
	var urls []string
	for _, t := range RepositoryTemplates {
		urls = append(urls, Expand(t, subject))
	}
	if b, ok := LookupBrand(s.brands, subject.Make); ok {
		for _, t := range b.Templates {
			urls = append(urls, Expand(t, subject))
		}
	}
	return &manfetch.SourceResult{URLs: urls}, nil
}
