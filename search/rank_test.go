package search_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/search"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want int
	}{
		{"https://example.com/x", 0},
		{"https://example.com/x.pdf", 10},
		{"https://www.manualslib.com/search/?q=Samsung+RF28R7351SG", 21},
		{"https://www.samsung.com/us/support/rf28r7351sg.pdf", 30},
		{"https://example.com/manual-guide-docs-support", 2},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, search.Score(tt.url, subject))
		})
	}
}

func TestScore_PDFSuffixAddsTen(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/x",
		"https://www.samsung.com/us/support/RF28R7351SG",
		"https://www.manualslib.com/manual/1/guide",
		"https://cdn.example.com/docs/literature",
		"https://www.manualslib.com",
		"https://archive.org",
		"https://archive.org:8080",
		"https://www.samsung.com",
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, search.Score(u, subject)+10, search.Score(u+".pdf", subject))
		})
	}
}

func TestScore_KeywordBonusOnce(t *testing.T) {
	t.Parallel()

	one := search.Score("https://example.com/manual", subject)
	all := search.Score("https://example.com/manual/guide/documentation/support/docs/literature", subject)
	assert.Equal(t, 2, one)
	assert.Equal(t, one, all)
}

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("dedups decoded URLs keeping the first", func(t *testing.T) {
		t.Parallel()
		got := search.Rank([]manfetch.Candidate{
			{URL: "https://example.com/a%20b", Strategy: manfetch.StrategyRepository},
			{URL: "https://example.com/a b", Strategy: manfetch.StrategySearchEngine},
		}, subject)
		assert.Equal(t, []manfetch.Candidate{
			{URL: "https://example.com/a%20b", Strategy: manfetch.StrategyRepository, Score: 0},
		}, got)
	})

	t.Run("sorts descending and keeps order on ties", func(t *testing.T) {
		t.Parallel()
		got := search.Rank([]manfetch.Candidate{
			{URL: "https://example.com/one"},
			{URL: "https://example.com/x.pdf"},
			{URL: "https://example.com/two"},
		}, subject)
		assert.Equal(t, []string{
			"https://example.com/x.pdf",
			"https://example.com/one",
			"https://example.com/two",
		}, (&manfetch.SearchResult{Candidates: got}).URLs())
	})

	t.Run("keeps the top ten", func(t *testing.T) {
		t.Parallel()
		var in []manfetch.Candidate
		for i := range 15 {
			in = append(in, manfetch.Candidate{URL: fmt.Sprintf("https://example.com/%d", i)})
		}
		in = append(in, manfetch.Candidate{URL: "https://example.com/best.pdf"})

		got := search.Rank(in, subject)
		assert.Len(t, got, search.MaxCandidates)
		assert.Equal(t, "https://example.com/best.pdf", got[0].URL)
		assert.Equal(t, "https://example.com/8", got[9].URL)
	})

	t.Run("skips empty URLs", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, search.Rank([]manfetch.Candidate{{URL: ""}}, subject))
	})
}
