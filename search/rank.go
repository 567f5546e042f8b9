package search

import (
	"net/url"
	"sort"
	"strings"

	"github.com/fwojciec/manfetch"
)

// MaxCandidates is the number of ranked candidates kept.
const MaxCandidates = 10

// Keywords earn a single bonus however many of them a URL contains.
var Keywords = []string{"manual", "guide", "documentation", "support", "docs", "literature"}

// Score rates how likely rawURL is to lead to the subject's manual.
// It depends only on its arguments.
func Score(rawURL string, subject manfetch.Subject) int {
	lower := strings.ToLower(rawURL)
	brand := strings.ToLower(strings.TrimSpace(subject.Make))
	model := strings.ToLower(strings.TrimSpace(subject.Model))
	// A trailing .pdf on a bare host belongs to the file, not the domain.
	host := hostOf(strings.TrimSuffix(lower, ".pdf"))

	score := 0
	if strings.Contains(lower, ".pdf") {
		score += 10
	}
	if model != "" && strings.Contains(lower, model) {
		score += 8
	}
	if brand != "" && strings.Contains(lower, brand) {
		score += 4
	}
	if isRepositoryHost(host) {
		score += 7
	}
	if brand != "" && strings.Contains(host, strings.ReplaceAll(brand, " ", "")) {
		score += 6
	}
	for _, k := range Keywords {
		if strings.Contains(lower, k) {
			score += 2
			break
		}
	}
	return score
}

// Rank deduplicates candidates by their URL-decoded form, keeping the first
// occurrence, scores them, and returns the top MaxCandidates in descending
// score order. Equal scores keep their input order.
func Rank(candidates []manfetch.Candidate, subject manfetch.Subject) []manfetch.Candidate {
	seen := make(map[string]bool, len(candidates))
	ranked := make([]manfetch.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := DedupKey(c.URL)
		if c.URL == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.Score = Score(c.URL, subject)
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > MaxCandidates {
		ranked = ranked[:MaxCandidates]
	}
	return ranked
}

// DedupKey returns the URL-decoded form used to detect duplicates.
func DedupKey(rawURL string) string {
	if decoded, err := url.QueryUnescape(rawURL); err == nil {
		return decoded
	}
	return rawURL
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func isRepositoryHost(host string) bool {
	for _, d := range RepositoryDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
