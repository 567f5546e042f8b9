// Package bloom tracks attempted URLs using Bloom filters.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Defaults size a filter for one acquisition: ten candidates, each with a
// handful of resolved links and path variations.
const (
	DefaultCapacity          = 256
	DefaultFalsePositiveRate = 0.0001
)

// Filter remembers URLs. A false positive makes a URL look attempted when
// it was not; false negatives are impossible.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// CheckAndAdd records the URL and reports whether it might have been
// recorded before.
func (f *Filter) CheckAndAdd(rawURL string) bool {
	return f.f.TestAndAddString(Normalize(rawURL))
}

// Normalize lower-cases the scheme and host and drops the fragment, so
// that spellings of the same resource collide.
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
