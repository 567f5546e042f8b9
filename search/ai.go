package search

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/goquery"
)

var _ manfetch.CandidateSource = (*AISource)(nil)

// MaxAISuggestions caps the URLs taken from a completion.
const MaxAISuggestions = 3

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*?\]`)

// AISource asks a completion service for likely manual URLs. When the
// service fails or answers with nothing usable it falls back to the brand's
// known template URL.
type AISource struct {
	completer manfetch.Completer
	brands    []Brand
}

// NewAISource creates an AISource. A nil brand table uses DefaultBrands.
func NewAISource(completer manfetch.Completer, brands []Brand) *AISource {
	if brands == nil {
		brands = DefaultBrands
	}
	return &AISource{completer: completer, brands: brands}
}

func (s *AISource) Strategy() manfetch.Strategy {
	return manfetch.StrategyAI
}

func (s *AISource) Candidates(ctx context.Context, subject manfetch.Subject) (*manfetch.SourceResult, error) {
	brand, hasBrand := LookupBrand(s.brands, subject.Make)

	var fallback []string
	if hasBrand && len(brand.Templates) > 0 {
		fallback = []string{Expand(brand.Templates[0], subject)}
	}

	text, err := s.completer.Complete(ctx, BuildPrompt(subject, brand, hasBrand))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &manfetch.SourceResult{URLs: fallback}, nil
	}

	urls := ParseSuggestions(text)
	if len(urls) == 0 {
		urls = fallback
	}
	return &manfetch.SourceResult{URLs: urls}, nil
}

// BuildPrompt asks for 1-3 manual URLs as a JSON array, mentioning the
// brand's known URL pattern when there is one.
func BuildPrompt(subject manfetch.Subject, brand Brand, hasBrand bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find the owner's manual PDF for the %s %s.\n", strings.TrimSpace(subject.Make), strings.TrimSpace(subject.Model))
	if hasBrand && len(brand.Templates) > 0 {
		fmt.Fprintf(&b, "The manufacturer's support pages usually look like: %s\n", Expand(brand.Templates[0], subject))
	}
	b.WriteString("Reply with a JSON array of 1 to 3 URLs, most likely first, either direct PDF links or support pages that link to the manual. ")
	b.WriteString("Do not include any other text.")
	return b.String()
}

// ParseSuggestions extracts http(s) URLs from the first JSON array of
// strings in text, keeping at most MaxAISuggestions.
func ParseSuggestions(text string) []string {
	raw := jsonArrayRe.FindString(text)
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	var urls []string
	for _, item := range items {
		u := goquery.AbsoluteURL(nil, item)
		if u == "" {
			continue
		}
		urls = append(urls, u)
		if len(urls) == MaxAISuggestions {
			break
		}
	}
	return urls
}
