package resolve

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/goquery"
)

var _ manfetch.SiteResolver = (*ManualsLib)(nil)

// ManualsLibHost is the manual-repository aggregator's registrable domain.
const ManualsLibHost = "manualslib.com"

// MaxDetailPages bounds how many detail pages are visited per results page.
const MaxDetailPages = 3

var detailPathRe = regexp.MustCompile(`^/manual/\d+/`)

// ManualsLib treats repository pages as search results: it scores the
// links to manual detail pages, visits the best few and takes the first
// PDF or download link found on them.
type ManualsLib struct {
	fetcher manfetch.Fetcher
}

// NewManualsLib creates a ManualsLib strategy that fetches detail pages
// with fetcher.
func NewManualsLib(fetcher manfetch.Fetcher) *ManualsLib {
	return &ManualsLib{fetcher: fetcher}
}

func (m *ManualsLib) Name() string { return "manualslib" }

func (m *ManualsLib) CanHandle(u *url.URL) bool {
	return registrableDomain(u.Hostname()) == ManualsLibHost
}

func (m *ManualsLib) Resolve(ctx context.Context, page *manfetch.Page, subject manfetch.Subject) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}
	doc, err := goquery.Parse(html, page.URL.String())
	if err != nil {
		return "", err
	}

	// Already on a detail page.
	if detailPathRe.MatchString(page.URL.Path) {
		if link := detailPageLink(doc); link != "" {
			return link, nil
		}
		return "", notFound(m.Name(), page.URL)
	}

	for _, detail := range RankDetailLinks(doc.Anchors(), subject, MaxDetailPages) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if m.fetcher == nil {
			break
		}
		detailHTML, err := m.fetcher.Fetch(ctx, detail)
		if err != nil {
			continue
		}
		detailDoc, err := goquery.Parse(detailHTML, detail)
		if err != nil {
			continue
		}
		if link := detailPageLink(detailDoc); link != "" {
			return link, nil
		}
	}

	return "", notFound(m.Name(), page.URL)
}

// RankDetailLinks returns up to limit manual detail page URLs from the
// anchors, best first. Links that match neither the subject nor a manual
// keyword are dropped.
func RankDetailLinks(anchors []goquery.Link, subject manfetch.Subject, limit int) []string {
	type scored struct {
		url   string
		score int
	}

	var links []scored
	for _, a := range anchors {
		u, err := url.Parse(a.URL)
		if err != nil || !detailPathRe.MatchString(u.Path) {
			continue
		}
		if s := DetailScore(a, subject); s > 0 {
			links = append(links, scored{url: a.URL, score: s})
		}
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].score > links[j].score
	})

	out := make([]string, 0, limit)
	for _, l := range links {
		if len(out) == limit {
			break
		}
		out = append(out, l.url)
	}
	return out
}

// DetailScore rates how likely a detail link is to be the subject's manual.
func DetailScore(a goquery.Link, subject manfetch.Subject) int {
	text := strings.ToLower(a.Text + " " + a.URL)
	score := 0
	if ContainsModel(text, subject.Model) {
		score += 10
	}
	if brand := strings.ToLower(strings.TrimSpace(subject.Make)); brand != "" && strings.Contains(text, brand) {
		score += 5
	}
	if strings.Contains(text, "user manual") || strings.Contains(text, "owner") ||
		strings.Contains(text, "user-manual") || strings.Contains(text, "user guide") {
		score += 3
	}
	return score
}

func detailPageLink(doc *goquery.Document) string {
	if links := doc.PDFAnchors(); len(links) > 0 {
		return links[0].URL
	}
	if links := doc.DownloadAnchors(); len(links) > 0 {
		return links[0].URL
	}
	if links := doc.DataAttributePDFs(); len(links) > 0 {
		return links[0].URL
	}
	return ""
}
