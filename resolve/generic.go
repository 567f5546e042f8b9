package resolve

import (
	"context"
	"net/url"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/goquery"
)

var _ manfetch.SiteResolver = (*Generic)(nil)

// Generic scans any page for PDF links. It accepts every URL and belongs
// at the end of the strategy list.
type Generic struct{}

func (g *Generic) Name() string { return "generic" }

func (g *Generic) CanHandle(*url.URL) bool { return true }

// Resolve collects PDF anchors, download links, data attributes, script
// variables and embedded viewers, in that order. A candidate mentioning the
// model wins; otherwise the first PDF-looking candidate does.
func (g *Generic) Resolve(ctx context.Context, page *manfetch.Page, subject manfetch.Subject) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}

	doc, err := goquery.Parse(html, page.URL.String())
	if err != nil {
		return "", err
	}

	candidates := GenericCandidates(doc, html)
	if link := Pick(candidates, subject.Model); link != "" {
		return link, nil
	}
	return "", notFound(g.Name(), page.URL)
}

// GenericCandidates returns every link on the page that may lead to a
// manual, in preference order, with non-manual site pages removed.
func GenericCandidates(doc *goquery.Document, html string) []string {
	var all []string
	for _, l := range doc.PDFAnchors() {
		all = appendUnique(all, l.URL)
	}
	for _, l := range doc.DownloadAnchors() {
		all = appendUnique(all, l.URL)
	}
	for _, l := range doc.DataAttributePDFs() {
		all = appendUnique(all, l.URL)
	}
	for _, u := range ScriptPDFURLs(html, doc.Base()) {
		all = appendUnique(all, u)
	}
	for _, l := range doc.EmbeddedPDFs() {
		all = appendUnique(all, l.URL)
	}

	out := all[:0]
	for _, u := range all {
		if !IsNonManualPath(u) {
			out = append(out, u)
		}
	}
	return out
}

// Pick returns the first candidate mentioning the model, else the first
// PDF-looking candidate, else "".
func Pick(candidates []string, model string) string {
	for _, c := range candidates {
		if ContainsModel(c, model) {
			return c
		}
	}
	for _, c := range candidates {
		if goquery.IsPDFURL(c) {
			return c
		}
	}
	return ""
}
