package resolve

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/manfetch/goquery"
)

// Raw-markup patterns. These run on the HTML text rather than the DOM so they
// also see links inside scripts and malformed markup.
var (
	scriptVarRe = regexp.MustCompile(`(?i)["']?\b(?:pdf_?url|manual_?url|pdf_?link|manual_?link|download_?url|file_?url)\b["']?\s*[:=]\s*["']([^"']+)["']`)

	archiveLinkRe = regexp.MustCompile(`(?i)(?:https?:)?(?://(?:www\.)?archive\.org)?/download/[^"'\s<>]+?\.pdf`)

	pdfRefRe = regexp.MustCompile(`(?i)(?:https?:)?/{0,2}[^"'\s()<>=]+?\.pdf(?:[?#][^"'\s()<>]*)?`)

	nonManualPathRe = regexp.MustCompile(`(?i)/(?:about|contact|privacy|terms|help|faq)(?:[/._-]|$)`)
)

// modelWindow is how far from a .pdf reference the model number may appear
// for the link to count as model-adjacent.
const modelWindow = 200

// ScriptPDFURLs returns values assigned to script variables named like
// pdfUrl or manualUrl, resolved against base.
func ScriptPDFURLs(html string, base *url.URL) []string {
	var out []string
	for _, m := range scriptVarRe.FindAllStringSubmatch(html, -1) {
		if abs := goquery.AbsoluteURL(base, unescapeJS(m[1])); abs != "" {
			out = appendUnique(out, abs)
		}
	}
	return out
}

// ArchiveEmbeddedLinks returns archive.org download links to PDFs that appear
// anywhere in the markup.
func ArchiveEmbeddedLinks(html string, base *url.URL) []string {
	var out []string
	for _, m := range archiveLinkRe.FindAllString(html, -1) {
		if abs := goquery.AbsoluteURL(base, m); abs != "" {
			out = appendUnique(out, abs)
		}
	}
	return out
}

// ModelAdjacentPDFs returns .pdf references in the markup that have the
// model number within a short distance on either side.
func ModelAdjacentPDFs(html string, model string, base *url.URL) []string {
	needle := strings.ToLower(strings.TrimSpace(model))
	if needle == "" {
		return nil
	}
	lower := strings.ToLower(html)

	var out []string
	for _, loc := range pdfRefRe.FindAllStringIndex(html, -1) {
		from := max(0, loc[0]-modelWindow)
		to := min(len(lower), loc[1]+modelWindow)
		if !strings.Contains(lower[from:to], needle) {
			continue
		}
		if abs := goquery.AbsoluteURL(base, html[loc[0]:loc[1]]); abs != "" {
			out = appendUnique(out, abs)
		}
	}
	return out
}

// IsNonManualPath reports whether the URL points at a site page that never
// hosts manuals (about, contact, privacy, terms, help, faq).
func IsNonManualPath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return nonManualPathRe.MatchString(u.Path)
}

// ContainsModel reports whether s mentions the model, ignoring case and
// treating dashes, spaces and underscores as optional.
func ContainsModel(s, model string) bool {
	m := compact(model)
	if m == "" {
		return false
	}
	return strings.Contains(compact(s), m)
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '+':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

func unescapeJS(s string) string {
	return strings.ReplaceAll(s, `\/`, "/")
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
