// Package goquery extracts links from HTML using goquery.
// Every extractor resolves links to absolute http(s) URLs against the
// document's base URL and returns them in document order without duplicates.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/manfetch"
)

// Link is a link found in a document.
type Link struct {
	// URL is absolute.
	URL string

	// Text is the trimmed text of the element, if any.
	Text string

	// Attr is the attribute the URL came from (e.g., "href", "src", "data-pdf").
	Attr string
}

// Document is parsed HTML bound to the URL it was fetched from.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse parses html, resolving relative links against baseURL.
func Parse(html string, baseURL string) (*Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, manfetch.Errorf(manfetch.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, manfetch.Errorf(manfetch.EINVALID, "failed to parse HTML: %v", err)
	}

	return &Document{doc: doc, base: base}, nil
}

// Base returns the URL the document was fetched from.
func (d *Document) Base() *url.URL {
	return d.base
}

// Anchors returns every http(s) anchor in the document.
func (d *Document) Anchors() []Link {
	return d.anchors(func(Link, *goquery.Selection) bool { return true })
}

// PDFAnchors returns anchors whose URL points at a .pdf.
func (d *Document) PDFAnchors() []Link {
	return d.anchors(func(l Link, _ *goquery.Selection) bool {
		return IsPDFURL(l.URL)
	})
}

// DownloadAnchors returns anchors labelled as downloads by text, title,
// class, the download attribute or the URL itself.
func (d *Document) DownloadAnchors() []Link {
	return d.anchors(func(l Link, sel *goquery.Selection) bool {
		if _, ok := sel.Attr("download"); ok {
			return true
		}
		title, _ := sel.Attr("title")
		class, _ := sel.Attr("class")
		haystack := strings.ToLower(l.Text + " " + title + " " + class + " " + l.URL)
		return strings.Contains(haystack, "download")
	})
}

// LabelledAnchors returns anchors whose text or title contains any of the
// words, compared case-insensitively.
func (d *Document) LabelledAnchors(words ...string) []Link {
	return d.anchors(func(l Link, sel *goquery.Selection) bool {
		title, _ := sel.Attr("title")
		label := strings.ToLower(l.Text + " " + title)
		for _, w := range words {
			if strings.Contains(label, strings.ToLower(w)) {
				return true
			}
		}
		return false
	})
}

// EmbeddedPDFs returns iframe, embed and object sources that point at a .pdf.
func (d *Document) EmbeddedPDFs() []Link {
	var links []Link
	seen := make(map[string]bool)

	collect := func(selector, attr string) {
		d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			v, _ := sel.Attr(attr)
			abs := AbsoluteURL(d.base, v)
			if abs == "" || seen[abs] || !IsPDFURL(abs) {
				return
			}
			seen[abs] = true
			links = append(links, Link{URL: abs, Attr: attr})
		})
	}

	collect("iframe[src]", "src")
	collect("embed[src]", "src")
	collect("object[data]", "data")

	return links
}

// DataAttributePDFs returns data-* attribute values that point at a .pdf.
// If names are given, only those attributes are considered.
func (d *Document) DataAttributePDFs(names ...string) []Link {
	var links []Link
	seen := make(map[string]bool)

	d.doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			for _, a := range node.Attr {
				if !strings.HasPrefix(a.Key, "data-") || !wanted(a.Key, names) {
					continue
				}
				abs := AbsoluteURL(d.base, strings.TrimSpace(a.Val))
				if abs == "" || seen[abs] || !IsPDFURL(abs) {
					continue
				}
				seen[abs] = true
				links = append(links, Link{
					URL:  abs,
					Text: strings.TrimSpace(sel.Text()),
					Attr: a.Key,
				})
			}
		}
	})

	return links
}

func wanted(name string, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (d *Document) anchors(keep func(Link, *goquery.Selection) bool) []Link {
	var links []Link
	seen := make(map[string]bool)

	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := AbsoluteURL(d.base, href)
		if abs == "" || seen[abs] {
			return
		}
		link := Link{
			URL:  abs,
			Text: strings.Join(strings.Fields(sel.Text()), " "),
			Attr: "href",
		}
		if !keep(link, sel) {
			return
		}
		seen[abs] = true
		links = append(links, link)
	})

	return links
}

// AbsoluteURL resolves href against base. It handles absolute,
// protocol-relative, absolute-path and relative forms, and returns "" for
// empty, fragment-only and non-http(s) references (javascript:, mailto:, ...).
func AbsoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// IsPDFURL reports whether the URL mentions a .pdf file.
func IsPDFURL(u string) bool {
	return strings.Contains(strings.ToLower(u), ".pdf")
}
