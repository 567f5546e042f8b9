package manfetch

import (
	"context"
	"net/url"
)

// Page is a landing page being resolved to a PDF link.
// Its HTML is fetched on first use and reused afterwards. A Page belongs to
// a single resolution and is not safe for concurrent use.
type Page struct {
	URL *url.URL

	fetcher Fetcher
	html    string
	err     error
	loaded  bool
}

// NewPage returns a page whose HTML is fetched lazily with f.
func NewPage(u *url.URL, f Fetcher) *Page {
	return &Page{URL: u, fetcher: f}
}

// NewStaticPage returns a page with already-known HTML.
func NewStaticPage(u *url.URL, html string) *Page {
	return &Page{URL: u, html: html, loaded: true}
}

// HTML returns the page markup, fetching it on first call.
func (p *Page) HTML(ctx context.Context) (string, error) {
	if p.loaded {
		return p.html, p.err
	}
	p.loaded = true
	if p.fetcher == nil {
		p.err = Errorf(EINTERNAL, "no fetcher for %s", p.URL)
		return "", p.err
	}
	p.html, p.err = p.fetcher.Fetch(ctx, p.URL.String())
	return p.html, p.err
}

// SiteResolver extracts a direct PDF link for one family of sites.
type SiteResolver interface {
	// Name returns the resolver's identifier (e.g., "archive", "generic").
	Name() string

	// CanHandle reports whether the resolver applies to the URL.
	CanHandle(u *url.URL) bool

	// Resolve returns an absolute PDF URL.
	// Returns ENOTFOUND if the page yields no usable link.
	Resolve(ctx context.Context, page *Page, subject Subject) (string, error)
}

// PageResolver turns an arbitrary landing page into a direct PDF link.
type PageResolver interface {
	// ResolvePage returns an absolute PDF URL.
	// Returns ENOTFOUND if no strategy yields a usable link.
	ResolvePage(ctx context.Context, pageURL string, subject Subject) (string, error)
}
