// Package resolve turns landing pages into direct PDF links.
//
// A Resolver runs an ordered list of site strategies. The first strategy
// that can handle the URL and yields a link wins; strategies that find
// nothing fall through to the next one, ending with the generic scan.
package resolve

import (
	"context"
	"net/url"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.PageResolver = (*Resolver)(nil)

// Resolver implements manfetch.PageResolver over ordered site strategies.
type Resolver struct {
	fetcher manfetch.Fetcher
	sites   []manfetch.SiteResolver
}

// NewResolver creates a Resolver that fetches pages with fetcher and tries
// sites in order. The last site should accept every URL.
func NewResolver(fetcher manfetch.Fetcher, sites ...manfetch.SiteResolver) *Resolver {
	return &Resolver{fetcher: fetcher, sites: sites}
}

// DefaultSites returns the built-in strategies in dispatch order: cloud
// storage, archive mirror, manual repository, manufacturer, generic.
func DefaultSites(fetcher manfetch.Fetcher) []manfetch.SiteResolver {
	return []manfetch.SiteResolver{
		&CloudStorage{},
		NewArchive(fetcher),
		NewManualsLib(fetcher),
		NewManufacturer(DefaultManufacturerDomains()...),
		&Generic{},
	}
}

// ResolvePage implements manfetch.PageResolver.
func (r *Resolver) ResolvePage(ctx context.Context, pageURL string, subject manfetch.Subject) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", manfetch.Errorf(manfetch.EINVALID, "invalid page URL: %s", pageURL)
	}

	page := manfetch.NewPage(u, r.fetcher)

	var lastErr error
	for _, site := range r.sites {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !site.CanHandle(u) {
			continue
		}
		link, err := site.Resolve(ctx, page, subject)
		if err == nil && link != "" {
			return link, nil
		}
		if err != nil && manfetch.ErrorCode(err) != manfetch.ENOTFOUND {
			lastErr = err
		}
	}

	// A fetch failure explains the miss better than a generic not-found.
	if lastErr != nil {
		return "", lastErr
	}
	return "", manfetch.Errorf(manfetch.ENOTFOUND, "no PDF link found on %s", pageURL)
}

func notFound(site string, u *url.URL) error {
	return manfetch.Errorf(manfetch.ENOTFOUND, "%s: no PDF link on %s", site, u)
}
