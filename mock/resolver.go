package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.SiteResolver = (*SiteResolver)(nil)

// SiteResolver is a mock implementation of manfetch.SiteResolver.
type SiteResolver struct {
	NameFn      func() string
	CanHandleFn func(u *url.URL) bool
	ResolveFn   func(ctx context.Context, page *manfetch.Page, subject manfetch.Subject) (string, error)
}

func (r *SiteResolver) Name() string {
	return r.NameFn()
}

func (r *SiteResolver) CanHandle(u *url.URL) bool {
	return r.CanHandleFn(u)
}

func (r *SiteResolver) Resolve(ctx context.Context, page *manfetch.Page, subject manfetch.Subject) (string, error) {
	return r.ResolveFn(ctx, page, subject)
}

var _ manfetch.PageResolver = (*PageResolver)(nil)

// PageResolver is a mock implementation of manfetch.PageResolver.
type PageResolver struct {
	ResolvePageFn func(ctx context.Context, pageURL string, subject manfetch.Subject) (string, error)
}

func (r *PageResolver) ResolvePage(ctx context.Context, pageURL string, subject manfetch.Subject) (string, error) {
	return r.ResolvePageFn(ctx, pageURL, subject)
}
