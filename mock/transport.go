package mock

import (
	"context"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.Transport = (*Transport)(nil)

// Transport is a mock implementation of manfetch.Transport.
type Transport struct {
	GetFn func(ctx context.Context, req *manfetch.Request) (*manfetch.Response, error)
}

func (t *Transport) Get(ctx context.Context, req *manfetch.Request) (*manfetch.Response, error) {
	return t.GetFn(ctx, req)
}

var _ manfetch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of manfetch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ manfetch.Completer = (*Completer)(nil)

// Completer is a mock implementation of manfetch.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}
