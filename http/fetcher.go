package http

import (
	"context"

	"github.com/fwojciec/manfetch"
)

// Ensure Fetcher implements manfetch.Fetcher at compile time.
var _ manfetch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content over a Transport.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	transport manfetch.Transport
}

// NewFetcher creates a new Fetcher. If transport is nil a default Client is used.
func NewFetcher(transport manfetch.Transport) *Fetcher {
	if transport == nil {
		transport = NewClient()
	}
	return &Fetcher{transport: transport}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.transport.Get(ctx, &manfetch.Request{URL: url})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", &manfetch.StatusError{Code: resp.StatusCode}
	}
	return string(resp.Body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
