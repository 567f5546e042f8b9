// Package rod renders landing pages in headless Chrome for sites whose
// manual links only appear after JavaScript runs.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/manfetch"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements manfetch.Fetcher at compile time.
var _ manfetch.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	maxPages  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent sets the browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithMaxPages sets how many pages are rendered before the browser is
// recycled.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) { f.maxPages = n }
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	m, err := NewBrowserManager(f.maxPages, f.userAgent)
	if err != nil {
		return nil, err
	}
	f.manager = m
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered HTML. A non-2xx document response returns a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	if browser == nil {
		return "", manfetch.Errorf(manfetch.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.PageDone()

	page = page.Context(ctx)

	var status atomic.Int64
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status.Store(int64(e.Response.Status))
		return true
	})
	go wait()

	if err := page.Navigate(url); err != nil {
		return "", contextError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextError(ctx, err)
	}

	if code := int(status.Load()); code != 0 && (code < 200 || code > 299) {
		return "", &manfetch.StatusError{Code: code}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextError(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. It is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the browser process ID.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// contextError reports the context's error when it ended the render, so
// callers can match context.Canceled and context.DeadlineExceeded.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
