// Package http provides the net/http implementation of manfetch.Transport
// and an HTML manfetch.Fetcher built on top of it.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/manfetch"
)

// Client defaults.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 10
	DefaultMaxBodySize  = 100 << 20
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Ensure Client implements manfetch.Transport at compile time.
var _ manfetch.Transport = (*Client)(nil)

// Client performs GET requests with browser-like headers, a bounded
// redirect chain and a per-request timeout. Connection reuse is handled by
// the underlying http.Client. Client is safe for concurrent use.
type Client struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxRedirects int
	maxBodySize  int64
	limiter      *DomainLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the default per-request timeout.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxRedirects bounds how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

// WithMaxBodySize caps how many bytes of a body are read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// WithRateLimit limits requests per second to each registrable domain.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = NewDomainLimiter(rps)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:      DefaultTimeout,
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
		maxBodySize:  DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > c.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", c.maxRedirects)
			}
			return nil
		},
	}

	return c
}

// Get performs the request. Non-2xx responses are returned, not treated
// as errors; network failures, timeouts and redirect loops are errors.
func (c *Client) Get(ctx context.Context, r *manfetch.Request) (*manfetch.Response, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, manfetch.Errorf(manfetch.EINVALID, "invalid request URL: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", unwrapURLError(err))
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, manfetch.Errorf(manfetch.EINVALID, "body exceeds %d bytes", c.maxBodySize)
	}

	return &manfetch.Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// unwrapURLError drops the "Get <url>:" prefix so that error text
// describes the failure rather than the address.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	if uerr.Timeout() {
		return fmt.Errorf("request timeout: %w", uerr.Err)
	}
	return uerr.Err
}
