package manfetch

import (
	"context"
	"net/http"
	"time"
)

// Request describes a single GET request.
type Request struct {
	URL    string
	Header http.Header

	// Timeout bounds the whole exchange. Zero uses the transport default.
	Timeout time.Duration
}

// Response is a completed HTTP exchange.
type Response struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport performs HTTP GET requests. Implementations follow a bounded
// number of redirects and set default browser-like headers.
type Transport interface {
	// Get performs the request. Network-level failures return an error;
	// any completed exchange, whatever its status, returns a Response.
	Get(ctx context.Context, req *Request) (*Response, error)
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the page HTML. Non-2xx statuses return a *StatusError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Completer is a text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
