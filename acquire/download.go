package acquire

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.Downloader = (*Downloader)(nil)

const (
	// DefaultDownloadTimeout bounds each download attempt.
	DefaultDownloadTimeout = 90 * time.Second

	// DefaultFilename is used when neither the response nor the URL names
	// the file.
	DefaultFilename = "manual.pdf"
)

// Downloader fetches URLs over a Transport, retrying transient failures
// with exponential backoff and accepting only PDF content.
type Downloader struct {
	Transport   manfetch.Transport
	Timeout     time.Duration
	RetryDelays []time.Duration

	// Sleep waits between attempts. Defaults to Sleep.
	Sleep SleepFunc

	// Log, if set, is called before each retry.
	Log LogFunc
}

// NewDownloader creates a Downloader with the default timeout and backoff.
func NewDownloader(transport manfetch.Transport) *Downloader {
	return &Downloader{
		Transport:   transport,
		Timeout:     DefaultDownloadTimeout,
		RetryDelays: DefaultRetryDelays(),
		Sleep:       Sleep,
	}
}

// Download implements manfetch.Downloader. Network failures and 5xx
// responses are retried; 4xx responses and non-PDF content are not.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*manfetch.Download, error) {
	sleep := d.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	dl, _, err := withRetry(ctx, rawURL, func(ctx context.Context) (*manfetch.Download, error) {
		return d.fetch(ctx, rawURL)
	}, d.RetryDelays, sleep, d.Log)
	return dl, err
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) (*manfetch.Download, error) {
	header := make(http.Header)
	header.Set("Accept", "application/pdf,application/octet-stream;q=0.9,*/*;q=0.8")

	resp, err := d.Transport.Get(ctx, &manfetch.Request{
		URL:     rawURL,
		Header:  header,
		Timeout: d.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &manfetch.StatusError{Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !manfetch.IsPDF(resp.Body, contentType) {
		return nil, manfetch.Errorf(manfetch.ENOTPDF, "not a PDF (%d bytes, content type %q)", len(resp.Body), contentType)
	}

	finalURL := resp.URL
	if finalURL == "" {
		finalURL = rawURL
	}

	return &manfetch.Download{
		Content:   resp.Body,
		Filename:  Filename(resp.Header.Get("Content-Disposition"), finalURL),
		Size:      len(resp.Body),
		SourceURL: rawURL,
	}, nil
}

// Filename picks a file name for a download: the Content-Disposition
// filename if present and parseable, else the last URL path segment, else
// DefaultFilename. The result always ends in .pdf.
func Filename(contentDisposition, rawURL string) string {
	name := ""
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			name = params["filename"]
		}
	}
	if name == "" {
		if u, err := url.Parse(rawURL); err == nil {
			if base := path.Base(u.Path); base != "/" && base != "." {
				name = base
			}
		}
	}

	name = strings.TrimSpace(path.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "" || name == "." || name == "/" {
		return DefaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
