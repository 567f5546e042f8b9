package acquire_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/acquire"
	manhttp "github.com/fwojciec/manfetch/http"
	"github.com/fwojciec/manfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n" + strings.Repeat("0", 2000))
}

func pdfResponse(url string) *manfetch.Response {
	return &manfetch.Response{
		URL:        url,
		StatusCode: 200,
		Header:     http.Header{"Content-Type": []string{"application/pdf"}},
		Body:       pdfBytes(),
	}
}

// recorder captures sleeps instead of waiting.
type recorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *recorder) Sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sleeps = append(r.sleeps, d)
	return nil
}

func newDownloader(tr manfetch.Transport, rec *recorder) *acquire.Downloader {
	d := acquire.NewDownloader(tr)
	d.Sleep = rec.Sleep
	return d
}

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	const target = "https://example.com/files/manual.pdf"

	t.Run("returns validated download", func(t *testing.T) {
		t.Parallel()

		tr := &mock.Transport{
			GetFn: func(_ context.Context, req *manfetch.Request) (*manfetch.Response, error) {
				assert.Equal(t, target, req.URL)
				assert.Contains(t, req.Header.Get("Accept"), "application/pdf")
				assert.Equal(t, acquire.DefaultDownloadTimeout, req.Timeout)
				return pdfResponse(target), nil
			},
		}

		dl, err := newDownloader(tr, &recorder{}).Download(context.Background(), target)
		require.NoError(t, err)
		assert.Equal(t, "manual.pdf", dl.Filename)
		assert.Equal(t, len(pdfBytes()), dl.Size)
		assert.Equal(t, target, dl.SourceURL)
		assert.Equal(t, pdfBytes(), dl.Content)
	})

	t.Run("transient failure then success takes two attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				calls++
				if calls == 1 {
					return nil, errors.New("request timeout: context deadline exceeded")
				}
				return pdfResponse(target), nil
			},
		}
		rec := &recorder{}
		var logged []string
		d := newDownloader(tr, rec)
		d.Log = func(format string, args ...any) {
			logged = append(logged, format)
		}

		dl, err := d.Download(context.Background(), target)
		require.NoError(t, err)
		assert.NotNil(t, dl)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []time.Duration{time.Second}, rec.sleeps)
		assert.Len(t, logged, 1)
	})

	t.Run("html is rejected without retry", func(t *testing.T) {
		t.Parallel()

		calls := 0
		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				calls++
				return &manfetch.Response{
					StatusCode: 200,
					Header:     http.Header{"Content-Type": []string{"text/html"}},
					Body:       []byte("<html>" + strings.Repeat("<p>not found</p>", 100) + "</html>"),
				}, nil
			},
		}
		rec := &recorder{}

		dl, err := newDownloader(tr, rec).Download(context.Background(), target)
		assert.Nil(t, dl)
		assert.Equal(t, manfetch.ENOTPDF, manfetch.ErrorCode(err))
		assert.Equal(t, 1, calls)
		assert.Empty(t, rec.sleeps)
	})

	t.Run("server errors stop after three attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				calls++
				return &manfetch.Response{StatusCode: 503}, nil
			},
		}
		rec := &recorder{}

		dl, err := newDownloader(tr, rec).Download(context.Background(), target)
		assert.Nil(t, dl)
		assert.Equal(t, 503, manfetch.StatusCode(err))
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.sleeps)
	})

	t.Run("not found is permanent", func(t *testing.T) {
		t.Parallel()

		calls := 0
		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				calls++
				return &manfetch.Response{StatusCode: 404}, nil
			},
		}
		rec := &recorder{}

		_, err := newDownloader(tr, rec).Download(context.Background(), target)
		assert.Equal(t, 404, manfetch.StatusCode(err))
		assert.Equal(t, 1, calls)
		assert.Empty(t, rec.sleeps)
	})

	t.Run("cancellation during backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				return nil, errors.New("connection reset by peer")
			},
		}
		d := acquire.NewDownloader(tr)
		d.Sleep = func(ctx context.Context, d time.Duration) error {
			cancel()
			return acquire.Sleep(ctx, d)
		}

		_, err := d.Download(ctx, target)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("names file from content disposition", func(t *testing.T) {
		t.Parallel()

		tr := &mock.Transport{
			GetFn: func(context.Context, *manfetch.Request) (*manfetch.Response, error) {
				resp := pdfResponse("https://cdn.example.com/dl?id=1")
				resp.Header.Set("Content-Disposition", `attachment; filename="RF28 Owner Guide.pdf"`)
				return resp, nil
			},
		}

		dl, err := newDownloader(tr, &recorder{}).Download(context.Background(), "https://example.com/get")
		require.NoError(t, err)
		assert.Equal(t, "RF28 Owner Guide.pdf", dl.Filename)
		assert.Equal(t, "https://example.com/get", dl.SourceURL)
	})
}

func TestDownloader_OverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/files/rf28.pdf", http.StatusFound)
		case "/files/rf28.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(pdfBytes())
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	d := newDownloader(manhttp.NewClient(), &recorder{})

	t.Run("follows redirects", func(t *testing.T) {
		t.Parallel()

		dl, err := d.Download(context.Background(), srv.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, "rf28.pdf", dl.Filename)
		assert.Equal(t, srv.URL+"/old", dl.SourceURL)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := d.Download(context.Background(), srv.URL+"/nope.pdf")
		assert.Equal(t, 404, manfetch.StatusCode(err))
	})

	t.Run("oversized body is rejected without retry", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		small := newDownloader(manhttp.NewClient(manhttp.WithMaxBodySize(1500)), rec)

		dl, err := small.Download(context.Background(), srv.URL+"/files/rf28.pdf")

		assert.Nil(t, dl)
		assert.Equal(t, manfetch.EINVALID, manfetch.ErrorCode(err))
		assert.Empty(t, rec.sleeps)
	})
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		disposition string
		url         string
		want        string
	}{
		{"quoted filename", `attachment; filename="Owner Guide.pdf"`, "https://x.com/a", "Owner Guide.pdf"},
		{"adds extension", `attachment; filename=guide`, "https://x.com/a", "guide.pdf"},
		{"extended filename", `attachment; filename*=UTF-8''manual%20v2.pdf`, "https://x.com/a", "manual v2.pdf"},
		{"strips directories", `attachment; filename="../../etc/passwd"`, "https://x.com/a", "passwd.pdf"},
		{"unparseable header uses URL", `attachment; filename=`, "https://x.com/files/RF28.PDF", "RF28.PDF"},
		{"url segment", "", "https://x.com/files/RF28.PDF", "RF28.PDF"},
		{"url segment without extension", "", "https://x.com/download?id=1", "download.pdf"},
		{"root path", "", "https://x.com/", "manual.pdf"},
		{"no path", "", "https://x.com", "manual.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, acquire.Filename(tt.disposition, tt.url))
		})
	}
}

func TestBackoffDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, acquire.DefaultRetryDelays())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, acquire.BackoffDelays(4, time.Second))
	assert.Nil(t, acquire.BackoffDelays(1, time.Second))
}

func TestSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, acquire.Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, acquire.Sleep(context.Background(), time.Millisecond))
}
