package manfetch

import "context"

// Download is a successfully retrieved manual.
// Content always satisfies IsPDF.
type Download struct {
	Content   []byte
	Filename  string
	Size      int
	SourceURL string
}

// Downloader fetches a URL and returns its content if it is a PDF.
type Downloader interface {
	// Download fetches the URL with retry on transient failures.
	// Content that fails validation returns ENOTPDF without retrying.
	Download(ctx context.Context, url string) (*Download, error)
}

// ManualWriter persists a downloaded manual.
type ManualWriter interface {
	// WriteManual stores the download and returns where it was written.
	WriteManual(ctx context.Context, dl *Download) (string, error)
}
