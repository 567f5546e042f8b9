package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Ensure LoggingDownloader implements manfetch.Downloader.
var _ manfetch.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   manfetch.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next manfetch.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (dl *manfetch.Download, err error) {
	defer func(begin time.Time) {
		size := 0
		if dl != nil {
			size = dl.Size
		}
		d.logger.Info("download",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}
