package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Ensure LoggingResolver implements manfetch.PageResolver.
var _ manfetch.PageResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a PageResolver with debug logging.
type LoggingResolver struct {
	next   manfetch.PageResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next manfetch.PageResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// ResolvePage delegates to the wrapped resolver and logs the operation.
func (r *LoggingResolver) ResolvePage(ctx context.Context, pageURL string, subject manfetch.Subject) (pdfURL string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("resolve",
			"url", pageURL,
			"pdf", pdfURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolvePage(ctx, pageURL, subject)
}
