package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Ensure LoggingSource implements manfetch.CandidateSource.
var _ manfetch.CandidateSource = (*LoggingSource)(nil)

// LoggingSource wraps a CandidateSource with logging.
type LoggingSource struct {
	next   manfetch.CandidateSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next manfetch.CandidateSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Strategy delegates to the wrapped source.
func (s *LoggingSource) Strategy() manfetch.Strategy {
	return s.next.Strategy()
}

// Candidates delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Candidates(ctx context.Context, subject manfetch.Subject) (res *manfetch.SourceResult, err error) {
	defer func(begin time.Time) {
		var urls, links int
		if res != nil {
			urls, links = len(res.URLs), len(res.SearchLinks)
		}
		s.logger.Info("candidates",
			"strategy", s.next.Strategy(),
			"subject", subject.String(),
			"count", urls,
			"searchLinks", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Candidates(ctx, subject)
}
