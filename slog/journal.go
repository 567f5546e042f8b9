package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Ensure LoggingJournal implements manfetch.Journal.
var _ manfetch.Journal = (*LoggingJournal)(nil)

// LoggingJournal wraps a Journal with debug logging.
type LoggingJournal struct {
	next   manfetch.Journal
	logger *slog.Logger
}

// NewLoggingJournal creates a new LoggingJournal.
func NewLoggingJournal(next manfetch.Journal, logger *slog.Logger) *LoggingJournal {
	return &LoggingJournal{next: next, logger: logger}
}

// RecordEntry delegates to the wrapped journal and logs the operation.
func (j *LoggingJournal) RecordEntry(ctx context.Context, entry *manfetch.Entry, content []byte) (err error) {
	defer func(begin time.Time) {
		j.logger.Debug("journal record",
			"id", entry.ID,
			"make", entry.Make,
			"model", entry.Model,
			"found", entry.Found,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return j.next.RecordEntry(ctx, entry, content)
}

// FindEntries delegates to the wrapped journal and logs the operation.
func (j *LoggingJournal) FindEntries(ctx context.Context, filter manfetch.EntryFilter) (entries []*manfetch.Entry, err error) {
	defer func(begin time.Time) {
		j.logger.Debug("journal find",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return j.next.FindEntries(ctx, filter)
}
