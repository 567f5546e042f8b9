package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Ensure LoggingCompleter implements manfetch.Completer.
var _ manfetch.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging. Prompts and
// responses are logged by size only.
type LoggingCompleter struct {
	next   manfetch.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next manfetch.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("complete",
			"promptBytes", len(prompt),
			"responseBytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt)
}
