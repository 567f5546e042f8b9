package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/mock"
	manslog "github.com/fwojciec/manfetch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSource_Candidates(t *testing.T) {
	t.Parallel()

	subject := manfetch.Subject{Make: "Samsung", Model: "RF28"}

	t.Run("logs strategy and counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CandidateSource{
			StrategyFn: func() manfetch.Strategy { return manfetch.StrategySearchEngine },
			CandidatesFn: func(ctx context.Context, s manfetch.Subject) (*manfetch.SourceResult, error) {
				return &manfetch.SourceResult{SearchLinks: make([]manfetch.SearchLink, 3)}, nil
			},
		}

		src := manslog.NewLoggingSource(inner, logger)
		res, err := src.Candidates(context.Background(), subject)

		require.NoError(t, err)
		assert.Len(t, res.SearchLinks, 3)
		assert.Equal(t, manfetch.StrategySearchEngine, src.Strategy())
		output := buf.String()
		assert.Contains(t, output, "msg=candidates")
		assert.Contains(t, output, "strategy=search-engine")
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, "searchLinks=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CandidateSource{
			StrategyFn: func() manfetch.Strategy { return manfetch.StrategyAI },
			CandidatesFn: func(ctx context.Context, s manfetch.Subject) (*manfetch.SourceResult, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := manslog.NewLoggingSource(inner, logger).Candidates(context.Background(), subject)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}
