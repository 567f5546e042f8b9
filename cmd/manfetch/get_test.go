package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/manfetch"
	main "github.com/fwojciec/manfetch/cmd/manfetch"
	"github.com/fwojciec/manfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetCmd_Run(t *testing.T) {
	t.Parallel()

	download := &manfetch.Download{
		Content:   []byte("%PDF-1.7"),
		Filename:  "rf28.pdf",
		Size:      8,
		SourceURL: "https://example.com/rf28.pdf",
	}

	t.Run("writes manual and records journal entry", func(t *testing.T) {
		t.Parallel()

		var recorded *manfetch.Entry
		var recordedContent []byte
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: discardLogger(),
			Acquirer: &mock.Acquirer{
				AcquireFn: func(_ context.Context, s manfetch.Subject) (*manfetch.Acquisition, error) {
					return &manfetch.Acquisition{Subject: s, Download: download, Candidates: 3, Attempts: 2}, nil
				},
			},
			Writer: &mock.ManualWriter{
				WriteManualFn: func(_ context.Context, dl *manfetch.Download) (string, error) {
					return "/out/" + dl.Filename, nil
				},
			},
			Journal: &mock.Journal{
				RecordEntryFn: func(_ context.Context, e *manfetch.Entry, content []byte) error {
					recorded = e
					recordedContent = content
					return nil
				},
			},
		}

		cmd := &main.GetCmd{Make: "Samsung", Model: "RF28R7351SG", Output: "/out"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "/out/rf28.pdf")
		assert.Contains(t, stdout.String(), "8 bytes")
		assert.Contains(t, stdout.String(), "https://example.com/rf28.pdf")
		require.NotNil(t, recorded)
		assert.True(t, recorded.Found)
		assert.Equal(t, "Samsung", recorded.Make)
		assert.Equal(t, download.Content, recordedContent)
	})

	t.Run("reports errors when nothing is found", func(t *testing.T) {
		t.Parallel()

		var errs []manfetch.AttemptError
		for range 12 {
			errs = append(errs, manfetch.AttemptError{URL: "https://example.com/x.pdf", Description: "HTTP 404"})
		}
		errs[10].Description = "eleventh"

		var recorded *manfetch.Entry
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: discardLogger(),
			Acquirer: &mock.Acquirer{
				AcquireFn: func(_ context.Context, s manfetch.Subject) (*manfetch.Acquisition, error) {
					return &manfetch.Acquisition{Subject: s, Candidates: 5, Attempts: 12, Errors: errs}, nil
				},
			},
			Writer: &mock.ManualWriter{
				WriteManualFn: func(context.Context, *manfetch.Download) (string, error) {
					t.Fatal("writer must not be called")
					return "", nil
				},
			},
			Journal: &mock.Journal{
				RecordEntryFn: func(_ context.Context, e *manfetch.Entry, _ []byte) error {
					recorded = e
					return nil
				},
			},
		}

		err := (&main.GetCmd{Make: "Samsung", Model: "RF28R7351SG"}).Run(deps)

		assert.Equal(t, manfetch.ENOTFOUND, manfetch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "No manual found for Samsung RF28R7351SG")
		assert.Equal(t, 10, bytes.Count(stderr.Bytes(), []byte("https://example.com/x.pdf")))
		assert.NotContains(t, stderr.String(), "eleventh")
		require.NotNil(t, recorded)
		assert.False(t, recorded.Found)
	})

	t.Run("journal failure does not fail the command", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Logger: discardLogger(),
			Acquirer: &mock.Acquirer{
				AcquireFn: func(_ context.Context, s manfetch.Subject) (*manfetch.Acquisition, error) {
					return &manfetch.Acquisition{Subject: s, Download: download}, nil
				},
			},
			Writer: &mock.ManualWriter{
				WriteManualFn: func(context.Context, *manfetch.Download) (string, error) {
					return "/out/rf28.pdf", nil
				},
			},
			Journal: &mock.Journal{
				RecordEntryFn: func(context.Context, *manfetch.Entry, []byte) error {
					return errors.New("disk full")
				},
			},
		}

		assert.NoError(t, (&main.GetCmd{Make: "Samsung", Model: "RF28R7351SG"}).Run(deps))
	})

	t.Run("returns invalid input error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: discardLogger(),
			Acquirer: &mock.Acquirer{
				AcquireFn: func(_ context.Context, s manfetch.Subject) (*manfetch.Acquisition, error) {
					return nil, s.Validate()
				},
			},
		}

		err := (&main.GetCmd{Make: "Samsung", Model: " "}).Run(deps)

		assert.Equal(t, manfetch.EINVALID, manfetch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "model required")
	})
}
