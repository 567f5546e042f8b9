package mock

import (
	"context"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of manfetch.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) (*manfetch.Download, error)
}

func (d *Downloader) Download(ctx context.Context, url string) (*manfetch.Download, error) {
	return d.DownloadFn(ctx, url)
}

var _ manfetch.ManualWriter = (*ManualWriter)(nil)

// ManualWriter is a mock implementation of manfetch.ManualWriter.
type ManualWriter struct {
	WriteManualFn func(ctx context.Context, dl *manfetch.Download) (string, error)
}

func (w *ManualWriter) WriteManual(ctx context.Context, dl *manfetch.Download) (string, error) {
	return w.WriteManualFn(ctx, dl)
}

var _ manfetch.Acquirer = (*Acquirer)(nil)

// Acquirer is a mock implementation of manfetch.Acquirer.
type Acquirer struct {
	AcquireFn func(ctx context.Context, subject manfetch.Subject) (*manfetch.Acquisition, error)
}

func (a *Acquirer) Acquire(ctx context.Context, subject manfetch.Subject) (*manfetch.Acquisition, error) {
	return a.AcquireFn(ctx, subject)
}

var _ manfetch.Journal = (*Journal)(nil)

// Journal is a mock implementation of manfetch.Journal.
type Journal struct {
	RecordEntryFn func(ctx context.Context, entry *manfetch.Entry, content []byte) error
	FindEntriesFn func(ctx context.Context, filter manfetch.EntryFilter) ([]*manfetch.Entry, error)
}

func (j *Journal) RecordEntry(ctx context.Context, entry *manfetch.Entry, content []byte) error {
	return j.RecordEntryFn(ctx, entry, content)
}

func (j *Journal) FindEntries(ctx context.Context, filter manfetch.EntryFilter) ([]*manfetch.Entry, error) {
	return j.FindEntriesFn(ctx, filter)
}
