package manfetch

import (
	"context"
	"time"
)

// Entry is a journal record of one acquisition run.
type Entry struct {
	ID          string         `json:"id"`
	Make        string         `json:"make"`
	Model       string         `json:"model"`
	Found       bool           `json:"found"`
	SourceURL   string         `json:"sourceUrl"`
	Filename    string         `json:"filename"`
	Size        int            `json:"size"`
	ContentHash string         `json:"contentHash"`
	Candidates  int            `json:"candidates"`
	Attempts    int            `json:"attempts"`
	Errors      []AttemptError `json:"errors,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewEntry builds a journal entry from an acquisition.
func NewEntry(a *Acquisition) *Entry {
	e := &Entry{
		Make:       a.Subject.Make,
		Model:      a.Subject.Model,
		Candidates: a.Candidates,
		Attempts:   a.Attempts,
		Errors:     a.Errors,
	}
	if a.Download != nil {
		e.Found = true
		e.SourceURL = a.Download.SourceURL
		e.Filename = a.Download.Filename
		e.Size = a.Download.Size
	}
	return e
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Make == "" {
		return Errorf(EINVALID, "entry make required")
	}
	if e.Model == "" {
		return Errorf(EINVALID, "entry model required")
	}
	if e.Found && e.SourceURL == "" {
		return Errorf(EINVALID, "entry source URL required for found manual")
	}
	return nil
}

// Journal records acquisition runs for diagnostics.
// It is never consulted to skip a search.
type Journal interface {
	// RecordEntry stores the entry, assigning ID and CreatedAt.
	RecordEntry(ctx context.Context, entry *Entry, content []byte) error

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	Make  *string `json:"make"`
	Found *bool   `json:"found"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
