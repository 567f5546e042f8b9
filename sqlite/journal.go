package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/manfetch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ manfetch.Journal = (*Journal)(nil)

// Journal implements manfetch.Journal using SQLite.
type Journal struct {
	db *DB
}

// NewJournal creates a new Journal.
func NewJournal(db *DB) *Journal {
	return &Journal{db: db}
}

// HashContent computes the xxHash of content as a hex string.
func HashContent(content []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(content))
	return hex.EncodeToString(b[:])
}

// RecordEntry stores the entry and its attempt errors. It assigns ID and
// CreatedAt, and computes ContentHash when content is given.
func (j *Journal) RecordEntry(ctx context.Context, entry *manfetch.Entry, content []byte) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC().Truncate(time.Second)
	if len(content) > 0 {
		entry.ContentHash = HashContent(content)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO acquisitions (id, make, model, found, source_url, filename, size, content_hash, candidates, attempts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Make, entry.Model, entry.Found, entry.SourceURL, entry.Filename, entry.Size,
		entry.ContentHash, entry.Candidates, entry.Attempts, entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, e := range entry.Errors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attempt_errors (acquisition_id, position, url, description)
			VALUES (?, ?, ?, ?)
		`, entry.ID, i, e.URL, e.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindEntries retrieves entries matching the filter, newest first.
func (j *Journal) FindEntries(ctx context.Context, filter manfetch.EntryFilter) ([]*manfetch.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, make, model, found, source_url, filename, size, content_hash, candidates, attempts, created_at
		FROM acquisitions WHERE 1=1`)

	if filter.Make != nil {
		query.WriteString(" AND make = ? COLLATE NOCASE")
		args = append(args, *filter.Make)
	}
	if filter.Found != nil {
		query.WriteString(" AND found = ?")
		args = append(args, *filter.Found)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := j.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*manfetch.Entry
	for rows.Next() {
		var e manfetch.Entry
		var createdAt string

		if err := rows.Scan(&e.ID, &e.Make, &e.Model, &e.Found, &e.SourceURL, &e.Filename, &e.Size,
			&e.ContentHash, &e.Candidates, &e.Attempts, &createdAt); err != nil {
			return nil, err
		}

		if e.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, e := range entries {
		if e.Errors, err = j.findErrors(ctx, e.ID); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (j *Journal) findErrors(ctx context.Context, id string) ([]manfetch.AttemptError, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT url, description FROM attempt_errors
		WHERE acquisition_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt errors: %w", err)
	}
	defer rows.Close()

	var errs []manfetch.AttemptError
	for rows.Next() {
		var e manfetch.AttemptError
		if err := rows.Scan(&e.URL, &e.Description); err != nil {
			return nil, err
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}
