// Package fs provides file-based storage for downloaded manuals.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/manfetch"
)

// Ensure Writer implements manfetch.ManualWriter at compile time.
var _ manfetch.ManualWriter = (*Writer)(nil)

// DefaultFilename is used when a download carries no usable name.
const DefaultFilename = "manual.pdf"

// SanitizeFilename reduces name to a safe base name ending in .pdf.
// Path separators, control characters and characters reserved on common
// filesystems are replaced with '_'.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	clean := strings.Trim(b.String(), ". ")
	if clean == "" {
		return DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(clean), ".pdf") {
		clean += ".pdf"
	}
	return clean
}

// Writer writes manuals as PDF files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteManual writes the download to disk and returns the file path.
// Content is written to a temporary file in the target directory and
// renamed into place, so readers never observe a partial file.
func (w *Writer) WriteManual(ctx context.Context, dl *manfetch.Download) (string, error) {
	if dl == nil || len(dl.Content) == 0 {
		return "", manfetch.Errorf(manfetch.EINVALID, "download content required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, SanitizeFilename(dl.Filename))

	tmp, err := os.CreateTemp(w.baseDir, ".manfetch-*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(dl.Content); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}
