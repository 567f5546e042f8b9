package manfetch_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/manfetch"
	"github.com/stretchr/testify/assert"
)

// pad returns prefix followed by filler up to n bytes.
func pad(prefix string, n int) []byte {
	b := []byte(prefix)
	if len(b) >= n {
		return b
	}
	return append(b, bytes.Repeat([]byte(" "), n-len(b))...)
}

func TestIsPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     []byte
		contentType string
		want        bool
	}{
		{"magic bytes", pad("%PDF-1.7\n", 2000), "", true},
		{"magic bytes ignore html header", pad("%PDF-1.4", 2000), "text/html", true},
		{"magic bytes at floor", pad("%PDF-1.4", 1000), "", true},
		{"magic bytes below floor", pad("%PDF-1.4", 999), "application/pdf", false},
		{"pdf content type", pad("garbage", 1500), "application/pdf", true},
		{"pdf content type mixed case", pad("garbage", 1500), "Application/PDF; charset=binary", true},
		{"pdf content type below floor", pad("garbage", 500), "application/pdf", false},
		{"octet stream with marker", pad("\x00\x01 /Type /Catalog", 1500), "application/octet-stream", true},
		{"octet stream without marker", pad("\x00\x01 binary", 1500), "application/octet-stream", false},
		{"octet stream at floor", pad("/Type /Catalog", 1000), "application/octet-stream", false},
		{"marker without header", pad("junk /Pages 3 0 R", 1500), "", true},
		{"html with marker", pad("<html><body>/Type /Pages</body></html>", 1500), "", false},
		{"doctype with marker", pad("<!DOCTYPE html><p>/PDF</p>", 1500), "", false},
		{"generic markup with marker", pad("<div>see /Catalog</div>", 1500), "", false},
		{"html page", pad("<html><body>Not found</body></html>", 3000), "text/html", false},
		{"empty", nil, "application/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, manfetch.IsPDF(tt.content, tt.contentType))
		})
	}
}

func TestIsPDF_Deterministic(t *testing.T) {
	t.Parallel()

	content := pad("prefix /Type "+strings.Repeat("x", 10), 4096)
	first := manfetch.IsPDF(content, "application/octet-stream")
	for range 5 {
		assert.Equal(t, first, manfetch.IsPDF(content, "application/octet-stream"))
	}
}

func TestIsPDF_MarkerBeyondSniffWindow(t *testing.T) {
	t.Parallel()

	// Octet-stream only inspects the first KB, the markup-free rule inspects everything.
	content := append(bytes.Repeat([]byte("a"), 2048), []byte("/Catalog")...)

	assert.True(t, manfetch.IsPDF(content, "application/octet-stream"))
	assert.True(t, manfetch.IsPDF(content, ""))
}
