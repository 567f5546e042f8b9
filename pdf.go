package manfetch

import (
	"bytes"
	"regexp"
	"strings"
)

// MinPDFSize is the smallest body accepted as a manual. Anything shorter is
// an error page or a redirect stub whatever its headers claim.
const MinPDFSize = 1000

// pdfSniffLen is how much of the body is inspected for markers and markup.
const pdfSniffLen = 1024

var (
	pdfMagic   = []byte("%PDF")
	pdfMarkers = [][]byte{
		[]byte("/Type"),
		[]byte("/Catalog"),
		[]byte("/Pages"),
		[]byte("/PDF"),
	}
	markupRe = regexp.MustCompile(`(?s)^<([a-z][a-z0-9]*)\b[^>]*>.*</[a-z][a-z0-9]*\s*>`)
)

// IsPDF reports whether content looks like a real PDF document.
// The result depends only on its arguments.
func IsPDF(content []byte, contentType string) bool {
	if len(content) < MinPDFSize {
		return false
	}
	if bytes.HasPrefix(content, pdfMagic) {
		return true
	}

	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "pdf") {
		return true
	}

	if len(content) == MinPDFSize {
		return false
	}

	head := content[:min(len(content), pdfSniffLen)]
	if strings.Contains(ct, "octet-stream") && hasPDFMarker(head) {
		return true
	}

	return hasPDFMarker(content) && !looksLikeHTML(head)
}

func hasPDFMarker(b []byte) bool {
	for _, m := range pdfMarkers {
		if bytes.Contains(b, m) {
			return true
		}
	}
	return false
}

func looksLikeHTML(head []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(head)))
	if strings.HasPrefix(s, "<html") || strings.HasPrefix(s, "<!doctype") {
		return true
	}
	return markupRe.MatchString(s)
}
