package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/manfetch"
)

var _ manfetch.SiteResolver = (*Archive)(nil)

// ArchiveBaseURL is the download root of the archive mirror.
const ArchiveBaseURL = "https://archive.org"

// Archive resolves archive.org item pages. It looks for an embedded PDF
// download link, then the item's file listing, and finally guesses the
// canonical download/<item>/<item>.pdf URL.
type Archive struct {
	fetcher manfetch.Fetcher
}

// NewArchive creates an Archive strategy that reads file listings with
// fetcher. A nil fetcher skips the listing step.
func NewArchive(fetcher manfetch.Fetcher) *Archive {
	return &Archive{fetcher: fetcher}
}

func (a *Archive) Name() string { return "archive" }

func (a *Archive) CanHandle(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	return host == "archive.org" || strings.HasSuffix(host, ".archive.org")
}

func (a *Archive) Resolve(ctx context.Context, page *manfetch.Page, _ manfetch.Subject) (string, error) {
	if html, err := page.HTML(ctx); err == nil {
		if links := ArchiveEmbeddedLinks(html, page.URL); len(links) > 0 {
			return links[0], nil
		}
	}

	id := ArchiveItemID(page.URL)
	if id == "" {
		return "", notFound(a.Name(), page.URL)
	}

	if name := a.listedPDF(ctx, id); name != "" {
		return archiveDownloadURL(id, name), nil
	}

	return archiveDownloadURL(id, id+".pdf"), nil
}

// listedPDF returns the name of the first PDF in the item's file listing,
// preferring original uploads over derived files.
func (a *Archive) listedPDF(ctx context.Context, id string) string {
	if a.fetcher == nil {
		return ""
	}
	listing, err := a.fetcher.Fetch(ctx, archiveDownloadURL(id, id+"_files.xml"))
	if err != nil {
		return ""
	}
	return ArchiveListedPDF(listing)
}

// ArchiveListedPDF parses an <item>_files.xml listing and returns the name
// of its PDF file, preferring source="original". Returns "" if none.
func ArchiveListedPDF(listing string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(listing); err != nil {
		return ""
	}
	root := doc.Root()
	if root == nil {
		return ""
	}

	var derived string
	for _, file := range root.SelectElements("file") {
		name := strings.TrimSpace(file.SelectAttrValue("name", ""))
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		if file.SelectAttrValue("source", "") == "original" {
			return name
		}
		if derived == "" {
			derived = name
		}
	}
	return derived
}

// ArchiveItemID extracts the item identifier from /details/<id> and
// /download/<id> paths.
func ArchiveItemID(u *url.URL) string {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "details", "download", "stream", "embed":
		return parts[1]
	}
	return ""
}

func archiveDownloadURL(id, name string) string {
	return ArchiveBaseURL + "/download/" + url.PathEscape(id) + "/" + escapePath(name)
}

// escapePath escapes each segment of a slash-separated file name.
func escapePath(name string) string {
	segs := strings.Split(name, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
