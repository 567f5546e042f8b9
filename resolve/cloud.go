package resolve

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/manfetch"
)

var _ manfetch.SiteResolver = (*CloudStorage)(nil)

var driveFileRe = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)

// CloudStorage rewrites Google Drive, Dropbox, OneDrive and SharePoint
// share links into direct-download links. It never fetches the page.
type CloudStorage struct{}

func (c *CloudStorage) Name() string { return "cloud-storage" }

func (c *CloudStorage) CanHandle(u *url.URL) bool {
	return cloudProvider(u) != ""
}

func (c *CloudStorage) Resolve(_ context.Context, page *manfetch.Page, _ manfetch.Subject) (string, error) {
	if link := DirectCloudLink(page.URL); link != "" {
		return link, nil
	}
	return "", notFound(c.Name(), page.URL)
}

// DirectCloudLink returns the direct-download form of a cloud share link,
// or "" if the link is not a recognised share.
func DirectCloudLink(u *url.URL) string {
	switch cloudProvider(u) {
	case "drive":
		id := DriveFileID(u)
		if id == "" {
			return ""
		}
		return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(id)
	case "dropbox":
		return withQuery(u, "dl", "1")
	case "onedrive":
		return withQuery(u, "download", "1")
	}
	return ""
}

// DriveFileID extracts the file ID from /file/d/<id>/ paths or id= query
// parameters.
func DriveFileID(u *url.URL) string {
	if m := driveFileRe.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return u.Query().Get("id")
}

func cloudProvider(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "drive.google.com" || host == "docs.google.com":
		return "drive"
	case host == "dropbox.com" || strings.HasSuffix(host, ".dropbox.com"):
		return "dropbox"
	case host == "onedrive.live.com" || host == "1drv.ms" || strings.HasSuffix(host, ".sharepoint.com"):
		return "onedrive"
	}
	return ""
}

func withQuery(u *url.URL, key, value string) string {
	out := *u
	q := out.Query()
	q.Set(key, value)
	out.RawQuery = q.Encode()
	out.Fragment = ""
	return out.String()
}
