package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/mock"
	"github.com/fwojciec/manfetch/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filesXML = `<?xml version="1.0" encoding="UTF-8"?>
<files>
  <file name="item1_djvu.txt" source="derivative"><format>DjVuTXT</format></file>
  <file name="scan.pdf" source="derivative"><format>Text PDF</format></file>
  <file name="Owner Manual.pdf" source="original"><format>Image Container PDF</format></file>
</files>`

func archiveFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, u string) (string, error) {
			if html, ok := pages[u]; ok {
				return html, nil
			}
			return "", &manfetch.StatusError{Code: 404}
		},
	}
}

func TestArchive_Resolve(t *testing.T) {
	t.Parallel()

	const pageURL = "https://archive.org/details/item1"

	t.Run("prefers embedded download link", func(t *testing.T) {
		t.Parallel()

		f := archiveFetcher(map[string]string{
			pageURL: `<a href="/download/item1/embedded.pdf">PDF</a>`,
		})
		got, err := resolve.NewArchive(f).Resolve(context.Background(), manfetch.NewPage(mustParse(t, pageURL), f), subject)
		require.NoError(t, err)
		assert.Equal(t, "https://archive.org/download/item1/embedded.pdf", got)
	})

	t.Run("reads the file listing", func(t *testing.T) {
		t.Parallel()

		f := archiveFetcher(map[string]string{
			pageURL: `<html>no links</html>`,
			"https://archive.org/download/item1/item1_files.xml": filesXML,
		})
		got, err := resolve.NewArchive(f).Resolve(context.Background(), manfetch.NewPage(mustParse(t, pageURL), f), subject)
		require.NoError(t, err)
		assert.Equal(t, "https://archive.org/download/item1/Owner%20Manual.pdf", got)
	})

	t.Run("falls back to canonical URL", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		got, err := resolve.NewArchive(f).Resolve(context.Background(), manfetch.NewPage(mustParse(t, pageURL), f), subject)
		require.NoError(t, err)
		assert.Equal(t, "https://archive.org/download/item1/item1.pdf", got)
	})

	t.Run("non-item page is not found", func(t *testing.T) {
		t.Parallel()

		f := archiveFetcher(nil)
		u := mustParse(t, "https://archive.org/search?query=manual")
		_, err := resolve.NewArchive(f).Resolve(context.Background(), manfetch.NewPage(u, f), subject)
		assert.Equal(t, manfetch.ENOTFOUND, manfetch.ErrorCode(err))
	})
}

func TestArchiveListedPDF(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Owner Manual.pdf", resolve.ArchiveListedPDF(filesXML))
	assert.Equal(t, "a.pdf", resolve.ArchiveListedPDF(`<files><file name="a.pdf" source="derivative"/></files>`))
	assert.Empty(t, resolve.ArchiveListedPDF(`<files><file name="a.txt"/></files>`))
	assert.Empty(t, resolve.ArchiveListedPDF(`not xml <`))
}

func TestArchiveItemID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "item1", resolve.ArchiveItemID(mustParse(t, "https://archive.org/details/item1")))
	assert.Equal(t, "item1", resolve.ArchiveItemID(mustParse(t, "https://archive.org/download/item1/x.pdf")))
	assert.Empty(t, resolve.ArchiveItemID(mustParse(t, "https://archive.org/search")))
}
