package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/manfetch"
)

// resultSelectors match result links on DuckDuckGo's HTML endpoint.
const resultSelectors = "a.result__a, a.result__url, .result__title a"

// SearchResultLinks extracts result URLs from a DuckDuckGo HTML results
// page, unwrapping its /l/?uddg= redirect links.
func SearchResultLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, manfetch.Errorf(manfetch.EINVALID, "failed to parse HTML: %v", err)
	}

	var urls []string
	seen := make(map[string]bool)

	doc.Find(resultSelectors).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		target := unwrapRedirect(href)
		if target == "" || seen[target] {
			return
		}
		seen[target] = true
		urls = append(urls, target)
	})

	return urls, nil
}

// unwrapRedirect returns the destination of a search-engine redirect link,
// or the link itself when it is already a direct http(s) URL.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return AbsoluteURL(nil, target)
	}
	if !u.IsAbs() {
		return ""
	}
	return AbsoluteURL(nil, href)
}
