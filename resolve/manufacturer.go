package resolve

import (
	"context"
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/goquery"
	"golang.org/x/net/publicsuffix"
)

var _ manfetch.SiteResolver = (*Manufacturer)(nil)

// DefaultManufacturerDomains returns the registrable domains of known
// manufacturer support sites.
func DefaultManufacturerDomains() []string {
	return []string{
		"samsung.com",
		"lg.com",
		"whirlpool.com",
		"geappliances.com",
		"bosch-home.com",
		"frigidaire.com",
		"electrolux.com",
		"maytag.com",
		"kitchenaid.com",
		"sony.com",
		"panasonic.com",
		"dyson.com",
		"philips.com",
		"miele.com",
		"haier.com",
	}
}

// Manufacturer extracts manual links from manufacturer support pages:
// manual-labelled PDF anchors, data-href style attributes, and PDF links
// near the model number.
type Manufacturer struct {
	domains map[string]bool
}

// NewManufacturer creates a Manufacturer strategy for the given
// registrable domains.
func NewManufacturer(domains ...string) *Manufacturer {
	m := &Manufacturer{domains: make(map[string]bool, len(domains))}
	for _, d := range domains {
		m.domains[strings.ToLower(d)] = true
	}
	return m
}

func (m *Manufacturer) Name() string { return "manufacturer" }

func (m *Manufacturer) CanHandle(u *url.URL) bool {
	return m.domains[registrableDomain(u.Hostname())]
}

func (m *Manufacturer) Resolve(ctx context.Context, page *manfetch.Page, subject manfetch.Subject) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}
	doc, err := goquery.Parse(html, page.URL.String())
	if err != nil {
		return "", err
	}

	for _, l := range doc.LabelledAnchors("manual", "owner", "guide") {
		if goquery.IsPDFURL(l.URL) {
			return l.URL, nil
		}
	}
	if links := doc.DataAttributePDFs("data-href", "data-url", "data-pdf", "data-link"); len(links) > 0 {
		return links[0].URL, nil
	}
	if links := ModelAdjacentPDFs(html, subject.Model, page.URL); len(links) > 0 {
		return links[0], nil
	}

	return "", notFound(m.Name(), page.URL)
}

// registrableDomain returns the eTLD+1 of host, or the host itself for IPs
// and hosts the public suffix list does not cover.
func registrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if net.ParseIP(host) != nil {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}
