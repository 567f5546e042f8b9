// Package search generates and ranks candidate manual URLs.
package search

import (
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/manfetch"
	"go.yaml.in/yaml/v3"
)

// Brand is a known manufacturer with its support-site URL templates.
// Templates may contain {make}, {model}, {model_lower} and {query}
// placeholders.
type Brand struct {
	// Key is matched case-insensitively as a substring of the make.
	Key       string   `yaml:"key"`
	Domain    string   `yaml:"domain"`
	Templates []string `yaml:"templates"`
}

// RepositoryTemplates are manual-repository URL templates applied to every
// subject.
var RepositoryTemplates = []string{
	"https://www.manualslib.com/search/?q={query}",
	"https://manualzz.com/search?q={query}",
}

// RepositoryDomains are the registrable domains of manual repositories.
var RepositoryDomains = []string{
	"manualslib.com",
	"manualzz.com",
	"manualsonline.com",
	"manua.ls",
	"manualsdir.com",
	"archive.org",
}

// DefaultBrands is the built-in brand table. Order matters: the first key
// found in the make wins.
var DefaultBrands = []Brand{
	{Key: "samsung", Domain: "samsung.com", Templates: []string{"https://www.samsung.com/us/support/owners/product/{model_lower}/"}},
	{Key: "whirlpool", Domain: "whirlpool.com", Templates: []string{"https://www.whirlpool.com/owners-center-pdp.{model}.html"}},
	{Key: "kitchenaid", Domain: "kitchenaid.com", Templates: []string{"https://www.kitchenaid.com/owners-center-pdp.{model}.html"}},
	{Key: "maytag", Domain: "maytag.com", Templates: []string{"https://www.maytag.com/owners-center-pdp.{model}.html"}},
	{Key: "frigidaire", Domain: "frigidaire.com", Templates: []string{"https://www.frigidaire.com/en/p/owner-center/product-support/{model}"}},
	{Key: "electrolux", Domain: "electrolux.com", Templates: []string{"https://www.electrolux.com/support/product/{model}/"}},
	{Key: "bosch", Domain: "bosch-home.com", Templates: []string{"https://www.bosch-home.com/us/productslist/{model}#/Tabs=section-manuals/"}},
	{Key: "panasonic", Domain: "panasonic.com", Templates: []string{"https://help.na.panasonic.com/search/?q={model}"}},
	{Key: "sony", Domain: "sony.com", Templates: []string{"https://www.sony.com/electronics/support/search/{model}"}},
	{Key: "dyson", Domain: "dyson.com", Templates: []string{"https://www.dyson.com/support/journey/{model_lower}"}},
	{Key: "lg", Domain: "lg.com", Templates: []string{"https://www.lg.com/us/support/product/{model}"}},
	{Key: "ge", Domain: "geappliances.com", Templates: []string{"https://www.geappliances.com/ge/service-and-support/literature.htm?modelNumber={model}"}},
}

// LookupBrand returns the first brand whose key appears in makeName.
func LookupBrand(brands []Brand, makeName string) (Brand, bool) {
	m := strings.ToLower(strings.TrimSpace(makeName))
	if m == "" {
		return Brand{}, false
	}
	for _, b := range brands {
		if b.Key != "" && strings.Contains(m, strings.ToLower(b.Key)) {
			return b, true
		}
	}
	return Brand{}, false
}

// LoadBrands reads a YAML list of brands.
func LoadBrands(r io.Reader) ([]Brand, error) {
	var brands []Brand
	if err := yaml.NewDecoder(r).Decode(&brands); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, manfetch.Errorf(manfetch.EINVALID, "invalid brands file: %v", err)
	}
	for i, b := range brands {
		if strings.TrimSpace(b.Key) == "" {
			return nil, manfetch.Errorf(manfetch.EINVALID, "brand %d: key required", i+1)
		}
	}
	return brands, nil
}

// MergeBrands returns overrides followed by the defaults, so override keys
// are matched first.
func MergeBrands(overrides, defaults []Brand) []Brand {
	out := make([]Brand, 0, len(overrides)+len(defaults))
	out = append(out, overrides...)
	return append(out, defaults...)
}

// Expand substitutes the subject into a URL template.
func Expand(template string, subject manfetch.Subject) string {
	brand := strings.TrimSpace(subject.Make)
	model := strings.TrimSpace(subject.Model)
	r := strings.NewReplacer(
		"{make}", url.PathEscape(brand),
		"{make_lower}", url.PathEscape(strings.ToLower(brand)),
		"{model}", url.PathEscape(model),
		"{model_lower}", url.PathEscape(strings.ToLower(model)),
		"{query}", url.QueryEscape(brand+" "+model),
	)
	return r.Replace(template)
}
