// Package goquery provides goquery-based parsers for nps.gov pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nps"
)

// Selectors for the nps.gov page structure.
const (
	DirectorySelector = ".SearchBar-keywordSearch a[href]"
	ListingSelector   = "h3"
	NameSelector      = ".Hero-titleContainer a"
	CategorySelector  = ".Hero-designation"
	CitySelector      = "[itemprop='addressLocality']"
	RegionSelector    = "[itemprop='addressRegion']"
	ZipcodeSelector   = "[itemprop='postalCode']"
	PhoneSelector     = ".tel"
)

var (
	_ nps.DirectoryParser = (*Parser)(nil)
	_ nps.ListingParser   = (*Parser)(nil)
	_ nps.SiteParser      = (*Parser)(nil)
)

// Parser extracts directory, listing and site data from nps.gov HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseDirectory returns lowercased state names mapped to absolute state
// page URLs. Anchors with an empty name or unusable href are skipped.
func (p *Parser) ParseDirectory(html string, baseURL string) (map[string]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nps.Errorf(nps.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	states := make(map[string]string)
	doc.Find(DirectorySelector).Each(func(_ int, sel *goquery.Selection) {
		name := strings.ToLower(text(sel))
		if name == "" {
			return
		}
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		states[name] = resolved
	})
	return states, nil
}

// ParseListing returns the URL of the first link inside each h3 heading,
// in document order. Headings without a usable link are skipped.
func (p *Parser) ParseListing(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nps.Errorf(nps.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	sites := []string{}
	doc.Find(ListingSelector).Each(func(_ int, h3 *goquery.Selection) {
		a := h3.Find("a").First()
		if a.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		sites = append(sites, resolved)
	})
	return sites, nil
}

// ParseSite extracts a site from its detail page. The name and category
// elements are required; every other field falls back to "" on its own.
func (p *Parser) ParseSite(html string) (*nps.Site, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	name, ok := field(doc, NameSelector)
	if !ok || name == "" {
		return nil, nps.Errorf(nps.EINCOMPLETE, "site page has no name")
	}
	category, ok := field(doc, CategorySelector)
	if !ok {
		return nil, nps.Errorf(nps.EINCOMPLETE, "site page %q has no category", name)
	}

	return &nps.Site{
		Category: category,
		Name:     name,
		City:     optional(doc, CitySelector),
		Region:   optional(doc, RegionSelector),
		Zipcode:  optional(doc, ZipcodeSelector),
		Phone:    optional(doc, PhoneSelector),
	}, nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nps.Errorf(nps.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// field returns the normalized text of the first match and whether the
// element exists at all.
func field(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return text(sel), true
}

func optional(doc *goquery.Document, selector string) string {
	s, _ := field(doc, selector)
	return s
}

// text returns the selection's text with runs of whitespace collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string for empty, unparseable or non-HTTP links.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
