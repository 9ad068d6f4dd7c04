package mock

import "github.com/fwojciec/nps"

var _ nps.DirectoryParser = (*DirectoryParser)(nil)

// DirectoryParser is a mock implementation of nps.DirectoryParser.
type DirectoryParser struct {
	ParseDirectoryFn func(html string, baseURL string) (map[string]string, error)
}

func (p *DirectoryParser) ParseDirectory(html string, baseURL string) (map[string]string, error) {
	return p.ParseDirectoryFn(html, baseURL)
}

var _ nps.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of nps.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string, baseURL string) ([]string, error)
}

func (p *ListingParser) ParseListing(html string, baseURL string) ([]string, error) {
	return p.ParseListingFn(html, baseURL)
}

var _ nps.SiteParser = (*SiteParser)(nil)

// SiteParser is a mock implementation of nps.SiteParser.
type SiteParser struct {
	ParseSiteFn func(html string) (*nps.Site, error)
}

func (p *SiteParser) ParseSite(html string) (*nps.Site, error) {
	return p.ParseSiteFn(html)
}
