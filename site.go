package nps

import (
	"context"
	"fmt"
)

// Site represents one national park site as shown on its nps.gov page.
// Category, City, Region, Zipcode and Phone may be empty.
type Site struct {
	Category string
	Name     string
	City     string
	Region   string
	Zipcode  string
	Phone    string
}

// Address returns "City, Region". Both sides are kept even when empty so
// that the display stays aligned with the page's own address block.
func (s *Site) Address() string {
	return s.City + ", " + s.Region
}

// Info returns the one-line summary used in listings.
func (s *Site) Info() string {
	return fmt.Sprintf("%s (%s): %s %s", s.Name, s.Category, s.Address(), s.Zipcode)
}

// Validate returns an error if the site is missing a required field.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINCOMPLETE, "site name required")
	}
	return nil
}

// DirectoryParser extracts the state directory from the site's front page.
type DirectoryParser interface {
	// ParseDirectory returns a map from lowercased state name to the absolute
	// URL of that state's listing page. Relative links resolve against baseURL.
	ParseDirectory(html string, baseURL string) (map[string]string, error)
}

// ListingParser extracts site locators from a state listing page.
type ListingParser interface {
	// ParseListing returns absolute site URLs in document order.
	// Entries without a resolvable link are skipped.
	ParseListing(html string, baseURL string) ([]string, error)
}

// SiteParser extracts a Site from a site detail page.
type SiteParser interface {
	// ParseSite returns EINCOMPLETE when the name or category is absent.
	// Optional fields that cannot be found are left empty.
	ParseSite(html string) (*Site, error)
}

// SiteService looks up states, sites and nearby places.
type SiteService interface {
	// Directory maps lowercased state names to state listing URLs.
	// It is never cached.
	Directory(ctx context.Context) (map[string]string, error)

	// FetchStateListing returns the sites listed on a state page, in page order.
	FetchStateListing(ctx context.Context, stateURL string) ([]*Site, error)

	// FetchSiteDetail returns the site described by a site page.
	FetchSiteDetail(ctx context.Context, siteURL string) (*Site, error)

	// FetchNearbyPlaces returns places near a postal code.
	// Returns EINVALID for an empty postal code.
	FetchNearbyPlaces(ctx context.Context, zipcode string) (*NearbyPlaces, error)
}
