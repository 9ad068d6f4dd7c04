// Package scrape provides the cache-backed lookup pipeline for national
// park sites. It resolves the state directory, state listings, site details
// and nearby places, memoizing every fetched resource in an nps.CacheStore.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/fwojciec/nps"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the root of the site listing source.
const DefaultBaseURL = "https://www.nps.gov"

var _ nps.SiteService = (*Scraper)(nil)

// Scraper implements nps.SiteService.
//
// The state directory is fetched live on every call. State listings are
// cached by state URL as an ordered list of site URLs, site details by site
// URL, and nearby places by postal code. Failed fetches are never cached.
type Scraper struct {
	BaseURL     string
	Fetcher     nps.Fetcher
	Directories nps.DirectoryParser
	Listings    nps.ListingParser
	Sites       nps.SiteParser
	Places      nps.PlacesClient
	Cache       nps.CacheStore
	RateLimiter nps.DomainLimiter

	// Concurrency bounds parallel site detail fetches within one listing.
	// Values below 2 resolve sites one at a time.
	Concurrency int

	Logger *slog.Logger
}

// Directory fetches the front page and returns the state directory.
func (s *Scraper) Directory(ctx context.Context) (map[string]string, error) {
	baseURL := s.baseURL()

	html, err := s.fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	states, err := s.Directories.ParseDirectory(html, baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	if len(states) == 0 {
		return nil, nps.Errorf(nps.EINTERNAL, "no states found at %s", baseURL)
	}
	return states, nil
}

// FetchStateListing returns the sites on a state page in page order.
//
// A cached listing replays its site URLs through FetchSiteDetail, so each
// site may still be a cache miss. On a listing miss the page is fetched,
// every site is resolved, and only then is the list of site URLs stored.
// Sites whose pages lack a required field are skipped.
func (s *Scraper) FetchStateListing(ctx context.Context, stateURL string) ([]*nps.Site, error) {
	var entry nps.ListingEntry
	if nps.LoadEntry(s.Cache, stateURL, &entry) {
		return s.resolveSites(ctx, entry.Sites)
	}

	html, err := s.fetch(ctx, stateURL)
	if err != nil {
		return nil, err
	}

	siteURLs, err := s.Listings.ParseListing(html, stateURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", stateURL, err)
	}

	sites, err := s.resolveSites(ctx, siteURLs)
	if err != nil {
		return nil, err
	}

	s.store(stateURL, &nps.ListingEntry{Sites: siteURLs})
	return sites, nil
}

// resolveSites fetches the detail of every URL and returns the sites in the
// order of urls. Any error other than EINCOMPLETE aborts the whole call.
func (s *Scraper) resolveSites(ctx context.Context, urls []string) ([]*nps.Site, error) {
	results := make([]*nps.Site, len(urls))

	resolve := func(ctx context.Context, i int) error {
		site, err := s.FetchSiteDetail(ctx, urls[i])
		if nps.ErrorCode(err) == nps.EINCOMPLETE {
			s.logger().Warn("skipping site", "url", urls[i], "err", err)
			return nil
		} else if err != nil {
			return err
		}
		results[i] = site
		return nil
	}

	if s.Concurrency < 2 {
		for i := range urls {
			if err := resolve(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Concurrency)
		for i := range urls {
			g.Go(func() error {
				return resolve(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	sites := make([]*nps.Site, 0, len(results))
	for _, site := range results {
		if site != nil {
			sites = append(sites, site)
		}
	}
	return sites, nil
}

// FetchSiteDetail returns the site described by the page at siteURL.
func (s *Scraper) FetchSiteDetail(ctx context.Context, siteURL string) (*nps.Site, error) {
	var entry nps.DetailEntry
	if nps.LoadEntry(s.Cache, siteURL, &entry) {
		return entry.Site(), nil
	}

	html, err := s.fetch(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	site, err := s.Sites.ParseSite(html)
	if err != nil {
		return nil, fmt.Errorf("parse site %s: %w", siteURL, err)
	}

	s.store(siteURL, nps.NewDetailEntry(site))
	return site, nil
}

// FetchNearbyPlaces returns the places around zipcode. The API response is
// cached verbatim, and only after it decodes successfully.
func (s *Scraper) FetchNearbyPlaces(ctx context.Context, zipcode string) (*nps.NearbyPlaces, error) {
	if zipcode == "" {
		return nil, nps.Errorf(nps.EINVALID, "postal code required for nearby search")
	}

	var entry nps.PlacesEntry
	if nps.LoadEntry(s.Cache, zipcode, &entry) {
		return entry.Places()
	}

	if s.Places == nil {
		return nil, nps.Errorf(nps.EINVALID, "nearby search is not configured")
	}

	raw, err := s.Places.Search(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("nearby places for %s: %w", zipcode, err)
	}

	places, err := nps.DecodeNearbyPlaces(raw)
	if err != nil {
		return nil, nps.Errorf(nps.EUPSTREAM, "nearby places for %s: %s", zipcode, nps.ErrorMessage(err))
	}

	s.store(zipcode, &nps.PlacesEntry{Raw: raw})
	return places, nil
}

// fetch waits for the rate limiter and retrieves rawURL.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", nps.Errorf(nps.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return html, nil
}

// store writes entry under key. A persist failure is logged and otherwise
// ignored: the store keeps the value in memory.
func (s *Scraper) store(key string, entry nps.Entry) {
	if err := nps.StoreEntry(s.Cache, key, entry); err != nil {
		s.logger().Warn("cache write failed", "key", key, "kind", entry.Kind().String(), "err", err)
	}
}

func (s *Scraper) baseURL() string {
	if s.BaseURL == "" {
		return DefaultBaseURL
	}
	return s.BaseURL
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}
