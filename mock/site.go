package mock

import (
	"context"

	"github.com/fwojciec/nps"
)

var _ nps.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of nps.SiteService.
type SiteService struct {
	DirectoryFn         func(ctx context.Context) (map[string]string, error)
	FetchStateListingFn func(ctx context.Context, stateURL string) ([]*nps.Site, error)
	FetchSiteDetailFn   func(ctx context.Context, siteURL string) (*nps.Site, error)
	FetchNearbyPlacesFn func(ctx context.Context, zipcode string) (*nps.NearbyPlaces, error)
}

func (s *SiteService) Directory(ctx context.Context) (map[string]string, error) {
	return s.DirectoryFn(ctx)
}

func (s *SiteService) FetchStateListing(ctx context.Context, stateURL string) ([]*nps.Site, error) {
	return s.FetchStateListingFn(ctx, stateURL)
}

func (s *SiteService) FetchSiteDetail(ctx context.Context, siteURL string) (*nps.Site, error) {
	return s.FetchSiteDetailFn(ctx, siteURL)
}

func (s *SiteService) FetchNearbyPlaces(ctx context.Context, zipcode string) (*nps.NearbyPlaces, error) {
	return s.FetchNearbyPlacesFn(ctx, zipcode)
}
