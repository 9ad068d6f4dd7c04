package mock

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/nps"
)

var _ nps.PlacesClient = (*PlacesClient)(nil)

// PlacesClient is a mock implementation of nps.PlacesClient.
type PlacesClient struct {
	SearchFn func(ctx context.Context, zipcode string) (json.RawMessage, error)
}

func (c *PlacesClient) Search(ctx context.Context, zipcode string) (json.RawMessage, error) {
	return c.SearchFn(ctx, zipcode)
}
