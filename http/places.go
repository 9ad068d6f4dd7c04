package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/nps"
)

// DefaultPlacesURL is the MapQuest API host.
const DefaultPlacesURL = "http://www.mapquestapi.com"

// Fixed radius search parameters.
const (
	PlacesRadius      = "10"
	PlacesUnits       = "m"
	PlacesMaxMatches  = "10"
	PlacesAmbiguities = "ignore"
	PlacesOutFormat   = "json"
)

const radiusPath = "/search/v2/radius"

// Ensure PlacesClient implements nps.PlacesClient at compile time.
var _ nps.PlacesClient = (*PlacesClient)(nil)

// PlacesClient queries the MapQuest radius search API.
type PlacesClient struct {
	client    *http.Client
	baseURL   string
	key       string
	userAgent string
}

// NewPlacesClient creates a client for the API at baseURL using the given
// consumer key. An empty baseURL uses DefaultPlacesURL.
func NewPlacesClient(baseURL, key string, opts ...Option) *PlacesClient {
	o := newOptions(opts)
	if baseURL == "" {
		baseURL = DefaultPlacesURL
	}
	return &PlacesClient{
		client:    o.client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		key:       key,
		userAgent: o.userAgent,
	}
}

// SearchURL returns the request URL for a radius search around zipcode.
func (c *PlacesClient) SearchURL(zipcode string) string {
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("origin", zipcode)
	q.Set("radius", PlacesRadius)
	q.Set("units", PlacesUnits)
	q.Set("maxMatches", PlacesMaxMatches)
	q.Set("ambiguities", PlacesAmbiguities)
	q.Set("outFormat", PlacesOutFormat)
	return c.baseURL + radiusPath + "?" + q.Encode()
}

// apiStatus is the status block MapQuest includes in every response.
// A non-zero statuscode means the request failed even on HTTP 200.
type apiStatus struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
}

// Search issues a single radius search request. The body is returned
// verbatim only when the API reports success.
func (c *PlacesClient) Search(ctx context.Context, zipcode string) (json.RawMessage, error) {
	if c.key == "" {
		return nil, nps.Errorf(nps.EINVALID, "places API key required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(zipcode), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// The request URL carries the consumer key, so only the cause is kept.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, nps.Errorf(nps.EUPSTREAM, "places API request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read places response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nps.Errorf(nps.EUPSTREAM, "places API: HTTP %d for origin %s", resp.StatusCode, zipcode)
	}

	var status apiStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, nps.Errorf(nps.EUPSTREAM, "places API: invalid response: %v", err)
	}
	if status.Info.StatusCode != 0 {
		return nil, nps.Errorf(nps.EUPSTREAM, "places API: status %d: %s",
			status.Info.StatusCode, strings.Join(status.Info.Messages, "; "))
	}

	return json.RawMessage(body), nil
}
