package nps

import (
	"bytes"
	"context"
	"encoding/json"
)

// Placeholders shown in place of blank place fields.
const (
	NoCategory = "no category"
	NoAddress  = "no address"
	NoCity     = "no city"
)

// NearbyPlaces is the decoded radius search response for one postal code.
type NearbyPlaces struct {
	Origin        PlacesOrigin `json:"origin"`
	SearchResults []Place      `json:"searchResults"`
}

// PlacesOrigin describes the search origin.
type PlacesOrigin struct {
	PostalCode string `json:"postalCode"`
}

// Place is a single search result.
type Place struct {
	Name   string      `json:"name"`
	Fields PlaceFields `json:"fields"`
}

// PlaceFields holds the descriptive fields of a search result.
type PlaceFields struct {
	Category string `json:"group_sic_code_name_ext"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// DisplayCategory returns the category or NoCategory when blank.
func (p *Place) DisplayCategory() string {
	return orPlaceholder(p.Fields.Category, NoCategory)
}

// DisplayAddress returns the street address or NoAddress when blank.
func (p *Place) DisplayAddress() string {
	return orPlaceholder(p.Fields.Address, NoAddress)
}

// DisplayCity returns the city or NoCity when blank.
func (p *Place) DisplayCity() string {
	return orPlaceholder(p.Fields.City, NoCity)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// DecodeNearbyPlaces decodes a raw radius search response.
// The response must be a JSON object.
func DecodeNearbyPlaces(raw json.RawMessage) (*NearbyPlaces, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, Errorf(EINVALID, "invalid places response: not a JSON object")
	}
	var places NearbyPlaces
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, Errorf(EINVALID, "invalid places response: %v", err)
	}
	return &places, nil
}

// PlacesClient queries an external nearby-places API.
type PlacesClient interface {
	// Search issues one request for places around zipcode and returns the
	// response body verbatim. Failed requests return an error and no body.
	Search(ctx context.Context, zipcode string) (json.RawMessage, error)
}
